package models

import "strconv"

// SortOrderFromCatalog derives the numeric sort key from a free-text
// catalog number by taking its first run of decimal digits, so
// "BWV 1060a-2" and "BWV 1060" both sort as 1060. Returns nil when the
// catalog number is absent, has no digits, or the run does not fit in
// an int64.
func SortOrderFromCatalog(catalogNumber *string) *int64 {
	if catalogNumber == nil {
		return nil
	}
	s := *catalogNumber
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			s = s[:i]
			break
		}
	}
	if start < 0 {
		return nil
	}
	n, err := strconv.ParseInt(s[start:], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
