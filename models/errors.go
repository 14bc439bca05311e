package models

import (
	"fmt"
	"sort"
)

// NotFoundError reports referenced ids that do not resolve to an existing
// row of the named entity.
type NotFoundError struct {
	Entity string
	IDs    []uint64
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 1 {
		return fmt.Sprintf("%s with id %d not found", e.Entity, e.IDs[0])
	}
	return fmt.Sprintf("%ss with ids %v not found", e.Entity, e.IDs)
}

// ValidationError reports a malformed write payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func sortedIDs(ids map[uint64]bool) []uint64 {
	result := make([]uint64, 0, len(ids))
	for id := range ids {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
