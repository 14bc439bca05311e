package models

import (
	"fmt"

	"gorm.io/gorm"
)

// The three ordered associations in the schema (recording artists, album
// recordings, album custom URLs) are all maintained the same way: the
// caller supplies the complete new sequence and the stored rows are
// replaced wholesale inside the operation's transaction. A concurrent
// reader sees either the old full list or the new one, never a mix.

// CheckIDs verifies that every id resolves to a row of entity type T and
// that the input contains no duplicates. Returns a NotFoundError listing
// the missing ids, or a ValidationError for duplicates.
func CheckIDs[T any](tx *gorm.DB, entity string, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint64]bool, len(ids))
	dups := make(map[uint64]bool)
	for _, id := range ids {
		if seen[id] {
			dups[id] = true
		}
		seen[id] = true
	}
	if len(dups) > 0 {
		return &ValidationError{Msg: fmt.Sprintf("duplicate %s ids in input: %v", entity, sortedIDs(dups))}
	}
	var found []uint64
	err := tx.Model(new(T)).Where("id IN ?", sortedIDs(seen)).Pluck("id", &found).Error
	if err != nil {
		return err
	}
	for _, id := range found {
		delete(seen, id)
	}
	if len(seen) > 0 {
		return &NotFoundError{Entity: entity, IDs: sortedIDs(seen)}
	}
	return nil
}

// ReplaceOrdered swaps the full ordered association row set for one owner:
// every existing row for ownerID is deleted and the given rows, which
// carry their zero-based position already assigned, are inserted in one
// batch. Re-applying the same rows is idempotent. Must run inside the
// caller's transaction so no partial list is ever observable.
func ReplaceOrdered[T any](tx *gorm.DB, ownerColumn string, ownerID uint64, rows []T) error {
	err := tx.Where(ownerColumn+" = ?", ownerID).Delete(new(T)).Error
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
