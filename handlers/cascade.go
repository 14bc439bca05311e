package handlers

import (
	"catalog/models"

	"gorm.io/gorm"
)

// Explicit cascade deletes, child rows first, all inside the caller's
// transaction. The FK constraints declared on the models are a backstop,
// but doing the deletes here keeps behaviour identical across MySQL and
// SQLite regardless of foreign-key enforcement settings.

// deleteRecordings removes the recordings and the association rows that
// reference them (recording_artists, album_recordings). Albums and artists
// themselves are untouched, only the link rows go.
func deleteRecordings(tx *gorm.DB, recordingIDs []uint64) error {
	if len(recordingIDs) == 0 {
		return nil
	}
	err := tx.Where("recording_id IN ?", recordingIDs).Delete(&models.RecordingArtist{}).Error
	if err != nil {
		return err
	}
	err = tx.Where("recording_id IN ?", recordingIDs).Delete(&models.AlbumRecording{}).Error
	if err != nil {
		return err
	}
	return tx.Where("id IN ?", recordingIDs).Delete(&models.Recording{}).Error
}

// deleteCompositions removes the compositions and everything beneath them.
func deleteCompositions(tx *gorm.DB, compositionIDs []uint64) error {
	if len(compositionIDs) == 0 {
		return nil
	}
	var recordingIDs []uint64
	err := tx.Model(&models.Recording{}).Where("composition_id IN ?", compositionIDs).Pluck("id", &recordingIDs).Error
	if err != nil {
		return err
	}
	if err = deleteRecordings(tx, recordingIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", compositionIDs).Delete(&models.Composition{}).Error
}
