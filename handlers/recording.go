package handlers

import (
	"net/http"

	"catalog/db"
	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecordingInfo struct {
	ID            uint64       `json:"id"`
	CompositionID uint64       `json:"composition_id"`
	Year          *int         `json:"year"`
	Artists       []ArtistInfo `json:"artists"`
}

type RecordingListRequest struct {
	Skip          int    `form:"skip"`
	Limit         int    `form:"limit"`
	CompositionID uint64 `form:"composition_id"`
	ComposerID    uint64 `form:"composer_id"`
	ArtistID      uint64 `form:"artist_id"`
}

type RecordingCreateRequest struct {
	CompositionID uint64   `json:"composition_id" binding:"required"`
	Year          *int     `json:"year"`
	ArtistIDs     []uint64 `json:"artist_ids"`
}

type RecordingSaveRequest struct {
	ID            uint64           `json:"id" binding:"required"`
	CompositionID Optional[uint64] `json:"composition_id"`
	Year          Optional[int]    `json:"year"`
	// nil means leave the line-up alone, an empty list clears it
	ArtistIDs *[]uint64 `json:"artist_ids"`
}

// loadRecordingArtists returns each recording's line-up in stored order.
func loadRecordingArtists(recordingIDs []uint64) (map[uint64][]ArtistInfo, error) {
	result := make(map[uint64][]ArtistInfo, len(recordingIDs))
	if len(recordingIDs) == 0 {
		return result, nil
	}
	rows, err := db.Instance.
		Table("recording_artists").
		Select("recording_artists.recording_id, artists.id, artists.name, artists.birth_year, artists.death_year, artists.nationality, artists.instrument").
		Joins("join artists on artists.id = recording_artists.artist_id").
		Where("recording_artists.recording_id IN ?", recordingIDs).
		Order("recording_artists.recording_id asc, recording_artists.artist_order asc").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var recordingID uint64
		info := ArtistInfo{}
		err = rows.Scan(&recordingID, &info.ID, &info.Name, &info.BirthYear, &info.DeathYear, &info.Nationality, &info.Instrument)
		if err != nil {
			return nil, err
		}
		result[recordingID] = append(result[recordingID], info)
	}
	return result, nil
}

func recordingInfos(recordings []models.Recording) ([]RecordingInfo, error) {
	ids := make([]uint64, len(recordings))
	for i := range recordings {
		ids[i] = recordings[i].ID
	}
	artists, err := loadRecordingArtists(ids)
	if err != nil {
		return nil, err
	}
	result := make([]RecordingInfo, 0, len(recordings))
	for i := range recordings {
		lineup := artists[recordings[i].ID]
		if lineup == nil {
			lineup = []ArtistInfo{}
		}
		result = append(result, RecordingInfo{
			ID:            recordings[i].ID,
			CompositionID: recordings[i].CompositionID,
			Year:          recordings[i].Year,
			Artists:       lineup,
		})
	}
	return result, nil
}

// replaceRecordingArtists validates the ids and swaps the stored line-up,
// preserving the caller-given order.
func replaceRecordingArtists(tx *gorm.DB, recordingID uint64, artistIDs []uint64) error {
	if err := models.CheckIDs[models.Artist](tx, "artist", artistIDs); err != nil {
		return err
	}
	rows := make([]models.RecordingArtist, len(artistIDs))
	for i, artistID := range artistIDs {
		rows[i] = models.RecordingArtist{
			RecordingID: recordingID,
			ArtistID:    artistID,
			ArtistOrder: i,
		}
	}
	return models.ReplaceOrdered(tx, "recording_id", recordingID, rows)
}

func RecordingList(c *gin.Context) {
	r := RecordingListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	if r.Skip < 0 {
		r.Skip = 0
	}
	if r.Limit <= 0 {
		r.Limit = 100
	}
	q := db.Instance.Model(&models.Recording{})
	if r.CompositionID != 0 {
		q = q.Where("recordings.composition_id = ?", r.CompositionID)
	}
	if r.ComposerID != 0 {
		q = q.Joins("join compositions on compositions.id = recordings.composition_id").
			Where("compositions.composer_id = ?", r.ComposerID)
	}
	if r.ArtistID != 0 {
		q = q.Joins("join recording_artists on recording_artists.recording_id = recordings.id").
			Where("recording_artists.artist_id = ?", r.ArtistID)
	}
	var recordings []models.Recording
	err := q.Order("case when recordings.year is null then 1 else 0 end, recordings.year desc, recordings.id desc").
		Offset(r.Skip).Limit(r.Limit).
		Find(&recordings).Error
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := recordingInfos(recordings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func RecordingGet(c *gin.Context) {
	r := IDQueryRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	recording := models.Recording{}
	if db.Instance.First(&recording, r.ID).Error != nil {
		respondError(c, notFoundError("recording", r.ID))
		return
	}
	result, err := recordingInfos([]models.Recording{recording})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result[0])
}

func RecordingCreate(c *gin.Context) {
	r := RecordingCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	recording := models.Recording{
		CompositionID: r.CompositionID,
		Year:          r.Year,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		composition := models.Composition{}
		if tx.First(&composition, r.CompositionID).Error != nil {
			return notFoundError("composition", r.CompositionID)
		}
		// The recording row is created first so the association rows have
		// an owner id to reference
		if err := tx.Create(&recording).Error; err != nil {
			return err
		}
		return replaceRecordingArtists(tx, recording.ID, r.ArtistIDs)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := recordingInfos([]models.Recording{recording})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result[0])
}

func RecordingSave(c *gin.Context) {
	r := RecordingSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	recording := models.Recording{}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if tx.First(&recording, r.ID).Error != nil {
			return notFoundError("recording", r.ID)
		}
		changed := false
		if r.CompositionID.Set {
			if r.CompositionID.Value == nil {
				return validationError("composition_id cannot be null")
			}
			composition := models.Composition{}
			if tx.First(&composition, *r.CompositionID.Value).Error != nil {
				return notFoundError("composition", *r.CompositionID.Value)
			}
			recording.CompositionID = *r.CompositionID.Value
			changed = true
		}
		if r.Year.Set {
			recording.Year = r.Year.Value
			changed = true
		}
		if r.ArtistIDs != nil {
			if err := replaceRecordingArtists(tx, r.ID, *r.ArtistIDs); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return validationError("update payload has no fields")
		}
		return tx.Save(&recording).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := recordingInfos([]models.Recording{recording})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result[0])
}

func RecordingDelete(c *gin.Context) {
	r := IDRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		recording := models.Recording{}
		if tx.First(&recording, r.ID).Error != nil {
			return notFoundError("recording", r.ID)
		}
		return deleteRecordings(tx, []uint64{r.ID})
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
