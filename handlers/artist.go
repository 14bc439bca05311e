package handlers

import (
	"fmt"
	"net/http"

	"catalog/db"
	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArtistInfo struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	BirthYear   *int    `json:"birth_year"`
	DeathYear   *int    `json:"death_year"`
	Nationality *string `json:"nationality"`
	Instrument  *string `json:"instrument"`
}

type ArtistListInfo struct {
	ArtistInfo
	RecordingCount int64 `json:"recording_count"`
}

type ArtistCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	BirthYear   *int    `json:"birth_year"`
	DeathYear   *int    `json:"death_year"`
	Nationality *string `json:"nationality" binding:"omitempty,max=50"`
	Instrument  *string `json:"instrument" binding:"omitempty,max=50"`
}

type ArtistSaveRequest struct {
	ID          uint64           `json:"id" binding:"required"`
	Name        Optional[string] `json:"name"`
	BirthYear   Optional[int]    `json:"birth_year"`
	DeathYear   Optional[int]    `json:"death_year"`
	Nationality Optional[string] `json:"nationality"`
	Instrument  Optional[string] `json:"instrument"`
}

func artistInfo(artist *models.Artist) ArtistInfo {
	return ArtistInfo{
		ID:          artist.ID,
		Name:        artist.Name,
		BirthYear:   artist.BirthYear,
		DeathYear:   artist.DeathYear,
		Nationality: artist.Nationality,
		Instrument:  artist.Instrument,
	}
}

func artistConflict(tx *gorm.DB, name string, excludeID uint64) error {
	var count int64
	err := tx.Model(&models.Artist{}).
		Where("name = ? AND id != ?", name, excludeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Msg: fmt.Sprintf("artist with name '%s' already exists", name)}
	}
	return nil
}

func ArtistList(c *gin.Context) {
	r := ListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	r.Defaults()
	q := db.Instance.
		Table("artists").
		Select("artists.id, artists.name, artists.birth_year, artists.death_year, artists.nationality, artists.instrument, count(recording_artists.recording_id)").
		Joins("left join recording_artists on recording_artists.artist_id = artists.id").
		Group("artists.id, artists.name, artists.birth_year, artists.death_year, artists.nationality, artists.instrument")
	if r.Search != "" {
		p := searchPattern(r.Search)
		q = q.Where("lower(artists.name) LIKE ? OR lower(artists.nationality) LIKE ? OR lower(artists.instrument) LIKE ?", p, p, p)
	}
	rows, err := q.
		Order("case when artists.birth_year is null then 1 else 0 end, artists.birth_year asc, artists.name asc").
		Offset(r.Skip).Limit(r.Limit).
		Rows()
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()
	result := []ArtistListInfo{}
	for rows.Next() {
		info := ArtistListInfo{}
		err = rows.Scan(&info.ID, &info.Name, &info.BirthYear, &info.DeathYear, &info.Nationality, &info.Instrument, &info.RecordingCount)
		if err != nil {
			respondError(c, err)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func ArtistGet(c *gin.Context) {
	r := IDQueryRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	artist := models.Artist{}
	if db.Instance.First(&artist, r.ID).Error != nil {
		respondError(c, notFoundError("artist", r.ID))
		return
	}
	c.JSON(http.StatusOK, artistInfo(&artist))
}

func ArtistCreate(c *gin.Context) {
	r := ArtistCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	artist := models.Artist{
		Name:        r.Name,
		BirthYear:   r.BirthYear,
		DeathYear:   r.DeathYear,
		Nationality: r.Nationality,
		Instrument:  r.Instrument,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := artistConflict(tx, r.Name, 0); err != nil {
			return err
		}
		return tx.Create(&artist).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artistInfo(&artist))
}

func ArtistSave(c *gin.Context) {
	r := ArtistSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	artist := models.Artist{}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if tx.First(&artist, r.ID).Error != nil {
			return notFoundError("artist", r.ID)
		}
		changed := false
		if r.Name.Set {
			if r.Name.Value == nil {
				return validationError("name cannot be null")
			}
			if err := artistConflict(tx, *r.Name.Value, r.ID); err != nil {
				return err
			}
			artist.Name = *r.Name.Value
			changed = true
		}
		if r.BirthYear.Set {
			artist.BirthYear = r.BirthYear.Value
			changed = true
		}
		if r.DeathYear.Set {
			artist.DeathYear = r.DeathYear.Value
			changed = true
		}
		if r.Nationality.Set {
			artist.Nationality = r.Nationality.Value
			changed = true
		}
		if r.Instrument.Set {
			artist.Instrument = r.Instrument.Value
			changed = true
		}
		if !changed {
			return validationError("update payload has no fields")
		}
		return tx.Save(&artist).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artistInfo(&artist))
}

func ArtistDelete(c *gin.Context) {
	r := IDRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		artist := models.Artist{}
		if tx.First(&artist, r.ID).Error != nil {
			return notFoundError("artist", r.ID)
		}
		// Shared association: only the link rows go, the recordings stay
		err := tx.Where("artist_id = ?", r.ID).Delete(&models.RecordingArtist{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Artist{}, r.ID).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
