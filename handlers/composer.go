package handlers

import (
	"fmt"
	"net/http"

	"catalog/db"
	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ComposerInfo struct {
	ID          uint64  `json:"id"`
	FullName    string  `json:"full_name"`
	ShortName   string  `json:"short_name"`
	BirthYear   *int    `json:"birth_year"`
	DeathYear   *int    `json:"death_year"`
	Nationality *string `json:"nationality"`
	ImageURL    *string `json:"image_url"`
}

type ComposerCreateRequest struct {
	FullName    string  `json:"full_name" binding:"required,max=100"`
	ShortName   string  `json:"short_name" binding:"required,max=50"`
	BirthYear   *int    `json:"birth_year"`
	DeathYear   *int    `json:"death_year"`
	Nationality *string `json:"nationality" binding:"omitempty,max=50"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=500"`
}

type ComposerSaveRequest struct {
	ID          uint64           `json:"id" binding:"required"`
	FullName    Optional[string] `json:"full_name"`
	ShortName   Optional[string] `json:"short_name"`
	BirthYear   Optional[int]    `json:"birth_year"`
	DeathYear   Optional[int]    `json:"death_year"`
	Nationality Optional[string] `json:"nationality"`
	ImageURL    Optional[string] `json:"image_url"`
}

func composerInfo(composer *models.Composer) ComposerInfo {
	return ComposerInfo{
		ID:          composer.ID,
		FullName:    composer.FullName,
		ShortName:   composer.ShortName,
		BirthYear:   composer.BirthYear,
		DeathYear:   composer.DeathYear,
		Nationality: composer.Nationality,
		ImageURL:    composer.ImageURL,
	}
}

// Full name and short name are each globally unique on their own, so two
// separate checks with two separate messages.
func composerConflicts(tx *gorm.DB, fullName, shortName *string, excludeID uint64) error {
	var count int64
	if fullName != nil {
		err := tx.Model(&models.Composer{}).
			Where("full_name = ? AND id != ?", *fullName, excludeID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Msg: fmt.Sprintf("composer with full name '%s' already exists", *fullName)}
		}
	}
	if shortName != nil {
		err := tx.Model(&models.Composer{}).
			Where("short_name = ? AND id != ?", *shortName, excludeID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Msg: fmt.Sprintf("composer with short name '%s' already exists", *shortName)}
		}
	}
	return nil
}

func ComposerList(c *gin.Context) {
	r := ListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	r.Defaults()
	q := db.Instance.Model(&models.Composer{})
	if r.Search != "" {
		p := searchPattern(r.Search)
		q = q.Where("lower(full_name) LIKE ? OR lower(short_name) LIKE ? OR lower(nationality) LIKE ?", p, p, p)
	}
	var composers []models.Composer
	err := q.Order("case when birth_year is null then 1 else 0 end, birth_year asc, full_name asc").
		Offset(r.Skip).Limit(r.Limit).
		Find(&composers).Error
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]ComposerInfo, 0, len(composers))
	for i := range composers {
		result = append(result, composerInfo(&composers[i]))
	}
	c.JSON(http.StatusOK, result)
}

func ComposerGet(c *gin.Context) {
	r := IDQueryRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	composer := models.Composer{}
	if db.Instance.First(&composer, r.ID).Error != nil {
		respondError(c, notFoundError("composer", r.ID))
		return
	}
	c.JSON(http.StatusOK, composerInfo(&composer))
}

func ComposerCreate(c *gin.Context) {
	r := ComposerCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	composer := models.Composer{
		FullName:    r.FullName,
		ShortName:   r.ShortName,
		BirthYear:   r.BirthYear,
		DeathYear:   r.DeathYear,
		Nationality: r.Nationality,
		ImageURL:    r.ImageURL,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := composerConflicts(tx, &r.FullName, &r.ShortName, 0); err != nil {
			return err
		}
		return tx.Create(&composer).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, composerInfo(&composer))
}

func ComposerSave(c *gin.Context) {
	r := ComposerSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	composer := models.Composer{}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if tx.First(&composer, r.ID).Error != nil {
			return notFoundError("composer", r.ID)
		}
		changed := false
		if r.FullName.Set {
			if r.FullName.Value == nil {
				return validationError("full_name cannot be null")
			}
			composer.FullName = *r.FullName.Value
			changed = true
		}
		if r.ShortName.Set {
			if r.ShortName.Value == nil {
				return validationError("short_name cannot be null")
			}
			composer.ShortName = *r.ShortName.Value
			changed = true
		}
		if r.BirthYear.Set {
			composer.BirthYear = r.BirthYear.Value
			changed = true
		}
		if r.DeathYear.Set {
			composer.DeathYear = r.DeathYear.Value
			changed = true
		}
		if r.Nationality.Set {
			composer.Nationality = r.Nationality.Value
			changed = true
		}
		if r.ImageURL.Set {
			composer.ImageURL = r.ImageURL.Value
			changed = true
		}
		if !changed {
			return validationError("update payload has no fields")
		}
		if err := composerConflicts(tx, r.FullName.Value, r.ShortName.Value, r.ID); err != nil {
			return err
		}
		return tx.Save(&composer).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, composerInfo(&composer))
}

func ComposerDelete(c *gin.Context) {
	r := IDRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		composer := models.Composer{}
		if tx.First(&composer, r.ID).Error != nil {
			return notFoundError("composer", r.ID)
		}
		var compositionIDs []uint64
		err := tx.Model(&models.Composition{}).Where("composer_id = ?", r.ID).Pluck("id", &compositionIDs).Error
		if err != nil {
			return err
		}
		if err = deleteCompositions(tx, compositionIDs); err != nil {
			return err
		}
		return tx.Delete(&models.Composer{}, r.ID).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
