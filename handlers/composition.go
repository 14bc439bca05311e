package handlers

import (
	"fmt"
	"net/http"

	"catalog/db"
	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompositionInfo struct {
	ID            uint64  `json:"id"`
	ComposerID    uint64  `json:"composer_id"`
	Title         string  `json:"title"`
	CatalogNumber *string `json:"catalog_number"`
	SortOrder     *int64  `json:"sort_order"`
}

type CompositionListInfo struct {
	CompositionInfo
	RecordingCount int64 `json:"recording_count"`
}

type CompositionListRequest struct {
	Skip       int    `form:"skip"`
	Limit      int    `form:"limit"`
	Search     string `form:"search"`
	ComposerID uint64 `form:"composer_id"`
}

type CompositionCreateRequest struct {
	ComposerID    uint64  `json:"composer_id" binding:"required"`
	Title         string  `json:"title" binding:"required,max=200"`
	CatalogNumber *string `json:"catalog_number" binding:"omitempty,max=50"`
}

type CompositionSaveRequest struct {
	ID            uint64           `json:"id" binding:"required"`
	ComposerID    Optional[uint64] `json:"composer_id"`
	Title         Optional[string] `json:"title"`
	CatalogNumber Optional[string] `json:"catalog_number"`
}

func compositionInfo(composition *models.Composition) CompositionInfo {
	return CompositionInfo{
		ID:            composition.ID,
		ComposerID:    composition.ComposerID,
		Title:         composition.Title,
		CatalogNumber: composition.CatalogNumber,
		SortOrder:     composition.SortOrder,
	}
}

// Title and catalog number are each unique within one composer only.
func compositionConflicts(tx *gorm.DB, composerID uint64, title, catalogNumber *string, excludeID uint64) error {
	var count int64
	if title != nil {
		err := tx.Model(&models.Composition{}).
			Where("composer_id = ? AND title = ? AND id != ?", composerID, *title, excludeID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Msg: fmt.Sprintf("composition with title '%s' already exists for this composer", *title)}
		}
	}
	if catalogNumber != nil {
		err := tx.Model(&models.Composition{}).
			Where("composer_id = ? AND catalog_number = ? AND id != ?", composerID, *catalogNumber, excludeID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Msg: fmt.Sprintf("composition with catalog number '%s' already exists for this composer", *catalogNumber)}
		}
	}
	return nil
}

func CompositionList(c *gin.Context) {
	r := CompositionListRequest{}
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
	q := db.Instance.
		Table("compositions").
		Select("compositions.id, compositions.composer_id, compositions.title, compositions.catalog_number, compositions.sort_order, count(recordings.id)").
		Joins("left join recordings on recordings.composition_id = compositions.id").
		Group("compositions.id, compositions.composer_id, compositions.title, compositions.catalog_number, compositions.sort_order")
	if r.ComposerID != 0 {
		q = q.Where("compositions.composer_id = ?", r.ComposerID)
	}
	if r.Search != "" {
		p := searchPattern(r.Search)
		q = q.Where("lower(compositions.title) LIKE ? OR lower(compositions.catalog_number) LIKE ?", p, p)
	}
	rows, err := q.
		Order("compositions.composer_id asc, case when compositions.sort_order is null then 1 else 0 end, compositions.sort_order asc, compositions.catalog_number asc").
		Offset(r.Skip).Limit(r.Limit).
		Rows()
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()
	result := []CompositionListInfo{}
	for rows.Next() {
		info := CompositionListInfo{}
		err = rows.Scan(&info.ID, &info.ComposerID, &info.Title, &info.CatalogNumber, &info.SortOrder, &info.RecordingCount)
		if err != nil {
			respondError(c, err)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func CompositionGet(c *gin.Context) {
	r := IDQueryRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	composition := models.Composition{}
	if db.Instance.First(&composition, r.ID).Error != nil {
		respondError(c, notFoundError("composition", r.ID))
		return
	}
	c.JSON(http.StatusOK, compositionInfo(&composition))
}

func CompositionCreate(c *gin.Context) {
	r := CompositionCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	composition := models.Composition{
		ComposerID:    r.ComposerID,
		Title:         r.Title,
		CatalogNumber: r.CatalogNumber,
		SortOrder:     models.SortOrderFromCatalog(r.CatalogNumber),
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		composer := models.Composer{}
		if tx.First(&composer, r.ComposerID).Error != nil {
			return notFoundError("composer", r.ComposerID)
		}
		if err := compositionConflicts(tx, r.ComposerID, &r.Title, r.CatalogNumber, 0); err != nil {
			return err
		}
		return tx.Create(&composition).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, compositionInfo(&composition))
}

func CompositionSave(c *gin.Context) {
	r := CompositionSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	composition := models.Composition{}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if tx.First(&composition, r.ID).Error != nil {
			return notFoundError("composition", r.ID)
		}
		changed := false
		if r.ComposerID.Set {
			if r.ComposerID.Value == nil {
				return validationError("composer_id cannot be null")
			}
			composer := models.Composer{}
			if tx.First(&composer, *r.ComposerID.Value).Error != nil {
				return notFoundError("composer", *r.ComposerID.Value)
			}
			composition.ComposerID = *r.ComposerID.Value
			changed = true
		}
		if r.Title.Set {
			if r.Title.Value == nil {
				return validationError("title cannot be null")
			}
			composition.Title = *r.Title.Value
			changed = true
		}
		if r.CatalogNumber.Set {
			// The sort key follows the catalog number, callers never set it
			composition.CatalogNumber = r.CatalogNumber.Value
			composition.SortOrder = models.SortOrderFromCatalog(r.CatalogNumber.Value)
			changed = true
		}
		if !changed {
			return validationError("update payload has no fields")
		}
		err := compositionConflicts(tx, composition.ComposerID, r.Title.Value, r.CatalogNumber.Value, r.ID)
		if err != nil {
			return err
		}
		return tx.Save(&composition).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, compositionInfo(&composition))
}

func CompositionDelete(c *gin.Context) {
	r := IDRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		composition := models.Composition{}
		if tx.First(&composition, r.ID).Error != nil {
			return notFoundError("composition", r.ID)
		}
		return deleteCompositions(tx, []uint64{r.ID})
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
