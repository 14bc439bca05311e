package models

type Composition struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	ComposerID    uint64   `gorm:"not null;index:uniq_composer_title,unique,priority:1;index:uniq_composer_catalog,unique,priority:1"`
	Composer      Composer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title         string   `gorm:"type:varchar(200);not null;index:uniq_composer_title,unique,priority:2"`
	CatalogNumber *string  `gorm:"type:varchar(50);index:uniq_composer_catalog,unique,priority:2"`
	// SortOrder is derived from CatalogNumber on every write, see SortOrderFromCatalog
	SortOrder *int64
}
