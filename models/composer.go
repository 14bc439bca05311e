package models

type Composer struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	UpdatedAt    int64
	FullName     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	ShortName    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	BirthYear    *int
	DeathYear    *int
	Nationality  *string `gorm:"type:varchar(50)"`
	ImageURL     *string `gorm:"type:varchar(500)"`
	Compositions []Composition
}
