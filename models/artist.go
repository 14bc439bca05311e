package models

type Artist struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	BirthYear   *int
	DeathYear   *int
	Nationality *string `gorm:"type:varchar(50)"`
	Instrument  *string `gorm:"type:varchar(50)"`
}
