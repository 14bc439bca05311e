package models

type Recording struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	CompositionID uint64      `gorm:"not null;index"`
	Composition   Composition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Year          *int
}

// RecordingArtist links a recording to a performer. ArtistOrder is the
// zero-based position of the artist within the recording's line-up.
type RecordingArtist struct {
	RecordingID uint64    `gorm:"primaryKey;index:recording_artist_order,priority:1"`
	Recording   Recording `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ArtistID    uint64    `gorm:"primaryKey"`
	Artist      Artist    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ArtistOrder int       `gorm:"not null;index:recording_artist_order,priority:2"`
}
