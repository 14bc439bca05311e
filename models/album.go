package models

const (
	AlbumTypeLP = "LP"
	AlbumTypeCD = "CD"
)

type Album struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	UpdatedAt  int64
	Title      string  `gorm:"type:varchar(300);not null"`
	AlbumType  string  `gorm:"type:varchar(10);not null"`
	DiscogsURL *string `gorm:"type:varchar(1000)"`
	SpotifyURL *string `gorm:"type:varchar(1000)"`
	Memo       *string `gorm:"type:text"`
	Images     []AlbumImage
	CustomURLs []AlbumCustomURL
}

// AlbumRecording links an album to a recording. RecordingOrder is the
// zero-based track position within the album.
type AlbumRecording struct {
	AlbumID        uint64    `gorm:"primaryKey;index:album_recording_order,priority:1"`
	Album          Album     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RecordingID    uint64    `gorm:"primaryKey"`
	Recording      Recording `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RecordingOrder int       `gorm:"not null;index:album_recording_order,priority:2"`
}

type AlbumImage struct {
	ID      uint64 `gorm:"primaryKey"`
	AlbumID uint64 `gorm:"not null;index"`
	Album   Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// ImageURL is either an external URL or a path returned by /image/upload
	ImageURL  string `gorm:"type:text;not null"`
	IsPrimary bool   `gorm:"not null;default:0"`
}

type AlbumCustomURL struct {
	ID       uint64 `gorm:"primaryKey"`
	AlbumID  uint64 `gorm:"not null;index:album_url_order,priority:1"`
	Album    Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name     string `gorm:"type:varchar(100);not null"`
	URL      string `gorm:"type:varchar(1000);not null"`
	URLOrder int    `gorm:"not null;index:album_url_order,priority:2"`
}
