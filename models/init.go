package models

import "catalog/db"

func Init() {
	// Parents before children so the FK constraints resolve
	db.Instance.AutoMigrate(&Composer{})
	db.Instance.AutoMigrate(&Composition{})
	db.Instance.AutoMigrate(&Artist{})
	db.Instance.AutoMigrate(&Recording{})
	db.Instance.AutoMigrate(&RecordingArtist{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&AlbumRecording{})
	db.Instance.AutoMigrate(&AlbumImage{})
	db.Instance.AutoMigrate(&AlbumCustomURL{})
}
