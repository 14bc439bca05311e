package handlers

import (
	"net/http"

	"catalog/db"
	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AlbumImageInfo struct {
	ID        uint64 `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

type AlbumCustomURLInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type AlbumInfo struct {
	ID         uint64               `json:"id"`
	Title      string               `json:"title"`
	AlbumType  string               `json:"album_type"`
	DiscogsURL *string              `json:"discogs_url"`
	SpotifyURL *string              `json:"spotify_url"`
	Memo       *string              `json:"memo"`
	Recordings []RecordingInfo      `json:"recordings"`
	Images     []AlbumImageInfo     `json:"images"`
	CustomURLs []AlbumCustomURLInfo `json:"custom_urls"`
}

type AlbumListRequest struct {
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	AlbumType string `form:"album_type"`
}

type AlbumCustomURLInput struct {
	Name string `json:"name" binding:"required,max=100"`
	URL  string `json:"url" binding:"required,max=1000"`
}

type AlbumCreateRequest struct {
	Title             string                `json:"title" binding:"required,max=300"`
	AlbumType         string                `json:"album_type" binding:"required,oneof=LP CD"`
	DiscogsURL        *string               `json:"discogs_url" binding:"omitempty,max=1000"`
	SpotifyURL        *string               `json:"spotify_url" binding:"omitempty,max=1000"`
	Memo              *string               `json:"memo"`
	RecordingIDs      []uint64              `json:"recording_ids"`
	ImageURLs         []string              `json:"image_urls"`
	PrimaryImageIndex *int                  `json:"primary_image_index"`
	CustomURLs        []AlbumCustomURLInput `json:"custom_urls"`
}

type AlbumSaveRequest struct {
	ID         uint64           `json:"id" binding:"required"`
	Title      Optional[string] `json:"title"`
	AlbumType  Optional[string] `json:"album_type"`
	DiscogsURL Optional[string] `json:"discogs_url"`
	SpotifyURL Optional[string] `json:"spotify_url"`
	Memo       Optional[string] `json:"memo"`
	// nil leaves the corresponding list untouched
	RecordingIDs      *[]uint64              `json:"recording_ids"`
	ImageURLs         *[]string              `json:"image_urls"`
	PrimaryImageIndex *int                   `json:"primary_image_index"`
	CustomURLs        *[]AlbumCustomURLInput `json:"custom_urls"`
}

// albumInfos assembles full album payloads for a page of albums: ordered
// recordings (with their ordered line-ups), images and custom URLs.
func albumInfos(albums []models.Album) ([]AlbumInfo, error) {
	result := make([]AlbumInfo, 0, len(albums))
	if len(albums) == 0 {
		return result, nil
	}
	albumIDs := make([]uint64, len(albums))
	index := make(map[uint64]int, len(albums))
	for i := range albums {
		albumIDs[i] = albums[i].ID
		index[albums[i].ID] = i
		result = append(result, AlbumInfo{
			ID:         albums[i].ID,
			Title:      albums[i].Title,
			AlbumType:  albums[i].AlbumType,
			DiscogsURL: albums[i].DiscogsURL,
			SpotifyURL: albums[i].SpotifyURL,
			Memo:       albums[i].Memo,
			Recordings: []RecordingInfo{},
			Images:     []AlbumImageInfo{},
			CustomURLs: []AlbumCustomURLInfo{},
		})
	}

	// Track lists, in stored order
	var links []models.AlbumRecording
	err := db.Instance.
		Where("album_id IN ?", albumIDs).
		Order("album_id asc, recording_order asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	recordingIDs := make([]uint64, 0, len(links))
	for _, link := range links {
		recordingIDs = append(recordingIDs, link.RecordingID)
	}
	var recordings []models.Recording
	if len(recordingIDs) > 0 {
		if err = db.Instance.Where("id IN ?", recordingIDs).Find(&recordings).Error; err != nil {
			return nil, err
		}
	}
	infos, err := recordingInfos(recordings)
	if err != nil {
		return nil, err
	}
	byRecording := make(map[uint64]RecordingInfo, len(infos))
	for _, info := range infos {
		byRecording[info.ID] = info
	}
	for _, link := range links {
		if info, ok := byRecording[link.RecordingID]; ok {
			i := index[link.AlbumID]
			result[i].Recordings = append(result[i].Recordings, info)
		}
	}

	var images []models.AlbumImage
	err = db.Instance.Where("album_id IN ?", albumIDs).Order("album_id asc, id asc").Find(&images).Error
	if err != nil {
		return nil, err
	}
	for _, image := range images {
		i := index[image.AlbumID]
		result[i].Images = append(result[i].Images, AlbumImageInfo{
			ID:        image.ID,
			ImageURL:  image.ImageURL,
			IsPrimary: image.IsPrimary,
		})
	}

	var customURLs []models.AlbumCustomURL
	err = db.Instance.Where("album_id IN ?", albumIDs).Order("album_id asc, url_order asc").Find(&customURLs).Error
	if err != nil {
		return nil, err
	}
	for _, u := range customURLs {
		i := index[u.AlbumID]
		result[i].CustomURLs = append(result[i].CustomURLs, AlbumCustomURLInfo{Name: u.Name, URL: u.URL})
	}
	return result, nil
}

func replaceAlbumRecordings(tx *gorm.DB, albumID uint64, recordingIDs []uint64) error {
	if err := models.CheckIDs[models.Recording](tx, "recording", recordingIDs); err != nil {
		return err
	}
	rows := make([]models.AlbumRecording, len(recordingIDs))
	for i, recordingID := range recordingIDs {
		rows[i] = models.AlbumRecording{
			AlbumID:        albumID,
			RecordingID:    recordingID,
			RecordingOrder: i,
		}
	}
	return models.ReplaceOrdered(tx, "album_id", albumID, rows)
}

// replaceAlbumImages swaps the album's image set. Exactly the image at
// primaryIndex is flagged primary, so at most one primary per album holds
// by construction.
func replaceAlbumImages(tx *gorm.DB, albumID uint64, imageURLs []string, primaryIndex *int) error {
	if primaryIndex != nil && (*primaryIndex < 0 || *primaryIndex >= len(imageURLs)) {
		return validationError("primary_image_index out of range")
	}
	rows := make([]models.AlbumImage, len(imageURLs))
	for i, imageURL := range imageURLs {
		rows[i] = models.AlbumImage{
			AlbumID:   albumID,
			ImageURL:  imageURL,
			IsPrimary: primaryIndex != nil && i == *primaryIndex,
		}
	}
	return models.ReplaceOrdered(tx, "album_id", albumID, rows)
}

func replaceAlbumCustomURLs(tx *gorm.DB, albumID uint64, urls []AlbumCustomURLInput) error {
	rows := make([]models.AlbumCustomURL, len(urls))
	for i, u := range urls {
		rows[i] = models.AlbumCustomURL{
			AlbumID:  albumID,
			Name:     u.Name,
			URL:      u.URL,
			URLOrder: i,
		}
	}
	return models.ReplaceOrdered(tx, "album_id", albumID, rows)
}

func AlbumList(c *gin.Context) {
	r := AlbumListRequest{}
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
	q := db.Instance.Model(&models.Album{})
	if r.AlbumType != "" {
		q = q.Where("album_type = ?", r.AlbumType)
	}
	if r.Search != "" {
		q = q.Where("lower(title) LIKE ?", searchPattern(r.Search))
	}
	var albums []models.Album
	// Most recently created first; id is unique so no tiebreaker needed
	err := q.Order("id desc").Offset(r.Skip).Limit(r.Limit).Find(&albums).Error
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := albumInfos(albums)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func AlbumGet(c *gin.Context) {
	r := IDQueryRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		bindError(c, err)
		return
	}
	album := models.Album{}
	if db.Instance.First(&album, r.ID).Error != nil {
		respondError(c, notFoundError("album", r.ID))
		return
	}
	result, err := albumInfos([]models.Album{album})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result[0])
}

func AlbumCreate(c *gin.Context) {
	r := AlbumCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	album := models.Album{
		Title:      r.Title,
		AlbumType:  r.AlbumType,
		DiscogsURL: r.DiscogsURL,
		SpotifyURL: r.SpotifyURL,
		Memo:       r.Memo,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&album).Error; err != nil {
			return err
		}
		if err := replaceAlbumRecordings(tx, album.ID, r.RecordingIDs); err != nil {
			return err
		}
		if err := replaceAlbumImages(tx, album.ID, r.ImageURLs, r.PrimaryImageIndex); err != nil {
			return err
		}
		return replaceAlbumCustomURLs(tx, album.ID, r.CustomURLs)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := albumInfos([]models.Album{album})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result[0])
}

func AlbumSave(c *gin.Context) {
	r := AlbumSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	album := models.Album{}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if tx.First(&album, r.ID).Error != nil {
			return notFoundError("album", r.ID)
		}
		changed := false
		if r.Title.Set {
			if r.Title.Value == nil {
				return validationError("title cannot be null")
			}
			album.Title = *r.Title.Value
			changed = true
		}
		if r.AlbumType.Set {
			if r.AlbumType.Value == nil {
				return validationError("album_type cannot be null")
			}
			if *r.AlbumType.Value != models.AlbumTypeLP && *r.AlbumType.Value != models.AlbumTypeCD {
				return validationError("album_type must be LP or CD")
			}
			album.AlbumType = *r.AlbumType.Value
			changed = true
		}
		if r.DiscogsURL.Set {
			album.DiscogsURL = r.DiscogsURL.Value
			changed = true
		}
		if r.SpotifyURL.Set {
			album.SpotifyURL = r.SpotifyURL.Value
			changed = true
		}
		if r.Memo.Set {
			album.Memo = r.Memo.Value
			changed = true
		}
		if r.RecordingIDs != nil {
			if err := replaceAlbumRecordings(tx, r.ID, *r.RecordingIDs); err != nil {
				return err
			}
			changed = true
		}
		if r.ImageURLs != nil {
			if err := replaceAlbumImages(tx, r.ID, *r.ImageURLs, r.PrimaryImageIndex); err != nil {
				return err
			}
			changed = true
		}
		if r.CustomURLs != nil {
			if err := replaceAlbumCustomURLs(tx, r.ID, *r.CustomURLs); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return validationError("update payload has no fields")
		}
		return tx.Save(&album).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := albumInfos([]models.Album{album})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result[0])
}

func AlbumDelete(c *gin.Context) {
	r := IDRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		album := models.Album{}
		if tx.First(&album, r.ID).Error != nil {
			return notFoundError("album", r.ID)
		}
		if err := tx.Where("album_id = ?", r.ID).Delete(&models.AlbumRecording{}).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", r.ID).Delete(&models.AlbumImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", r.ID).Delete(&models.AlbumCustomURL{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Album{}, r.ID).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
