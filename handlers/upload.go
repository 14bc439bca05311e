package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"

	"catalog/config"
	"catalog/storage"
	"catalog/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const thumbMaxSize = 1280

// Extension by declared media type; doubles as the allow-list.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func ImageUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		bindError(c, err)
		return
	}
	if file.Size > int64(config.MAX_UPLOAD_MB)<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	mimeType := file.Header.Get("Content-Type")
	ext, ok := imageExtensions[mimeType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media type '" + mimeType + "'"})
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no storage bucket configured"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read upload"})
		return
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read upload"})
		return
	}

	name := uuid.NewString()
	path := "images/" + name + ext
	if _, err = store.Save(path, bytes.NewReader(data)); err != nil {
		log.Print(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save file"})
		return
	}
	// Thumbs are best-effort: webp for example has no registered decoder
	thumbPath := "images/" + name + "_thumb.jpg"
	var thumb bytes.Buffer
	if _, err = utils.CreateThumb(thumbMaxSize, bytes.NewReader(data), &thumb); err == nil {
		if _, err = store.Save(thumbPath, &thumb); err != nil {
			log.Print(err)
			thumbPath = ""
		}
	} else {
		thumbPath = ""
	}
	c.JSON(http.StatusCreated, gin.H{"path": path, "thumb": thumbPath})
}

func ImageFetch(c *gin.Context) {
	path := c.Query("path")
	if path == "" || strings.Contains(path, "..") || !strings.HasPrefix(path, "images/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad path"})
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no storage bucket configured"})
		return
	}
	store.Serve(path, c.Request, c.Writer)
}
