package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"catalog/config"
	"catalog/db"
	"catalog/handlers"
	"catalog/models"
	"catalog/storage"
	"catalog/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/image/fetch"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that

	// Composer handlers
	router.GET("/composer/list", handlers.ComposerList)
	router.GET("/composer/get", handlers.ComposerGet)
	router.POST("/composer/create", handlers.ComposerCreate)
	router.POST("/composer/save", handlers.ComposerSave)
	router.POST("/composer/delete", handlers.ComposerDelete)
	// Composition handlers
	router.GET("/composition/list", handlers.CompositionList)
	router.GET("/composition/get", handlers.CompositionGet)
	router.POST("/composition/create", handlers.CompositionCreate)
	router.POST("/composition/save", handlers.CompositionSave)
	router.POST("/composition/delete", handlers.CompositionDelete)
	// Artist handlers
	router.GET("/artist/list", handlers.ArtistList)
	router.GET("/artist/get", handlers.ArtistGet)
	router.POST("/artist/create", handlers.ArtistCreate)
	router.POST("/artist/save", handlers.ArtistSave)
	router.POST("/artist/delete", handlers.ArtistDelete)
	// Recording handlers
	router.GET("/recording/list", handlers.RecordingList)
	router.GET("/recording/get", handlers.RecordingGet)
	router.POST("/recording/create", handlers.RecordingCreate)
	router.POST("/recording/save", handlers.RecordingSave)
	router.POST("/recording/delete", handlers.RecordingDelete)
	// Album handlers
	router.GET("/album/list", handlers.AlbumList)
	router.GET("/album/get", handlers.AlbumGet)
	router.POST("/album/create", handlers.AlbumCreate)
	router.POST("/album/save", handlers.AlbumSave)
	router.POST("/album/delete", handlers.AlbumDelete)
	// Image upload and serving
	router.POST("/image/upload", handlers.ImageUpload)
	router.GET("/image/fetch", (&utils.CacheRouter{CacheTime: 30 * 86400}).Handler(), handlers.ImageFetch)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
