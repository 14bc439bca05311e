package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/db"
	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("cannot open test db: %v", err)
	}
	db.Instance = gdb
	models.Init()

	router := gin.New()
	router.GET("/composer/list", ComposerList)
	router.GET("/composer/get", ComposerGet)
	router.POST("/composer/create", ComposerCreate)
	router.POST("/composer/save", ComposerSave)
	router.POST("/composer/delete", ComposerDelete)
	router.GET("/composition/list", CompositionList)
	router.GET("/composition/get", CompositionGet)
	router.POST("/composition/create", CompositionCreate)
	router.POST("/composition/save", CompositionSave)
	router.POST("/composition/delete", CompositionDelete)
	router.GET("/artist/list", ArtistList)
	router.GET("/artist/get", ArtistGet)
	router.POST("/artist/create", ArtistCreate)
	router.POST("/artist/save", ArtistSave)
	router.POST("/artist/delete", ArtistDelete)
	router.GET("/recording/list", RecordingList)
	router.GET("/recording/get", RecordingGet)
	router.POST("/recording/create", RecordingCreate)
	router.POST("/recording/save", RecordingSave)
	router.POST("/recording/delete", RecordingDelete)
	router.GET("/album/list", AlbumList)
	router.GET("/album/get", AlbumGet)
	router.POST("/album/create", AlbumCreate)
	router.POST("/album/save", AlbumSave)
	router.POST("/album/delete", AlbumDelete)
	router.POST("/image/upload", ImageUpload)
	router.GET("/image/fetch", ImageFetch)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("cannot decode response %q: %v", w.Body.String(), err)
	}
	return result
}

func mustCreate(t *testing.T, router *gin.Engine, path, body string) uint64 {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, path, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST %s = %d, body %s", path, w.Code, w.Body.String())
	}
	var created struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	return created.ID
}
