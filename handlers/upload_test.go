package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"catalog/config"
	"catalog/storage"

	"github.com/gin-gonic/gin"
)

func setupStorage(t *testing.T) {
	t.Helper()
	oldDir := config.DEFAULT_BUCKET_DIR
	config.DEFAULT_BUCKET_DIR = t.TempDir()
	t.Cleanup(func() { config.DEFAULT_BUCKET_DIR = oldDir })
	storage.Init()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func doUpload(t *testing.T, router *gin.Engine, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="cover.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = part.Write(data); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/image/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImageUploadAndFetch(t *testing.T) {
	router := setupTest(t)
	setupStorage(t)
	data := pngBytes(t)

	w := doUpload(t, router, "image/png", data)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d, body %s", w.Code, w.Body.String())
	}
	response := decode[struct {
		Path  string `json:"path"`
		Thumb string `json:"thumb"`
	}](t, w)
	if response.Path == "" {
		t.Fatal("no path in upload response")
	}
	if response.Thumb == "" {
		t.Error("no thumb generated for a decodable image")
	}

	w = doJSON(t, router, http.MethodGet, "/image/fetch?path="+response.Path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("fetch = %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), data) {
		t.Errorf("fetched %d bytes, uploaded %d", w.Body.Len(), len(data))
	}
}

func TestImageUploadUnsupportedType(t *testing.T) {
	router := setupTest(t)
	setupStorage(t)

	w := doUpload(t, router, "application/pdf", []byte("%PDF-1.4"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("pdf upload = %d, want 400", w.Code)
	}
}

func TestImageFetchRejectsTraversal(t *testing.T) {
	router := setupTest(t)
	setupStorage(t)

	for _, path := range []string{"../etc/passwd", "images/../../etc/passwd", "other/file.png", ""} {
		w := doJSON(t, router, http.MethodGet, "/image/fetch?path="+path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("fetch %q = %d, want 400", path, w.Code)
		}
	}
}
