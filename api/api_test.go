package api

import (
	"bytes"
	"cloudreel/media-api/cloudinary"
	"cloudreel/media-api/middleware"
	"cloudreel/media-api/model"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// Minimal headers that the mimetype sniffer recognizes, so validators
// treat the payloads as real media
var (
	mp4Header = append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypisom\x00\x00\x02\x00isomiso2")...)
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
)

// fakeMedia counts calls so tests can assert that rejected requests
// never reach the external service
type fakeMedia struct {
	uploadCalls  int
	destroyCalls int

	uploadErr error
	result    cloudinary.UploadResult
	lastOpts  cloudinary.UploadOptions
}

func (f *fakeMedia) Upload(ctx context.Context, r io.ReadSeeker, opts cloudinary.UploadOptions) (*cloudinary.UploadResult, error) {
	f.uploadCalls++
	f.lastOpts = opts

	if f.uploadErr != nil {
		return nil, f.uploadErr
	}

	res := f.result
	return &res, nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID string, kind cloudinary.AssetKind) error {
	f.destroyCalls++
	return nil
}

func (f *fakeMedia) ThumbnailURL(publicID string) (string, error) {
	return "https://media.test/thumb/" + publicID, nil
}

func (f *fakeMedia) PreviewURL(publicID string) (string, error) {
	return "https://media.test/preview/" + publicID, nil
}

func (f *fakeMedia) DownloadURL(publicID string) (string, error) {
	return "https://media.test/full/" + publicID, nil
}

func (f *fakeMedia) RenderURL(publicID string, mode cloudinary.RenderMode) (string, error) {
	return fmt.Sprintf("https://media.test/render/%s/%s", mode, publicID), nil
}

func (f *fakeMedia) SocialURL(publicID string, format cloudinary.SocialFormat) (string, error) {
	return fmt.Sprintf("https://media.test/social/%dx%d/%s", format.Width, format.Height, publicID), nil
}

func newTestAPI(t *testing.T) (*API, *fakeMedia) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("auth.jwt_secret", testSecret)
	viper.Set("upload.max_size", int64(70<<20))
	viper.Set("upload.rate_limit", 1000)
	viper.Set("upload.rate_burst", 1000)

	d, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := d.AutoMigrate(model.Video{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	m := &fakeMedia{
		result: cloudinary.UploadResult{
			PublicID: "video-uploads/abc123",
			Bytes:    4242,
			Duration: 67,
			Width:    1920,
			Height:   1080,
			Format:   "mp4",
		},
	}

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())

	a := &API{
		DB:     d,
		Router: router,
		Media:  m,
	}
	a.registerRoutes()

	return a, m
}

func authToken(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_2NiWoZK2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	return s
}

// multipartBody builds a multipart request body. An empty fileField
// skips the file part entirely
func multipartBody(t *testing.T, fields map[string]string, fileField, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}

	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, "upload.bin"))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return buf, w.FormDataContentType()
}

func doRequest(t *testing.T, a *API, method, url string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, body)
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func videoCount(t *testing.T, a *API) int64 {
	t.Helper()

	var n int64
	if err := a.DB.Model(model.Video{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count videos: %v", err)
	}
	return n
}
