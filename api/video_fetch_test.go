package api

import (
	"cloudreel/media-api/model"
	"encoding/json"
	"net/http"
	"testing"
)

func TestVideoFetchDerivedStats(t *testing.T) {
	a, _ := newTestAPI(t)

	video := model.Video{
		Title:          "Beach day",
		Description:    "Waves and sand",
		PublicID:       "video-uploads/abc123",
		OriginalSize:   1000,
		CompressedSize: 250,
		Duration:       67,
	}
	if err := a.DB.Create(&video).Error; err != nil {
		t.Fatalf("failed to seed video: %v", err)
	}

	rec := doRequest(t, a, http.MethodGet, "/api/videos/"+video.ID, nil, "", authToken(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Stats struct {
			CompressionPercentage *int   `json:"compressionPercentage"`
			Duration              string `json:"duration"`
			OriginalSize          string `json:"originalSize"`
		} `json:"stats"`
		URLs struct {
			Thumbnail string `json:"thumbnail"`
			Preview   string `json:"preview"`
			Download  string `json:"download"`
		} `json:"urls"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got.Stats.CompressionPercentage == nil || *got.Stats.CompressionPercentage != 75 {
		t.Errorf("expected compression percentage 75, got %v", got.Stats.CompressionPercentage)
	}
	if got.Stats.Duration != "1:07" {
		t.Errorf("expected duration '1:07', got %q", got.Stats.Duration)
	}
	if got.URLs.Thumbnail == "" || got.URLs.Preview == "" || got.URLs.Download == "" {
		t.Errorf("expected all rendition URLs to be derived, got %+v", got.URLs)
	}
}

func TestVideoFetchZeroOriginalSize(t *testing.T) {
	a, _ := newTestAPI(t)

	video := model.Video{
		Title:          "Broken upload",
		Description:    "Size never reported",
		PublicID:       "video-uploads/zero",
		OriginalSize:   0,
		CompressedSize: 4242,
	}
	if err := a.DB.Create(&video).Error; err != nil {
		t.Fatalf("failed to seed video: %v", err)
	}

	rec := doRequest(t, a, http.MethodGet, "/api/videos/"+video.ID, nil, "", authToken(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got struct {
		Stats map[string]any `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if _, present := got.Stats["compressionPercentage"]; present {
		t.Error("compression percentage must be omitted when the original size is zero")
	}
}

func TestVideoFetchNotFound(t *testing.T) {
	a, _ := newTestAPI(t)

	rec := doRequest(t, a, http.MethodGet, "/api/videos/nope", nil, "", authToken(t))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
