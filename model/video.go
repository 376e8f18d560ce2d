// Package model defines database models
package model

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

type Video struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`

	// Opaque handle assigned by the media service. Every rendition
	// (thumbnail, preview, full asset) is derived from it on demand,
	// no binary content is kept on our side
	PublicID string `gorm:"not null;index" json:"publicId"`

	// Byte count of the source upload as reported by the client
	OriginalSize int64 `json:"originalSize"`
	// Byte count the media service reports after processing
	CompressedSize int64 `json:"compressedSize"`

	// Seconds. Zero when the media service doesn't report one
	Duration float64 `json:"duration"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID != "" {
		return nil
	}

	id, err := gonanoid.New()
	if err != nil {
		return err
	}

	v.ID = id
	return nil
}
