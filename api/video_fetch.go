package api

import (
	"cloudreel/media-api/model"
	"cloudreel/media-api/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoFetch returns one video together with the derived stats and
// rendition URLs a card view needs. All URLs come from the stored
// publicId, nothing is recomputed or re-uploaded
func (a *API) VideoFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("videoId")

	var video model.Video

	err := a.DB.
		Where("id = ?", videoID).
		First(&video).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up video", zap.Error(err))
		return
	}

	thumbnail, err := a.Media.ThumbnailURL(video.PublicID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build rendition URLs", zap.Error(err))
		return
	}

	// These can only fail the same way ThumbnailURL does
	preview, _ := a.Media.PreviewURL(video.PublicID)
	download, _ := a.Media.DownloadURL(video.PublicID)

	stats := gin.H{
		"originalSize":   service.FormatSize(video.OriginalSize),
		"compressedSize": service.FormatSize(video.CompressedSize),
		"duration":       service.FormatDuration(video.Duration),
	}

	// Undefined when the original size is unknown. The client shows
	// nothing rather than a bogus number
	if pct, ok := service.CompressionPercentage(video.OriginalSize, video.CompressedSize); ok {
		stats["compressionPercentage"] = pct
	}

	c.JSON(http.StatusOK, gin.H{
		"video": video,
		"stats": stats,
		"urls": gin.H{
			"thumbnail": thumbnail,
			"preview":   preview,
			"download":  download,
		},
	})
}
