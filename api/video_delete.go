package api

import (
	"cloudreel/media-api/cloudinary"
	"cloudreel/media-api/model"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoDelete removes a video record and then the remote asset behind
// it. The record is authoritative, so it goes first. A failed remote
// destroy is logged but doesn't fail the request
func (a *API) VideoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("videoId")
	if videoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

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

	err = a.DB.
		Where("id = ?", videoID).
		Delete(model.Video{}).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete video record", zap.Error(err))
		return
	}

	if err := a.Media.Destroy(context.Background(), video.PublicID, cloudinary.KindVideo); err != nil {
		zap.L().Error("Failed to destroy remote asset",
			zap.String("publicId", video.PublicID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Video deleted successfully",
		"requestID": requestID,
	})
}
