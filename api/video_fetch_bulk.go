package api

import (
	"cloudreel/media-api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoFetchBulk returns every video, newest first. The list itself is
// public, only mutations need a principal
func (a *API) VideoFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videos := []model.Video{}

	err := a.DB.
		Order("created_at desc").
		Find(&videos).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch videos", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, videos)
}
