package api

import (
	"cloudreel/media-api/cloudinary"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageRender derives one alternative rendering (background removal,
// background fill or restoration) of an already uploaded image from its
// publicId. The modes replace each other, they are never stacked
func (a *API) ImageRender(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	publicID := c.Query("publicId")
	if publicID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "publicId is missing",
			"requestID": requestID,
		})
		return
	}

	mode, err := cloudinary.ParseRenderMode(c.Query("mode"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	url, err := a.Media.RenderURL(publicID, mode)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build render URL", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publicId": publicID,
		"mode":     mode,
		"url":      url,
	})
}
