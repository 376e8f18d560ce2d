package api

import (
	"cloudreel/media-api/cloudinary"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SocialFormats lists the named crop presets clients can pick from
func (a *API) SocialFormats(c *gin.Context) {
	c.JSON(http.StatusOK, cloudinary.SocialFormats)
}

// SocialImage derives a crop-to-fill rendition of an uploaded image at
// the exact dimensions of a named preset
func (a *API) SocialImage(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	publicID := c.Query("publicId")
	if publicID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "publicId is missing",
			"requestID": requestID,
		})
		return
	}

	format, ok := cloudinary.SocialFormatByLabel(c.Query("format"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Unknown social format",
			"requestID": requestID,
		})
		return
	}

	url, err := a.Media.SocialURL(publicID, format)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build social image URL", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publicId": publicID,
		"format":   format.Label,
		"width":    format.Width,
		"height":   format.Height,
		"url":      url,
	})
}
