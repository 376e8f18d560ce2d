package api

import (
	"cloudreel/media-api/cloudinary"
	"cloudreel/media-api/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageUpload stores an image with the media service and hands the
// derived metadata straight back. Image assets are never persisted
// on our side, the caller keeps the publicId
func (a *API) ImageUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.ImageValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	res, err := a.Media.Upload(c.Request.Context(), f, cloudinary.UploadOptions{
		Kind: cloudinary.KindImage,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to process upload",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload image to media service", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publicId": res.PublicID,
		"width":    res.Width,
		"height":   res.Height,
		"format":   res.Format,
	})
}
