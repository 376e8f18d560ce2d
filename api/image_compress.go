package api

import (
	"cloudreel/media-api/cloudinary"
	"cloudreel/media-api/validators"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageCompress uploads an image with quality and format negotiation
// turned on and returns the size the service managed to get it down to.
// Nothing is persisted, the response is the whole result
func (a *API) ImageCompress(c *gin.Context) {
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

	originalSize, err := strconv.ParseInt(c.PostForm("originalSize"), 10, 64)
	if err != nil || originalSize <= 0 {
		originalSize = fh.Size
	}

	res, err := a.Media.Upload(c.Request.Context(), f, cloudinary.UploadOptions{
		Kind:     cloudinary.KindImage,
		Compress: true,
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
		"publicId":       res.PublicID,
		"width":          res.Width,
		"height":         res.Height,
		"originalSize":   originalSize,
		"compressedSize": res.Bytes,
		"format":         res.Format,
	})
}
