package api

import (
	"cloudreel/media-api/cloudinary"
	"cloudreel/media-api/model"
	"cloudreel/media-api/validators"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type videoUploadForm struct {
	Title        string `form:"title" binding:"required"`
	Description  string `form:"description" binding:"required"`
	OriginalSize string `form:"originalSize"`
}

// VideoUpload accepts a multipart video upload, forwards it to the media
// service and persists the resulting metadata. The record is only
// created after the external upload succeeded
func (a *API) VideoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	var form videoUploadForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Title and description are required",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.VideoValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err))

			// That's to set the error into a general one for the users
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	// The upload size the client saw. Falls back to what actually
	// arrived when the field is missing or garbage
	originalSize, err := strconv.ParseInt(form.OriginalSize, 10, 64)
	if err != nil || originalSize <= 0 {
		originalSize = fh.Size
	}

	res, err := a.Media.Upload(c.Request.Context(), f, cloudinary.UploadOptions{
		Kind: cloudinary.KindVideo,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to process upload",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload video to media service", zap.Error(err))
		return
	}

	video := model.Video{
		Title:          form.Title,
		Description:    form.Description,
		PublicID:       res.PublicID,
		OriginalSize:   originalSize,
		CompressedSize: res.Bytes,
		Duration:       res.Duration,
	}

	if err := a.DB.Create(&video).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save video record to db", zap.Error(err))

		// The remote asset exists but nothing references it anymore.
		// Clean it up instead of leaving an orphan
		if derr := a.Media.Destroy(context.Background(), res.PublicID, cloudinary.KindVideo); derr != nil {
			zap.L().Error("Failed to clean up orphaned asset",
				zap.String("publicId", res.PublicID),
				zap.Error(derr),
			)
		}
		return
	}

	c.JSON(http.StatusOK, video)
}
