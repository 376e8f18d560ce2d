// Package cloudinary provides a client for the hosted media service that
// stores every uploaded asset and computes all derived renditions
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	sdk "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ErrUploadFailed wraps any upload failure, network or service rejection.
// Callers must not create a metadata record when they see it
var ErrUploadFailed = errors.New("upload failed")

const (
	maxUploadAttempts = 3
	retryBackoff      = 500 * time.Millisecond
)

type AssetKind string

const (
	KindImage AssetKind = "image"
	KindVideo AssetKind = "video"
)

// UploadResult is the derived metadata the media service reports after
// storing and processing an upload
type UploadResult struct {
	PublicID string
	Bytes    int64
	Duration float64
	Width    int
	Height   int
	Format   string
}

type UploadOptions struct {
	Kind AssetKind
	// Compress asks the service to negotiate quality and format for the
	// content instead of keeping the original encoding. Always on for video
	Compress bool
}

// Transformer is what the endpoints depend on. The concrete Client talks
// to Cloudinary, tests swap in a counting fake
type Transformer interface {
	Upload(ctx context.Context, r io.ReadSeeker, opts UploadOptions) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string, kind AssetKind) error

	ThumbnailURL(publicID string) (string, error)
	PreviewURL(publicID string) (string, error)
	DownloadURL(publicID string) (string, error)
	RenderURL(publicID string, mode RenderMode) (string, error)
	SocialURL(publicID string, format SocialFormat) (string, error)
}

type Client struct {
	cld     *sdk.Cloudinary
	timeout time.Duration

	videoFolder string
	imageFolder string
}

func New() (*Client, error) {
	cld, err := sdk.NewFromParams(
		viper.GetString("cloudinary.cloud_name"),
		viper.GetString("cloudinary.api_key"),
		viper.GetString("cloudinary.api_secret"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary client, %w", err)
	}

	return &Client{
		cld:         cld,
		timeout:     time.Duration(viper.GetInt("upload.timeout")) * time.Second,
		videoFolder: viper.GetString("cloudinary.video_folder"),
		imageFolder: viper.GetString("cloudinary.image_folder"),
	}, nil
}

// Upload sends the raw bytes to the media service and returns the durable
// reference plus derived metadata. The call is bounded by the configured
// timeout and retried with backoff on transient failures, rewinding the
// reader between attempts
func (c *Client) Upload(ctx context.Context, r io.ReadSeeker, opts UploadOptions) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := uploader.UploadParams{
		ResourceType: string(opts.Kind),
		Folder:       c.imageFolder,
	}

	if opts.Kind == KindVideo {
		params.Folder = c.videoFolder
	}

	if opts.Compress || opts.Kind == KindVideo {
		params.Transformation = "q_auto,f_auto"
	}

	var lastErr error

	for attempt := range maxUploadAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w, %v", ErrUploadFailed, ctx.Err())
			case <-time.After(retryBackoff << attempt):
			}

			if _, err := r.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w, failed to rewind upload body, %v", ErrUploadFailed, err)
			}

			zap.L().Warn("Retrying upload",
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
		}

		res, err := c.cld.Upload.Upload(ctx, r, params)
		if err != nil {
			lastErr = err
			continue
		}

		// The SDK reports service-side rejections in the body instead of
		// the error return. These aren't transient, so no retry
		if res.Error.Message != "" {
			return nil, fmt.Errorf("%w, %s", ErrUploadFailed, res.Error.Message)
		}

		return &UploadResult{
			PublicID: res.PublicID,
			Bytes:    int64(res.Bytes),
			Duration: res.Duration,
			Width:    res.Width,
			Height:   res.Height,
			Format:   res.Format,
		}, nil
	}

	return nil, fmt.Errorf("%w, %v", ErrUploadFailed, lastErr)
}

// Destroy removes a stored asset. Used to clean up orphans when a
// persistence step fails after a successful upload, and when a user
// deletes a video
func (c *Client) Destroy(ctx context.Context, publicID string, kind AssetKind) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("failed to destroy asset %s, %w", publicID, err)
	}

	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("failed to destroy asset %s, %s", publicID, res.Result)
	}

	return nil
}
