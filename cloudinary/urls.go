package cloudinary

import (
	"fmt"
)

// Rendition transformations. All of them derive from the stored publicId
// alone, the source is never re-uploaded
const (
	// Static card thumbnail, a jpg frame of the video
	thumbnailTransformation = "c_fill,g_auto,w_400,h_300,q_auto,f_jpg"
	// 15 second auto-generated preview played on hover
	previewTransformation = "w_400,h_300/e_preview:duration_15:max_seg_9:min_seg_dur_1"
	// Full asset used for client-side download
	downloadTransformation = "w_1920,h_1080"
)

// RenderMode selects one alternative rendering of an uploaded image.
// Modes are mutually exclusive, picking one replaces the others
type RenderMode string

const (
	ModeOriginal         RenderMode = "original"
	ModeRemoveBackground RenderMode = "remove-bg"
	ModeFillBackground   RenderMode = "fill-bg"
	ModeRestore          RenderMode = "restore"
)

var renderTransformations = map[RenderMode]string{
	ModeOriginal:         "",
	ModeRemoveBackground: "e_background_removal",
	ModeFillBackground:   "b_gen_fill,c_pad,ar_16:9",
	ModeRestore:          "e_gen_restore",
}

// ParseRenderMode validates a user-supplied mode string. An empty string
// means the original rendering
func ParseRenderMode(s string) (RenderMode, error) {
	if s == "" {
		return ModeOriginal, nil
	}

	mode := RenderMode(s)
	if _, ok := renderTransformations[mode]; !ok {
		return "", fmt.Errorf("unknown render mode %q", s)
	}

	return mode, nil
}

func (c *Client) ThumbnailURL(publicID string) (string, error) {
	return c.videoURL(publicID, thumbnailTransformation)
}

func (c *Client) PreviewURL(publicID string) (string, error) {
	return c.videoURL(publicID, previewTransformation)
}

func (c *Client) DownloadURL(publicID string) (string, error) {
	return c.videoURL(publicID, downloadTransformation)
}

func (c *Client) RenderURL(publicID string, mode RenderMode) (string, error) {
	t, ok := renderTransformations[mode]
	if !ok {
		return "", fmt.Errorf("unknown render mode %q", mode)
	}

	return c.imageURL(publicID, t)
}

func (c *Client) SocialURL(publicID string, format SocialFormat) (string, error) {
	return c.imageURL(publicID, format.Transformation())
}

func (c *Client) imageURL(publicID, transformation string) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build image URL for %s, %w", publicID, err)
	}

	img.Transformation = transformation
	return img.String()
}

func (c *Client) videoURL(publicID, transformation string) (string, error) {
	vid, err := c.cld.Video(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build video URL for %s, %w", publicID, err)
	}

	vid.Transformation = transformation
	return vid.String()
}
