package cloudinary

import "fmt"

// SocialFormat maps a human-readable preset label to the exact dimensions
// and aspect ratio of a social-media image slot
type SocialFormat struct {
	Label       string `json:"label"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspectRatio"`
}

// SocialFormats lists every supported preset in display order
var SocialFormats = []SocialFormat{
	{Label: "Linkedin Profile (1:1)", Width: 1080, Height: 1080, AspectRatio: "1:1"},
	{Label: "Instagram Portrait (4:5)", Width: 1080, Height: 1350, AspectRatio: "4:5"},
	{Label: "Twitter Post (16:9)", Width: 1200, Height: 675, AspectRatio: "16:9"},
	{Label: "Linkedin CoverImage (4:1)", Width: 1584, Height: 396, AspectRatio: "4:1"},
	{Label: "Twitter Header (3:1)", Width: 1500, Height: 500, AspectRatio: "3:1"},
	{Label: "Facebook Cover (205:78)", Width: 820, Height: 312, AspectRatio: "205:78"},
}

// SocialFormatByLabel looks up a preset by its exact label
func SocialFormatByLabel(label string) (SocialFormat, bool) {
	for _, f := range SocialFormats {
		if f.Label == label {
			return f, true
		}
	}

	return SocialFormat{}, false
}

// Transformation builds the center-weighted crop-to-fill request for
// this preset
func (f SocialFormat) Transformation() string {
	return fmt.Sprintf("ar_%s,c_fill,g_auto,w_%d,h_%d", f.AspectRatio, f.Width, f.Height)
}
