package cloudinary

import "testing"

func TestParseRenderMode(t *testing.T) {
	cases := []struct {
		in   string
		want RenderMode
	}{
		{"", ModeOriginal},
		{"original", ModeOriginal},
		{"remove-bg", ModeRemoveBackground},
		{"fill-bg", ModeFillBackground},
		{"restore", ModeRestore},
	}

	for _, c := range cases {
		got, err := ParseRenderMode(c.in)
		if err != nil {
			t.Fatalf("ParseRenderMode(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseRenderMode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseRenderModeUnknown(t *testing.T) {
	if _, err := ParseRenderMode("sepia"); err == nil {
		t.Error("unknown mode should be rejected")
	}
}

func TestRenderModesAreAlternatives(t *testing.T) {
	// Each mode maps to exactly one transformation, picking one never
	// composes with another
	seen := map[string]RenderMode{}

	for mode, transformation := range renderTransformations {
		if prev, dup := seen[transformation]; dup && transformation != "" {
			t.Errorf("modes %q and %q share transformation %q", prev, mode, transformation)
		}
		seen[transformation] = mode
	}
}
