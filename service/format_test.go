package service

import "testing"

func TestCompressionPercentage(t *testing.T) {
	cases := []struct {
		original   int64
		compressed int64
		want       int
	}{
		{1000, 250, 75},
		{1000, 1000, 0},
		{1000, 0, 100},
		{3, 1, 67},
		{1000, 1500, -50},
	}

	for _, c := range cases {
		got, ok := CompressionPercentage(c.original, c.compressed)
		if !ok {
			t.Fatalf("CompressionPercentage(%d, %d) reported not computable", c.original, c.compressed)
		}
		if got != c.want {
			t.Errorf("CompressionPercentage(%d, %d) = %d, want %d", c.original, c.compressed, got, c.want)
		}
	}
}

func TestCompressionPercentageZeroOriginal(t *testing.T) {
	got, ok := CompressionPercentage(0, 500)
	if ok {
		t.Errorf("expected not computable for zero original size, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{67, "1:07"},
		{600, "10:00"},
		{59.6, "1:00"},
		{5, "0:05"},
		{-3, "0:00"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{10 << 20, "10 MB"},
		{3 << 30, "3 GB"},
	}

	for _, c := range cases {
		if got := FormatSize(c.bytes); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}
