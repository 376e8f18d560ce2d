// Package service holds the pure derived-metric computations shown on
// asset cards
package service

import (
	"fmt"
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// CompressionPercentage returns how much smaller the processed asset is
// compared to the source, rounded to a whole percent. The second return
// is false when the original size is zero and the ratio is undefined
func CompressionPercentage(originalSize, compressedSize int64) (int, bool) {
	if originalSize == 0 {
		return 0, false
	}

	ratio := 1 - float64(compressedSize)/float64(originalSize)
	return int(math.Round(ratio * 100)), true
}

// FormatDuration renders seconds as minutes:seconds with the seconds
// zero-padded, e.g. 67 -> "1:07". Fractional input is rounded to whole
// seconds first so 59.6 becomes "1:00" and never "0:60"
func FormatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}

	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatSize renders a byte count using base-1024 units, e.g.
// 1536 -> "1.5 KB"
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	val := float64(bytes)
	unit := 0

	for val >= 1024 && unit < len(sizeUnits)-1 {
		val /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, sizeUnits[0])
	}

	rounded := math.Round(val*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}
