package report

import (
	"strings"
)

// SparklineWidth is the default number of cells in a day sparkline.
const SparklineWidth = 48

// SparklineBlocks are the block characters from lowest to highest.
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Resample averages values into width buckets.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(values)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx <= startIdx {
			endIdx = startIdx + 1
		}
		if endIdx > len(values) {
			endIdx = len(values)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += values[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}

// AltitudeLevel maps an altitude to [0,1]; anything at or below the horizon is 0.
func AltitudeLevel(altDeg float64) float64 {
	if altDeg < 0 {
		return 0
	}
	if altDeg > 90 {
		return 1
	}
	return altDeg / 90
}

// BlockFor returns the sparkline block for a level in [0,1].
func BlockFor(level float64) rune {
	idx := int(level * 7)
	if idx < 0 {
		idx = 0
	}
	if idx > 7 {
		idx = 7
	}
	return SparklineBlocks[idx]
}

// Sparkline renders altitudes as plain block characters. Below-horizon cells
// are drawn as spaces.
func Sparkline(altitudes []float64, width int) string {
	cells := Resample(altitudes, width)

	var sb strings.Builder
	for _, alt := range cells {
		if alt < 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(BlockFor(AltitudeLevel(alt)))
	}
	return sb.String()
}
