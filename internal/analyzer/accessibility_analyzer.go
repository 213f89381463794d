package analyzer

import (
	"image"

	"go-ux-analyzer/pkg/models"
)

// accessibilityAnalyzer implements AccessibilityAnalyzer with a block scan
// over the grayscale raster.
type accessibilityAnalyzer struct {
	blockSize   int
	minLocalStd float64
	maxReported int
}

// NewAccessibilityAnalyzer creates an analyzer that flags blockSize×blockSize
// tiles whose local standard deviation falls below minLocalStd, reporting at
// most maxReported flagged blocks.
func NewAccessibilityAnalyzer(blockSize int, minLocalStd float64, maxReported int) AccessibilityAnalyzer {
	return &accessibilityAnalyzer{
		blockSize:   blockSize,
		minLocalStd: minLocalStd,
		maxReported: maxReported,
	}
}

// AnalyzeAccessibility computes the population variance of the whole
// grayscale image, then scans every complete block row-major, left to right
// and top to bottom. Partial trailing blocks at the right and bottom edges
// are skipped, not padded. The count covers all low-contrast blocks; the
// list is capped in scan order.
func (aa *accessibilityAnalyzer) AnalyzeAccessibility(gray *image.Gray) models.AccessibilityProfile {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	intensities := make([]float64, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			intensities = append(intensities, float64(gray.GrayAt(x, y).Y))
		}
	}
	overallVariance := popVariance(intensities)

	lowContrastCount := 0
	areas := make([]models.LowContrastArea, 0, aa.maxReported)
	block := make([]float64, 0, aa.blockSize*aa.blockSize)

	for y := 0; y+aa.blockSize <= height; y += aa.blockSize {
		for x := 0; x+aa.blockSize <= width; x += aa.blockSize {
			block = block[:0]
			for by := 0; by < aa.blockSize; by++ {
				for bx := 0; bx < aa.blockSize; bx++ {
					block = append(block, float64(gray.GrayAt(bounds.Min.X+x+bx, bounds.Min.Y+y+by).Y))
				}
			}

			localContrast := popStdDev(block)
			if localContrast >= aa.minLocalStd {
				continue
			}
			lowContrastCount++
			if len(areas) < aa.maxReported {
				areas = append(areas, models.LowContrastArea{
					Position:      models.Position{X: x, Y: y},
					ContrastScore: localContrast,
				})
			}
		}
	}

	return models.AccessibilityProfile{
		OverallContrastVariance: overallVariance,
		LowContrastAreasCount:   lowContrastCount,
		LowContrastAreas:        areas,
	}
}
