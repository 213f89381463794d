package analyzer

import (
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"go-ux-analyzer/pkg/models"
)

// colorAnalyzer implements ColorAnalyzer over exact RGB frequencies.
type colorAnalyzer struct {
	maxColors int
}

// NewColorAnalyzer creates a color analyzer reporting at most maxColors
// dominant colors.
func NewColorAnalyzer(maxColors int) ColorAnalyzer {
	return &colorAnalyzer{maxColors: maxColors}
}

// AnalyzeColors counts every distinct RGB value, reports the most frequent
// ones in descending order, and scores contrast as the population standard
// deviation of the grayscale intensities.
func (ca *colorAnalyzer) AnalyzeColors(img image.Image, gray *image.Gray) models.ColorProfile {
	bounds := img.Bounds()

	counts := make(map[uint32]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(b>>8)
			counts[key]++
		}
	}

	type colorCount struct {
		key   uint32
		count int
	}
	ranked := make([]colorCount, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, colorCount{key: key, count: count})
	}
	// Ties break on the packed RGB value so the ordering is deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].key < ranked[j].key
	})

	limit := ca.maxColors
	if len(ranked) < limit {
		limit = len(ranked)
	}
	dominant := make([]models.DominantColor, 0, limit)
	for _, cc := range ranked[:limit] {
		r := uint8(cc.key >> 16)
		g := uint8(cc.key >> 8)
		b := uint8(cc.key)
		hex := colorful.Color{
			R: float64(r) / 255.0,
			G: float64(g) / 255.0,
			B: float64(b) / 255.0,
		}.Hex()
		dominant = append(dominant, models.DominantColor{
			RGB:        [3]uint8{r, g, b},
			Hex:        hex,
			PixelCount: cc.count,
		})
	}

	grayBounds := gray.Bounds()
	intensities := make([]float64, 0, grayBounds.Dx()*grayBounds.Dy())
	for y := grayBounds.Min.Y; y < grayBounds.Max.Y; y++ {
		for x := grayBounds.Min.X; x < grayBounds.Max.X; x++ {
			intensities = append(intensities, float64(gray.GrayAt(x, y).Y))
		}
	}

	return models.ColorProfile{
		DominantColors: dominant,
		ContrastScore:  popStdDev(intensities),
		ColorDiversity: len(counts),
	}
}
