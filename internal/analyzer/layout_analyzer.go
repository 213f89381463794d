package analyzer

import (
	"image"

	"go-ux-analyzer/pkg/models"
)

// Zone names used by the layout profile. Rows and columns are partitioned
// into thirds independently, so the six zones overlap.
const (
	ZoneTop    = "top"
	ZoneMiddle = "middle"
	ZoneBottom = "bottom"
	ZoneLeft   = "left"
	ZoneCenter = "center"
	ZoneRight  = "right"
)

// layoutAnalyzer implements LayoutAnalyzer over the shared edge map.
type layoutAnalyzer struct{}

// NewLayoutAnalyzer creates a layout analyzer.
func NewLayoutAnalyzer() LayoutAnalyzer {
	return &layoutAnalyzer{}
}

// AnalyzeLayout partitions the rows into top/middle/bottom thirds and the
// columns into left/center/right thirds, then reports the edge-pixel
// fraction per zone and across the whole image. The trailing rows and
// columns left by integer division belong to the bottom and right zones.
func (la *layoutAnalyzer) AnalyzeLayout(edges *image.Gray) models.LayoutProfile {
	bounds := edges.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	zones := map[string]image.Rectangle{
		ZoneTop:    image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+height/3),
		ZoneMiddle: image.Rect(bounds.Min.X, bounds.Min.Y+height/3, bounds.Max.X, bounds.Min.Y+2*height/3),
		ZoneBottom: image.Rect(bounds.Min.X, bounds.Min.Y+2*height/3, bounds.Max.X, bounds.Max.Y),
		ZoneLeft:   image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+width/3, bounds.Max.Y),
		ZoneCenter: image.Rect(bounds.Min.X+width/3, bounds.Min.Y, bounds.Min.X+2*width/3, bounds.Max.Y),
		ZoneRight:  image.Rect(bounds.Min.X+2*width/3, bounds.Min.Y, bounds.Max.X, bounds.Max.Y),
	}

	densities := make(map[string]float64, len(zones))
	for name, rect := range zones {
		size := rect.Dx() * rect.Dy()
		if size == 0 {
			densities[name] = 0
			continue
		}
		densities[name] = float64(countEdges(edges, rect)) / float64(size)
	}

	overall := 0.0
	if width*height > 0 {
		overall = float64(countEdges(edges, bounds)) / float64(width*height)
	}

	return models.LayoutProfile{
		ImageDimensions: models.Dimensions{Width: width, Height: height},
		ZoneDensities:   densities,
		OverallDensity:  overall,
	}
}
