package analyzer

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// edgeRadius is the Gaussian pre-blur applied before gradient computation to
// keep sensor noise out of the edge map.
const edgeRadius = 1.4

// computeEdges builds the binary edge map shared by the element detector and
// the layout analyzer: Gaussian blur, Sobel gradient magnitude, then double
// thresholding. Pixels above the high threshold are edges; pixels between
// the thresholds count only when an 8-neighbor is above the high threshold.
func computeEdges(gray *image.Gray, lowThreshold, highThreshold int) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	edges := image.NewGray(image.Rect(0, 0, width, height))
	if width < 3 || height < 3 {
		return edges
	}

	blurred := blur.Gaussian(gray, edgeRadius)

	// Luminance plane, row-major. The blurred image is grayscale so any
	// channel works.
	lum := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lum[y*width+x] = float64(blurred.RGBAAt(x+bounds.Min.X, y+bounds.Min.Y).R)
		}
	}

	magnitude := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := -lum[(y-1)*width+x-1] + lum[(y-1)*width+x+1] +
				-2*lum[y*width+x-1] + 2*lum[y*width+x+1] +
				-lum[(y+1)*width+x-1] + lum[(y+1)*width+x+1]

			gy := -lum[(y-1)*width+x-1] - 2*lum[(y-1)*width+x] - lum[(y-1)*width+x+1] +
				lum[(y+1)*width+x-1] + 2*lum[(y+1)*width+x] + lum[(y+1)*width+x+1]

			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}

	low := float64(lowThreshold)
	high := float64(highThreshold)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			mag := magnitude[y*width+x]
			if mag >= high {
				edges.SetGray(x, y, color.Gray{Y: 255})
				continue
			}
			if mag < low {
				continue
			}
			// Weak edge: keep only when connected to a strong one.
			hasStrongNeighbor := false
			for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
				for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
					if magnitude[(y+ky)*width+x+kx] >= high {
						hasStrongNeighbor = true
					}
				}
			}
			if hasStrongNeighbor {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return edges
}

// countEdges returns the number of edge pixels inside the given rectangle of
// the edge map.
func countEdges(edges *image.Gray, rect image.Rectangle) int {
	count := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if edges.GrayAt(x, y).Y > 0 {
				count++
			}
		}
	}
	return count
}
