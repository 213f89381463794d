package analyzer

import (
	"image"
	"image/color"
	"image/draw"
)

var whitePixel = color.RGBA{255, 255, 255, 255}

// createTestImage creates a simple test image for testing purposes
func createTestImage(width, height int, fillColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fillColor)
		}
	}
	return img
}

// createGradientImage creates a gradient test image
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Create a gradient from black to white
			intensity := uint8((x + y) * 255 / (width + height))
			img.Set(x, y, color.RGBA{intensity, intensity, intensity, 255})
		}
	}
	return img
}

// grayscaleOf converts an image to a zero-origin grayscale raster the way
// the pipeline does.
func grayscaleOf(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// createEdgeMap creates an empty binary edge map of the given size.
func createEdgeMap(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// fillEdgeRect marks every pixel of the given rectangle as an edge.
func fillEdgeRect(edges *image.Gray, rect image.Rectangle) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			edges.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}
