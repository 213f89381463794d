package analyzer

import (
	"image"

	"go-ux-analyzer/pkg/models"
)

// elementDetector implements ElementDetector over the shared edge map.
type elementDetector struct {
	minArea     int
	maxElements int
}

// NewElementDetector creates a detector that discards contours with at most
// minArea pixels and reports at most maxElements elements.
func NewElementDetector(minArea, maxElements int) ElementDetector {
	return &elementDetector{minArea: minArea, maxElements: maxElements}
}

// DetectElements groups edge pixels into 8-connected contours in row-major
// scan order, computes each contour's bounding box, and classifies it by
// shape. TotalElements counts every retained contour; the reported list is
// capped, preserving detection order.
func (ed *elementDetector) DetectElements(edges *image.Gray) models.ElementProfile {
	bounds := edges.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	elements := make([]models.UIElement, 0)
	if width == 0 || height == 0 {
		return models.ElementProfile{TotalElements: 0, Elements: elements}
	}

	visited := make([]bool, width*height)
	queue := make([]image.Point, 0, 256)

	for sy := 0; sy < height; sy++ {
		for sx := 0; sx < width; sx++ {
			if visited[sy*width+sx] || edges.GrayAt(sx+bounds.Min.X, sy+bounds.Min.Y).Y == 0 {
				continue
			}

			// Flood-fill one connected component of edge pixels.
			contourArea := 0
			minX, minY := sx, sy
			maxX, maxY := sx, sy

			visited[sy*width+sx] = true
			queue = append(queue[:0], image.Point{X: sx, Y: sy})
			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				contourArea++

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						nx, ny := p.X+kx, p.Y+ky
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						if visited[ny*width+nx] || edges.GrayAt(nx+bounds.Min.X, ny+bounds.Min.Y).Y == 0 {
							continue
						}
						visited[ny*width+nx] = true
						queue = append(queue, image.Point{X: nx, Y: ny})
					}
				}
			}

			if contourArea <= ed.minArea {
				continue
			}

			boxWidth := maxX - minX + 1
			boxHeight := maxY - minY + 1
			elements = append(elements, models.UIElement{
				Type:       classifyElement(boxWidth, boxHeight, float64(contourArea)),
				Position:   models.Position{X: minX, Y: minY},
				Dimensions: models.Dimensions{Width: boxWidth, Height: boxHeight},
				// Reported area is the bounding box, not the contour pixel
				// count used for classification.
				Area: float64(boxWidth * boxHeight),
			})
		}
	}

	total := len(elements)
	if len(elements) > ed.maxElements {
		elements = elements[:ed.maxElements]
	}
	return models.ElementProfile{TotalElements: total, Elements: elements}
}

// classifyElement maps a contour's bounding box and raw area to an element
// type. The rules are evaluated in priority order.
func classifyElement(width, height int, area float64) models.ElementType {
	aspectRatio := 0.0
	if height > 0 {
		aspectRatio = float64(width) / float64(height)
	}

	switch {
	case width < 50 && height < 50:
		return models.ElementIcon
	case aspectRatio > 3:
		return models.ElementTextField
	case aspectRatio < 0.5:
		return models.ElementVertical
	case aspectRatio >= 0.8 && aspectRatio <= 1.2 && area < 5000:
		return models.ElementButton
	case area > 10000:
		return models.ElementContainer
	default:
		return models.ElementGeneric
	}
}
