package analyzer

import (
	"context"
	"image"

	"go-ux-analyzer/pkg/models"
)

// ColorAnalyzer computes dominant colors and the global contrast score.
type ColorAnalyzer interface {
	AnalyzeColors(img image.Image, gray *image.Gray) models.ColorProfile
}

// ElementDetector finds candidate UI element bounding boxes on the shared
// edge map and classifies them by shape heuristics.
type ElementDetector interface {
	DetectElements(edges *image.Gray) models.ElementProfile
}

// TextAnalyzer extracts positioned text fragments via OCR. It degrades
// gracefully: an engine failure yields an empty profile with an error note,
// never a pipeline failure.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, img image.Image) models.TextProfile
}

// LayoutAnalyzer computes per-zone and overall edge density.
type LayoutAnalyzer interface {
	AnalyzeLayout(edges *image.Gray) models.LayoutProfile
}

// AccessibilityAnalyzer scans fixed-size blocks for local contrast.
type AccessibilityAnalyzer interface {
	AnalyzeAccessibility(gray *image.Gray) models.AccessibilityProfile
}
