package analyzer

import (
	"time"

	"go-ux-analyzer/internal/recommend"
)

// Options parameterizes one pipeline instance. One pipeline implementation
// covers every deployment profile; the differences live here.
type Options struct {
	// Edge detection thresholds for the shared gradient map.
	EdgeLowThreshold  int
	EdgeHighThreshold int

	// Element detection.
	MinElementArea int // contours at or below this pixel count are noise
	MaxElements    int // reported element cap, detection order

	// OCR filtering.
	MinTextConfidence int // fragments must score strictly above this
	MaxTextFragments  int
	OCRTimeout        time.Duration // zero disables the per-run OCR deadline

	// Color analysis.
	MaxDominantColors int

	// Accessibility block scan.
	BlockSize           int
	LowContrastStdDev   float64
	MaxLowContrastAreas int // reported block cap, scan order

	// Recommendation rules.
	Thresholds     recommend.Thresholds
	SortBySeverity bool
}

// DefaultOptions returns the lenient deployment profile.
func DefaultOptions() Options {
	return Options{
		EdgeLowThreshold:    50,
		EdgeHighThreshold:   150,
		MinElementArea:      100,
		MaxElements:         20,
		MinTextConfidence:   30,
		MaxTextFragments:    10,
		OCRTimeout:          10 * time.Second,
		MaxDominantColors:   10,
		BlockSize:           50,
		LowContrastStdDev:   20,
		MaxLowContrastAreas: 10,
		Thresholds:          recommend.Lenient(),
		SortBySeverity:      false,
	}
}

// StrictOptions returns the strict deployment profile, which only flags
// pronounced issues and sorts findings by severity.
func StrictOptions() Options {
	opts := DefaultOptions()
	opts.Thresholds = recommend.Strict()
	opts.SortBySeverity = true
	return opts
}
