package models

import "time"

// Position is a pixel coordinate with origin at the top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DominantColor is an RGB value ranked by how often it occurs in the image.
type DominantColor struct {
	RGB        [3]uint8 `json:"rgb"`
	Hex        string   `json:"hex"`
	PixelCount int      `json:"pixel_count"`
}

// ColorProfile holds the color and contrast metrics of a screenshot.
// DominantColors is ordered by descending pixel frequency and capped at 10.
type ColorProfile struct {
	DominantColors []DominantColor `json:"dominant_colors"`
	ContrastScore  float64         `json:"contrast_score"`
	ColorDiversity int             `json:"color_diversity"`
}

// ElementType classifies a detected UI element by its shape.
type ElementType string

const (
	ElementIcon      ElementType = "icon"
	ElementTextField ElementType = "text_field"
	ElementVertical  ElementType = "vertical_element"
	ElementButton    ElementType = "button"
	ElementContainer ElementType = "container"
	ElementGeneric   ElementType = "generic_element"
)

// UIElement is a detected bounding region. Area is the bounding box
// width times height; the raw contour area only drives classification.
type UIElement struct {
	Type       ElementType `json:"type"`
	Position   Position    `json:"position"`
	Dimensions Dimensions  `json:"dimensions"`
	Area       float64     `json:"area"`
}

// ElementProfile lists detected UI elements in contour traversal order,
// capped at 20. TotalElements counts all retained elements before the cap.
type ElementProfile struct {
	TotalElements int         `json:"total_elements"`
	Elements      []UIElement `json:"elements"`
}

// TextFragment is a recognized text token with its OCR confidence (0-100).
type TextFragment struct {
	Text       string     `json:"text"`
	Confidence int        `json:"confidence"`
	Position   Position   `json:"position"`
	Dimensions Dimensions `json:"dimensions"`
}

// TextProfile holds OCR output filtered by confidence and capped at 10
// fragments. OCRError carries the engine failure note when recognition
// degraded instead of failing the pipeline.
type TextProfile struct {
	TextElementsCount int            `json:"text_elements_count"`
	TextElements      []TextFragment `json:"text_elements"`
	OCRError          string         `json:"error,omitempty"`
}

// LayoutProfile maps zone names to edge density. The six zones come from two
// independent partitionings: rows into top/middle/bottom thirds and columns
// into left/center/right thirds.
type LayoutProfile struct {
	ImageDimensions Dimensions         `json:"image_dimensions"`
	ZoneDensities   map[string]float64 `json:"zone_densities"`
	OverallDensity  float64            `json:"overall_density"`
}

// LowContrastArea is a 50x50 block whose local intensity deviation fell
// below the low-contrast threshold.
type LowContrastArea struct {
	Position      Position `json:"position"`
	ContrastScore float64  `json:"contrast_score"`
}

// AccessibilityProfile reports whole-image contrast variance and the
// low-contrast blocks found in row-major scan order (list capped at 10,
// count uncapped).
type AccessibilityProfile struct {
	OverallContrastVariance float64           `json:"overall_contrast_variance"`
	LowContrastAreasCount   int               `json:"low_contrast_areas_count"`
	LowContrastAreas        []LowContrastArea `json:"low_contrast_areas"`
}

// Severity ranks a recommendation.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RecommendationType identifies the rule that produced a finding.
type RecommendationType string

const (
	RecommendationContrast      RecommendationType = "contrast"
	RecommendationComplexity    RecommendationType = "complexity"
	RecommendationButtonSize    RecommendationType = "button_size"
	RecommendationLayout        RecommendationType = "layout"
	RecommendationAccessibility RecommendationType = "accessibility"
)

// Recommendation is a rule-generated usability finding. Position is set only
// for findings tied to a specific element.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Severity    Severity           `json:"severity"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Suggestion  string             `json:"suggestion"`
	Fix         string             `json:"fix"`
	Position    *Position          `json:"position,omitempty"`
}

// AnalysisResult aggregates the output of one pipeline run.
type AnalysisResult struct {
	Timestamp             time.Time            `json:"timestamp"`
	ImageDimensions       Dimensions           `json:"image_dimensions"`
	ColorAnalysis         ColorProfile         `json:"color_analysis"`
	ElementDetection      ElementProfile       `json:"element_detection"`
	TextAnalysis          TextProfile          `json:"text_analysis"`
	LayoutAnalysis        LayoutProfile        `json:"layout_analysis"`
	AccessibilityAnalysis AccessibilityProfile `json:"accessibility_analysis"`
	Recommendations       []Recommendation     `json:"recommendations"`

	// AnalysisID is set after a successful save; zero when persistence
	// was skipped or failed.
	AnalysisID int64 `json:"analysis_id,omitempty"`
}

// SeverityCounts tallies recommendations by severity.
type SeverityCounts struct {
	High   int `json:"severity_high"`
	Medium int `json:"severity_medium"`
	Low    int `json:"severity_low"`
}

// CountSeverities derives the per-severity tallies from the recommendation
// list. Stored records compute this once at save time.
func CountSeverities(recs []Recommendation) SeverityCounts {
	var c SeverityCounts
	for _, r := range recs {
		switch r.Severity {
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityLow:
			c.Low++
		}
	}
	return c
}
