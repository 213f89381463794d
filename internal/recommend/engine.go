package recommend

import (
	"fmt"
	"sort"

	"go-ux-analyzer/pkg/models"
)

// Thresholds carries the tunable limits the rule table evaluates against.
// Deployments disagree on the exact values, so they are plain configuration
// rather than constants.
type Thresholds struct {
	// MinContrastScore fires the contrast rule when the global contrast
	// score falls below it.
	MinContrastScore float64
	// MaxElementsPerScreen fires the complexity rule when more elements
	// were detected.
	MaxElementsPerScreen int
	// MinButtonSize is the smallest comfortable tap target in pixels,
	// per WCAG 2.1 AA.
	MinButtonSize int
	// MaxOverallDensity fires the layout rule when the edge density of the
	// whole image exceeds it.
	MaxOverallDensity float64
	// MaxLowContrastAreas fires the accessibility rule when more
	// low-contrast blocks were found.
	MaxLowContrastAreas int
}

// Lenient returns the threshold set that flags issues aggressively.
func Lenient() Thresholds {
	return Thresholds{
		MinContrastScore:     50,
		MaxElementsPerScreen: 12,
		MinButtonSize:        44,
		MaxOverallDensity:    0.25,
		MaxLowContrastAreas:  1,
	}
}

// Strict returns the threshold set that only flags pronounced issues.
func Strict() Thresholds {
	return Thresholds{
		MinContrastScore:     30,
		MaxElementsPerScreen: 15,
		MinButtonSize:        44,
		MaxOverallDensity:    0.3,
		MaxLowContrastAreas:  5,
	}
}

// Engine turns analyzer output into prioritized findings. It is stateless
// and deterministic: the same profiles always yield the same list.
type Engine struct {
	thresholds     Thresholds
	sortBySeverity bool
}

// NewEngine creates a rule engine. When sortBySeverity is set the final list
// is stably sorted high, medium, low; otherwise findings stay in rule order.
func NewEngine(thresholds Thresholds, sortBySeverity bool) *Engine {
	return &Engine{thresholds: thresholds, sortBySeverity: sortBySeverity}
}

// Generate evaluates every rule independently against the analyzer profiles.
// Each triggered rule appends exactly one recommendation, except the button
// rule which appends one per offending button.
func (e *Engine) Generate(result *models.AnalysisResult) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, 4)

	if result.ColorAnalysis.ContrastScore < e.thresholds.MinContrastScore {
		recommendations = append(recommendations, models.Recommendation{
			Type:     models.RecommendationContrast,
			Severity: models.SeverityHigh,
			Title:    "Insufficient contrast",
			Description: fmt.Sprintf(
				"The overall contrast of the interface is %.1f, below the recommended minimum of %.0f, which can hurt readability.",
				result.ColorAnalysis.ContrastScore, e.thresholds.MinContrastScore),
			Suggestion: "Increase the contrast between text and background. Use more contrasting colors.",
			Fix:        "Adjust element colors to reach a contrast ratio of at least 4.5:1.",
		})
	}

	totalElements := result.ElementDetection.TotalElements
	if totalElements > e.thresholds.MaxElementsPerScreen {
		recommendations = append(recommendations, models.Recommendation{
			Type:     models.RecommendationComplexity,
			Severity: models.SeverityMedium,
			Title:    "Too many elements on screen",
			Description: fmt.Sprintf(
				"The screen contains %d elements, above the recommended limit of %d, which can cause cognitive overload.",
				totalElements, e.thresholds.MaxElementsPerScreen),
			Suggestion: "Reduce the number of simultaneously visible elements or organize them into groups.",
			Fix:        "Use tabs, accordions or separate pages to reduce visual complexity.",
		})
	}

	for _, element := range result.ElementDetection.Elements {
		if element.Type != models.ElementButton {
			continue
		}
		width := element.Dimensions.Width
		height := element.Dimensions.Height
		if width >= e.thresholds.MinButtonSize && height >= e.thresholds.MinButtonSize {
			continue
		}
		position := element.Position
		recommendations = append(recommendations, models.Recommendation{
			Type:     models.RecommendationButtonSize,
			Severity: models.SeverityMedium,
			Title:    "Button too small",
			Description: fmt.Sprintf(
				"A %dx%dpx button is too small for comfortable touch interaction.", width, height),
			Suggestion: fmt.Sprintf("Increase the button size to at least %dx%dpx.",
				e.thresholds.MinButtonSize, e.thresholds.MinButtonSize),
			Fix: fmt.Sprintf("Resize the button located at position (%d, %d).",
				position.X, position.Y),
			Position: &position,
		})
	}

	if result.LayoutAnalysis.OverallDensity > e.thresholds.MaxOverallDensity {
		recommendations = append(recommendations, models.Recommendation{
			Type:     models.RecommendationLayout,
			Severity: models.SeverityMedium,
			Title:    "Interface too dense",
			Description: fmt.Sprintf(
				"The interface has an element density of %.0f%%, which can hurt clarity.",
				result.LayoutAnalysis.OverallDensity*100),
			Suggestion: "Add more spacing between elements and leave breathing room.",
			Fix:        "Increase margins and spacing between components.",
		})
	}

	lowContrastAreas := result.AccessibilityAnalysis.LowContrastAreasCount
	if lowContrastAreas > e.thresholds.MaxLowContrastAreas {
		recommendations = append(recommendations, models.Recommendation{
			Type:     models.RecommendationAccessibility,
			Severity: models.SeverityHigh,
			Title:    "Accessibility issues detected",
			Description: fmt.Sprintf(
				"%d areas with insufficient contrast were detected.", lowContrastAreas),
			Suggestion: "Improve the contrast in the identified areas to meet WCAG accessibility guidelines.",
			Fix:        "Adjust colors in the problem areas to reach a contrast ratio of at least 4.5:1.",
		})
	}

	if e.sortBySeverity {
		sort.SliceStable(recommendations, func(i, j int) bool {
			return severityRank(recommendations[i].Severity) < severityRank(recommendations[j].Severity)
		})
	}

	return recommendations
}

func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityHigh:
		return 0
	case models.SeverityMedium:
		return 1
	default:
		return 2
	}
}
