package analyzer

import (
	"context"
	"image"
	"time"

	"go-ux-analyzer/internal/logger"
	"go-ux-analyzer/internal/ocr"
	"go-ux-analyzer/pkg/models"
)

// textAnalyzer implements TextAnalyzer on top of an OCR engine.
type textAnalyzer struct {
	engine        ocr.Engine
	minConfidence int
	maxFragments  int
	timeout       time.Duration
}

// NewTextAnalyzer creates a text analyzer keeping fragments whose confidence
// is strictly above minConfidence, reporting at most maxFragments of them.
// A positive timeout bounds each recognition run.
func NewTextAnalyzer(engine ocr.Engine, minConfidence, maxFragments int, timeout time.Duration) TextAnalyzer {
	return &textAnalyzer{
		engine:        engine,
		minConfidence: minConfidence,
		maxFragments:  maxFragments,
		timeout:       timeout,
	}
}

// AnalyzeText runs OCR and filters the result. An engine failure never
// propagates: the profile degrades to zero fragments with an error note so
// the rest of the pipeline still completes.
func (ta *textAnalyzer) AnalyzeText(ctx context.Context, img image.Image) models.TextProfile {
	if ta.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ta.timeout)
		defer cancel()
	}

	words, err := ta.engine.Recognize(ctx, img)
	if err != nil {
		logger.WithError(err).Warn("OCR recognition failed, degrading text analysis")
		return models.TextProfile{
			TextElementsCount: 0,
			TextElements:      []models.TextFragment{},
			OCRError:          "OCR error: " + err.Error(),
		}
	}

	fragments := make([]models.TextFragment, 0, len(words))
	for _, word := range words {
		if int(word.Confidence) <= ta.minConfidence {
			continue
		}
		fragments = append(fragments, models.TextFragment{
			Text:       word.Text,
			Confidence: int(word.Confidence),
			Position:   models.Position{X: word.X, Y: word.Y},
			Dimensions: models.Dimensions{Width: word.Width, Height: word.Height},
		})
	}

	count := len(fragments)
	if len(fragments) > ta.maxFragments {
		fragments = fragments[:ta.maxFragments]
	}
	return models.TextProfile{
		TextElementsCount: count,
		TextElements:      fragments,
	}
}
