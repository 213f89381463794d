package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	apperrors "go-ux-analyzer/internal/errors"
)

// Word is one recognized token with its confidence (0-100) and bounding box
// in image coordinates.
type Word struct {
	Text       string
	Confidence float64
	X          int
	Y          int
	Width      int
	Height     int
}

// Engine is the recognition primitive the text analyzer consumes. It may
// fail on internal errors; callers decide whether that failure propagates.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]Word, error)
}

// TesseractEngine recognizes text with a Tesseract client per invocation;
// gosseract clients are not safe for concurrent reuse.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates an engine for the given Tesseract language code
// (e.g. "eng"). The corresponding language data must be installed.
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

// Recognize runs word-level OCR over the raster. The context is checked
// before the engine starts; recognition itself is a single blocking call
// into Tesseract.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewRecognitionError("OCR cancelled", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.NewRecognitionError("failed to encode image for OCR", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return nil, apperrors.NewRecognitionError("failed to set OCR language", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, apperrors.NewRecognitionError("failed to load image into OCR engine", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, apperrors.NewRecognitionError("OCR recognition failed", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: box.Confidence,
			X:          box.Box.Min.X,
			Y:          box.Box.Min.Y,
			Width:      box.Box.Dx(),
			Height:     box.Box.Dy(),
		})
	}

	return words, nil
}
