package analyzer

import (
	"context"
	"image"
	"image/draw"
	"sync"
	"time"

	"go-ux-analyzer/internal/ocr"
	"go-ux-analyzer/internal/recommend"
	"go-ux-analyzer/pkg/models"
)

// Pipeline runs one full screenshot analysis: grayscale and edge-map
// preparation, the five analyzers, then the recommendation engine. The
// raster is read-only throughout; analyzers share it without locking.
type Pipeline struct {
	opts Options

	colors        ColorAnalyzer
	elements      ElementDetector
	text          TextAnalyzer
	layout        LayoutAnalyzer
	accessibility AccessibilityAnalyzer
	engine        *recommend.Engine

	pool *WorkerPool
}

// NewPipeline wires the analyzers according to opts. The OCR engine is the
// only external primitive; everything else is pure computation.
func NewPipeline(opts Options, ocrEngine ocr.Engine) *Pipeline {
	pool := NewWorkerPool(0)
	pool.Start()

	return &Pipeline{
		opts:          opts,
		colors:        NewColorAnalyzer(opts.MaxDominantColors),
		elements:      NewElementDetector(opts.MinElementArea, opts.MaxElements),
		text:          NewTextAnalyzer(ocrEngine, opts.MinTextConfidence, opts.MaxTextFragments, opts.OCRTimeout),
		layout:        NewLayoutAnalyzer(),
		accessibility: NewAccessibilityAnalyzer(opts.BlockSize, opts.LowContrastStdDev, opts.MaxLowContrastAreas),
		engine:        recommend.NewEngine(opts.Thresholds, opts.SortBySeverity),
		pool:          pool,
	}
}

// Analyze runs the full pipeline over a decoded raster. The five analyzer
// stages execute concurrently; all of them complete (the text stage
// degrades internally on OCR failure) before recommendations are generated.
func (p *Pipeline) Analyze(ctx context.Context, img image.Image) *models.AnalysisResult {
	bounds := img.Bounds()

	// Grayscale once, shared by every stage that needs intensities.
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)

	// Edge map once, shared by element detection and layout analysis.
	edges := computeEdges(gray, p.opts.EdgeLowThreshold, p.opts.EdgeHighThreshold)

	result := &models.AnalysisResult{
		Timestamp:       time.Now().UTC(),
		ImageDimensions: models.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()},
	}

	var wg sync.WaitGroup
	stages := []func(){
		func() { result.ColorAnalysis = p.colors.AnalyzeColors(img, gray) },
		func() { result.ElementDetection = p.elements.DetectElements(edges) },
		func() { result.TextAnalysis = p.text.AnalyzeText(ctx, img) },
		func() { result.LayoutAnalysis = p.layout.AnalyzeLayout(edges) },
		func() { result.AccessibilityAnalysis = p.accessibility.AnalyzeAccessibility(gray) },
	}
	wg.Add(len(stages))
	for _, stage := range stages {
		stage := stage
		p.pool.Submit(func() {
			defer wg.Done()
			stage()
		})
	}
	wg.Wait()

	result.Recommendations = p.engine.Generate(result)
	return result
}

// Close releases the pipeline's workers.
func (p *Pipeline) Close() error {
	p.pool.Close()
	return nil
}
