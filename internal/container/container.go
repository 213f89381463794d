package container

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"go-ux-analyzer/internal/analyzer"
	"go-ux-analyzer/internal/config"
	"go-ux-analyzer/internal/decoder"
	"go-ux-analyzer/internal/logger"
	"go-ux-analyzer/internal/observer"
	"go-ux-analyzer/internal/ocr"
	"go-ux-analyzer/internal/service"
	"go-ux-analyzer/internal/storage"
	"go-ux-analyzer/internal/store"
	"go-ux-analyzer/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	db              *sql.DB
	pipeline        *analyzer.Pipeline
	analysisStore   store.AnalysisStore
	archiver        storage.ScreenshotArchiver
	analysisService service.AnalysisService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	analysisStore, err := store.NewMySQLStore(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	archiver, err := buildArchiver(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Build dependency graph
	dec := decoder.NewDecoder(cfg.MaxImageDimension)
	ocrEngine := ocr.NewTesseractEngine(cfg.OCRLanguage)
	pipeline := analyzer.NewPipeline(analysisOptions(cfg), ocrEngine)

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(observer.NewMetricsObserver())

	analysisService := service.NewAnalysisService(dec, pipeline, analysisStore, archiver, publisher, cfg.AnalysisTimeout)
	handler := transport.NewHandler(analysisService, cfg)

	return &Container{
		config:          cfg,
		db:              db,
		pipeline:        pipeline,
		analysisStore:   analysisStore,
		archiver:        archiver,
		analysisService: analysisService,
		handler:         handler,
	}, nil
}

// analysisOptions maps the deployment profile and per-threshold overrides
// onto pipeline options.
func analysisOptions(cfg *config.Config) analyzer.Options {
	opts := analyzer.DefaultOptions()
	if cfg.Profile == config.ProfileStrict {
		opts = analyzer.StrictOptions()
	}
	opts.OCRTimeout = cfg.OCRTimeout
	if cfg.MaxElementsPerScreen >= 0 {
		opts.Thresholds.MaxElementsPerScreen = cfg.MaxElementsPerScreen
	}
	if cfg.DensityThreshold >= 0 {
		opts.Thresholds.MaxOverallDensity = cfg.DensityThreshold
	}
	if cfg.LowContrastAreasThreshold >= 0 {
		opts.Thresholds.MaxLowContrastAreas = cfg.LowContrastAreasThreshold
	}
	return opts
}

func buildArchiver(cfg *config.Config) (storage.ScreenshotArchiver, error) {
	if !cfg.ArchiverConfigured() {
		logger.Info("Screenshot archival disabled, no storage account configured")
		return storage.NewNoopArchiver(), nil
	}
	archiver, err := storage.NewAzureArchiver(cfg.AzureStorageAccount, cfg.AzureStorageKey, cfg.AzureStorageContainer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archiver: %w", err)
	}
	return archiver, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the container's resources.
func (c *Container) Close() error {
	c.pipeline.Close()
	return c.db.Close()
}
