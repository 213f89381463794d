package service

import (
	"context"
	"time"

	"go-ux-analyzer/internal/analyzer"
	"go-ux-analyzer/internal/decoder"
	apperrors "go-ux-analyzer/internal/errors"
	"go-ux-analyzer/internal/logger"
	"go-ux-analyzer/internal/observer"
	"go-ux-analyzer/internal/storage"
	"go-ux-analyzer/internal/store"
	"go-ux-analyzer/pkg/models"
)

// AnalysisService defines the screenshot analysis operations exposed over
// the HTTP API.
type AnalysisService interface {
	// AnalyzeScreenshot decodes a base64 data URI, runs the full analysis
	// pipeline, and persists the result. Persistence failures never fail
	// the analysis.
	AnalyzeScreenshot(ctx context.Context, payload string, imageName string) (*models.AnalysisResult, error)

	// RecentAnalyses returns up to limit stored analyses, most recent first.
	RecentAnalyses(ctx context.Context, limit int) ([]models.Analysis, error)

	// AnalysisByID returns one stored analysis.
	AnalysisByID(ctx context.Context, id int64) (*models.Analysis, error)

	// Stats aggregates the stored analysis history.
	Stats(ctx context.Context) (*models.AnalysisStats, error)
}

// analysisService implements AnalysisService over the decode/analyze/persist
// pipeline.
type analysisService struct {
	decoder         *decoder.Decoder
	pipeline        *analyzer.Pipeline
	store           store.AnalysisStore
	archiver        storage.ScreenshotArchiver
	publisher       observer.Subject
	analysisTimeout time.Duration
}

// NewAnalysisService creates a new screenshot analysis service. A positive
// analysisTimeout bounds the pipeline run independently of the request
// deadline.
func NewAnalysisService(
	dec *decoder.Decoder,
	pipeline *analyzer.Pipeline,
	analysisStore store.AnalysisStore,
	archiver storage.ScreenshotArchiver,
	publisher observer.Subject,
	analysisTimeout time.Duration,
) AnalysisService {
	return &analysisService{
		decoder:         dec,
		pipeline:        pipeline,
		store:           analysisStore,
		archiver:        archiver,
		publisher:       publisher,
		analysisTimeout: analysisTimeout,
	}
}

// AnalyzeScreenshot runs one full analysis. Decode failures abort the
// request; storage and archival failures are logged and swallowed so the
// caller still receives the computed analysis.
func (s *analysisService) AnalyzeScreenshot(ctx context.Context, payload string, imageName string) (*models.AnalysisResult, error) {
	started := time.Now()
	s.notify(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: started,
		ImageName: imageName,
	})

	decoded, err := s.decoder.Decode(payload)
	if err != nil {
		s.notify(ctx, observer.AnalysisEvent{
			EventType:      observer.AnalysisFailed,
			Timestamp:      time.Now(),
			ImageName:      imageName,
			ProcessingTime: time.Since(started),
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	analysisCtx := ctx
	if s.analysisTimeout > 0 {
		var cancel context.CancelFunc
		analysisCtx, cancel = context.WithTimeout(ctx, s.analysisTimeout)
		defer cancel()
	}
	result := s.pipeline.Analyze(analysisCtx, decoded.Image)

	s.persist(ctx, result, imageName, decoded)

	s.notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		ImageName:      imageName,
		ProcessingTime: time.Since(started),
		Success:        true,
		Metadata: map[string]interface{}{
			"recommendations": len(result.Recommendations),
			"elements":        result.ElementDetection.TotalElements,
		},
	})
	return result, nil
}

// persist stores the result and schedules archival of the raw screenshot.
// Both are best-effort.
func (s *analysisService) persist(ctx context.Context, result *models.AnalysisResult, imageName string, decoded *decoder.Decoded) {
	id, err := s.store.Save(ctx, result, imageName)
	if err != nil {
		persistErr := apperrors.NewPersistenceError("failed to store analysis", err)
		logger.WithError(persistErr).WithField("image_name", imageName).Error("Analysis persistence failed")
		s.notify(ctx, observer.AnalysisEvent{
			EventType:    observer.PersistenceFailed,
			Timestamp:    time.Now(),
			ImageName:    imageName,
			ErrorMessage: persistErr.Error(),
		})
		return
	}

	result.AnalysisID = id
	s.notify(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisPersisted,
		Timestamp: time.Now(),
		ImageName: imageName,
		Success:   true,
		Metadata:  map[string]interface{}{"analysis_id": id},
	})

	// Archival happens off the request path. The request context may be
	// cancelled once the response is written, so use a detached one.
	raw := decoded.Raw
	format := decoded.Format
	go func() {
		archiveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.archiver.Archive(archiveCtx, id, format, raw); err != nil {
			logger.WithError(err).WithField("analysis_id", id).Warn("Screenshot archival failed")
		}
	}()
}

func (s *analysisService) notify(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

// RecentAnalyses returns stored analyses, most recent first.
func (s *analysisService) RecentAnalyses(ctx context.Context, limit int) ([]models.Analysis, error) {
	analyses, err := s.store.GetRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to load analyses", err)
	}
	return analyses, nil
}

// AnalysisByID returns one stored analysis by id.
func (s *analysisService) AnalysisByID(ctx context.Context, id int64) (*models.Analysis, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == store.ErrAnalysisNotFound {
			return nil, apperrors.NewNotFoundError("analysis not found", err)
		}
		return nil, apperrors.NewPersistenceError("failed to load analysis", err)
	}
	return record, nil
}

// Stats aggregates the stored analysis history.
func (s *analysisService) Stats(ctx context.Context) (*models.AnalysisStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to compute stats", err)
	}
	return stats, nil
}
