package store

import (
	"context"
	"errors"

	"go-ux-analyzer/pkg/models"
)

// ErrAnalysisNotFound indicates the requested analysis record does not exist.
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisStore persists completed analyses. Records are append-only: the
// derived issue counts are computed once at save time and never recomputed.
type AnalysisStore interface {
	// Save stores a completed analysis under the given display name and
	// returns the new record id.
	Save(ctx context.Context, result *models.AnalysisResult, imageName string) (int64, error)

	// GetRecent returns up to limit records, most recent first.
	GetRecent(ctx context.Context, limit int) ([]models.Analysis, error)

	// GetByID returns one record or ErrAnalysisNotFound.
	GetByID(ctx context.Context, id int64) (*models.Analysis, error)

	// Stats aggregates the stored history.
	Stats(ctx context.Context) (*models.AnalysisStats, error)
}
