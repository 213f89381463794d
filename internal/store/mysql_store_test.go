package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"go-ux-analyzer/pkg/models"
)

var storeColumns = []string{
	"id", "timestamp", "image_name", "image_dimensions", "color_analysis",
	"element_detection", "text_analysis", "layout_analysis", "accessibility_analysis",
	"recommendations", "total_issues", "severity_high", "severity_medium", "severity_low",
}

func newTestStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analyses").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := NewMySQLStore(context.Background(), db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s, mock, db
}

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ImageDimensions: models.Dimensions{Width: 800, Height: 600},
		ElementDetection: models.ElementProfile{
			TotalElements: 2,
			Elements: []models.UIElement{
				{Type: models.ElementButton, Dimensions: models.Dimensions{Width: 60, Height: 60}, Area: 3600},
			},
		},
		Recommendations: []models.Recommendation{
			{Type: models.RecommendationContrast, Severity: models.SeverityHigh},
			{Type: models.RecommendationComplexity, Severity: models.SeverityMedium},
		},
	}
}

func TestSave(t *testing.T) {
	s, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO analyses").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := s.Save(context.Background(), sampleResult(), "home.png")
	if err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}
	if id != 42 {
		t.Errorf("Expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectQuery("FROM analyses WHERE id").
		WillReturnRows(sqlmock.NewRows(storeColumns))

	_, err := s.GetByID(context.Background(), 99)
	if err != ErrAnalysisNotFound {
		t.Errorf("Expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestGetRecent_DecodesStoredColumns(t *testing.T) {
	s, mock, db := newTestStore(t)
	defer db.Close()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(storeColumns).AddRow(
		7, ts, "home.png",
		`{"width":800,"height":600}`,
		`{"dominant_colors":[],"contrast_score":12.5,"color_diversity":3}`,
		`{"total_elements":2,"elements":[]}`,
		`{"text_elements_count":0,"text_elements":[]}`,
		`{"image_dimensions":{"width":800,"height":600},"zone_densities":{},"overall_density":0.1}`,
		`{"overall_contrast_variance":4.2,"low_contrast_areas_count":1,"low_contrast_areas":[]}`,
		`[{"type":"contrast","severity":"high","title":"t","description":"d","suggestion":"s","fix":"f"}]`,
		1, 1, 0, 0,
	)
	mock.ExpectQuery("FROM analyses ORDER BY timestamp DESC, id DESC").
		WillReturnRows(rows)

	analyses, err := s.GetRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Failed to load analyses: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(analyses))
	}

	record := analyses[0]
	if record.ID != 7 || record.ImageName != "home.png" {
		t.Errorf("Expected record 7/home.png, got %d/%s", record.ID, record.ImageName)
	}
	if record.TotalIssues != 1 || record.SeverityCounts.High != 1 {
		t.Errorf("Expected 1 high issue, got %+v", record.SeverityCounts)
	}
	if record.Result.ImageDimensions.Width != 800 {
		t.Errorf("Expected decoded dimensions, got %+v", record.Result.ImageDimensions)
	}
	if record.Result.ColorAnalysis.ContrastScore != 12.5 {
		t.Errorf("Expected decoded contrast score 12.5, got %f", record.Result.ColorAnalysis.ContrastScore)
	}
	if len(record.Result.Recommendations) != 1 ||
		record.Result.Recommendations[0].Type != models.RecommendationContrast {
		t.Errorf("Expected decoded recommendations, got %+v", record.Result.Recommendations)
	}
	if record.Result.AnalysisID != 7 {
		t.Errorf("Expected result to carry its record id, got %d", record.Result.AnalysisID)
	}
}

func TestStats_EmptyTable(t *testing.T) {
	s, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(0, nil))

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to compute stats: %v", err)
	}
	if stats.TotalAnalyses != 0 {
		t.Errorf("Expected 0 analyses, got %d", stats.TotalAnalyses)
	}
	if len(stats.MostCommonIssueTypes) != 0 {
		t.Errorf("Expected empty issue type list, got %v", stats.MostCommonIssueTypes)
	}
}

func TestStats_RanksIssueTypes(t *testing.T) {
	s, mock, db := newTestStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(2, 1.5))
	mock.ExpectQuery("SELECT recommendations FROM analyses").
		WillReturnRows(sqlmock.NewRows([]string{"recommendations"}).
			AddRow(`[{"type":"contrast","severity":"high"},{"type":"layout","severity":"medium"}]`).
			AddRow(`[{"type":"contrast","severity":"high"}]`))

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to compute stats: %v", err)
	}
	if stats.TotalAnalyses != 2 {
		t.Errorf("Expected 2 analyses, got %d", stats.TotalAnalyses)
	}
	if stats.AvgIssuesPerAnalysis != 1.5 {
		t.Errorf("Expected average of 1.5, got %f", stats.AvgIssuesPerAnalysis)
	}
	if len(stats.MostCommonIssueTypes) != 2 {
		t.Fatalf("Expected 2 issue types, got %d", len(stats.MostCommonIssueTypes))
	}
	if stats.MostCommonIssueTypes[0].Type != models.RecommendationContrast ||
		stats.MostCommonIssueTypes[0].Count != 2 {
		t.Errorf("Expected contrast ranked first with 2 occurrences, got %+v", stats.MostCommonIssueTypes[0])
	}
}
