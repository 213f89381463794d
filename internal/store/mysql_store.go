package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"go-ux-analyzer/internal/logger"
	"go-ux-analyzer/pkg/models"
)

const schema = `CREATE TABLE IF NOT EXISTS analyses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	timestamp DATETIME NOT NULL,
	image_name VARCHAR(255),
	image_dimensions TEXT,
	color_analysis TEXT,
	element_detection TEXT,
	text_analysis TEXT,
	layout_analysis TEXT,
	accessibility_analysis TEXT,
	recommendations TEXT,
	total_issues INT DEFAULT 0,
	severity_high INT DEFAULT 0,
	severity_medium INT DEFAULT 0,
	severity_low INT DEFAULT 0,
	INDEX idx_analyses_timestamp (timestamp)
)`

// MySQLStore implements AnalysisStore on a MySQL database, one JSON-encoded
// column per analyzer section.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a store over an open database handle and ensures the
// schema exists.
func NewMySQLStore(ctx context.Context, db *sql.DB) (*MySQLStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure analyses schema: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

// Save stores a completed analysis. Severity tallies are derived from the
// recommendation list here, once, and stored alongside the record.
func (s *MySQLStore) Save(ctx context.Context, result *models.AnalysisResult, imageName string) (int64, error) {
	dimensions, err := json.Marshal(result.ImageDimensions)
	if err != nil {
		return 0, fmt.Errorf("failed to encode image dimensions: %w", err)
	}
	colorAnalysis, err := json.Marshal(result.ColorAnalysis)
	if err != nil {
		return 0, fmt.Errorf("failed to encode color analysis: %w", err)
	}
	elementDetection, err := json.Marshal(result.ElementDetection)
	if err != nil {
		return 0, fmt.Errorf("failed to encode element detection: %w", err)
	}
	textAnalysis, err := json.Marshal(result.TextAnalysis)
	if err != nil {
		return 0, fmt.Errorf("failed to encode text analysis: %w", err)
	}
	layoutAnalysis, err := json.Marshal(result.LayoutAnalysis)
	if err != nil {
		return 0, fmt.Errorf("failed to encode layout analysis: %w", err)
	}
	accessibilityAnalysis, err := json.Marshal(result.AccessibilityAnalysis)
	if err != nil {
		return 0, fmt.Errorf("failed to encode accessibility analysis: %w", err)
	}
	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		return 0, fmt.Errorf("failed to encode recommendations: %w", err)
	}

	counts := models.CountSeverities(result.Recommendations)

	res, err := s.db.ExecContext(ctx, `INSERT INTO analyses
		(timestamp, image_name, image_dimensions, color_analysis, element_detection,
		 text_analysis, layout_analysis, accessibility_analysis, recommendations,
		 total_issues, severity_high, severity_medium, severity_low)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.Timestamp, imageName, dimensions, colorAnalysis, elementDetection,
		textAnalysis, layoutAnalysis, accessibilityAnalysis, recommendations,
		len(result.Recommendations), counts.High, counts.Medium, counts.Low)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read analysis id: %w", err)
	}
	return id, nil
}

const selectColumns = `id, timestamp, image_name, image_dimensions, color_analysis,
	element_detection, text_analysis, layout_analysis, accessibility_analysis,
	recommendations, total_issues, severity_high, severity_medium, severity_low`

// GetRecent returns up to limit records ordered by timestamp descending,
// ties broken by id descending.
func (s *MySQLStore) GetRecent(ctx context.Context, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM analyses ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]models.Analysis, 0, limit)
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}

// GetByID returns one record or ErrAnalysisNotFound.
func (s *MySQLStore) GetByID(ctx context.Context, id int64) (*models.Analysis, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM analyses WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read analysis %d: %w", id, err)
		}
		return nil, ErrAnalysisNotFound
	}
	return scanAnalysis(rows)
}

// Stats aggregates the stored history: total analyses, average issues per
// analysis, and the five most common issue types across all stored
// recommendation lists.
func (s *MySQLStore) Stats(ctx context.Context) (*models.AnalysisStats, error) {
	var total int
	var avgIssues sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(total_issues) FROM analyses`).Scan(&total, &avgIssues)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate analyses: %w", err)
	}

	stats := &models.AnalysisStats{
		TotalAnalyses:        total,
		MostCommonIssueTypes: []models.IssueTypeCount{},
	}
	if total == 0 {
		return stats, nil
	}
	if avgIssues.Valid {
		stats.AvgIssuesPerAnalysis = math.Round(avgIssues.Float64*100) / 100
	}

	rows, err := s.db.QueryContext(ctx, `SELECT recommendations FROM analyses`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	typeCounts := make(map[models.RecommendationType]int)
	for rows.Next() {
		var encoded sql.NullString
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("failed to scan recommendations: %w", err)
		}
		if !encoded.Valid || encoded.String == "" {
			continue
		}
		var recs []models.Recommendation
		if err := json.Unmarshal([]byte(encoded.String), &recs); err != nil {
			// A single corrupt row should not take down the stats endpoint.
			logger.WithError(err).Warn("Skipping undecodable recommendations row")
			continue
		}
		for _, rec := range recs {
			typeCounts[rec.Type]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}

	ranked := make([]models.IssueTypeCount, 0, len(typeCounts))
	for issueType, count := range typeCounts {
		ranked = append(ranked, models.IssueTypeCount{Type: issueType, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Type < ranked[j].Type
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.MostCommonIssueTypes = ranked
	return stats, nil
}

// scanAnalysis decodes one row into an Analysis record.
func scanAnalysis(rows *sql.Rows) (*models.Analysis, error) {
	var (
		record          models.Analysis
		timestamp       time.Time
		imageName       sql.NullString
		dimensions      sql.NullString
		colorAnalysis   sql.NullString
		elements        sql.NullString
		textAnalysis    sql.NullString
		layoutAnalysis  sql.NullString
		accessibility   sql.NullString
		recommendations sql.NullString
	)
	err := rows.Scan(&record.ID, &timestamp, &imageName, &dimensions, &colorAnalysis,
		&elements, &textAnalysis, &layoutAnalysis, &accessibility,
		&recommendations, &record.TotalIssues, &record.SeverityCounts.High,
		&record.SeverityCounts.Medium, &record.SeverityCounts.Low)
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis row: %w", err)
	}

	record.Timestamp = timestamp
	record.ImageName = imageName.String
	record.Result.Timestamp = timestamp
	record.Result.AnalysisID = record.ID
	record.Result.Recommendations = []models.Recommendation{}

	if err := decodeColumn(dimensions, &record.Result.ImageDimensions); err != nil {
		return nil, err
	}
	if err := decodeColumn(colorAnalysis, &record.Result.ColorAnalysis); err != nil {
		return nil, err
	}
	if err := decodeColumn(elements, &record.Result.ElementDetection); err != nil {
		return nil, err
	}
	if err := decodeColumn(textAnalysis, &record.Result.TextAnalysis); err != nil {
		return nil, err
	}
	if err := decodeColumn(layoutAnalysis, &record.Result.LayoutAnalysis); err != nil {
		return nil, err
	}
	if err := decodeColumn(accessibility, &record.Result.AccessibilityAnalysis); err != nil {
		return nil, err
	}
	if err := decodeColumn(recommendations, &record.Result.Recommendations); err != nil {
		return nil, err
	}
	return &record, nil
}

func decodeColumn(column sql.NullString, target interface{}) error {
	if !column.Valid || column.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(column.String), target); err != nil {
		return fmt.Errorf("failed to decode stored analysis column: %w", err)
	}
	return nil
}
