package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-ux-analyzer/internal/config"
	apperrors "go-ux-analyzer/internal/errors"
	"go-ux-analyzer/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService returns canned responses and records whether analysis ran.
type fakeService struct {
	analyzeResult *models.AnalysisResult
	analyzeErr    error
	analyzeCalls  int

	recent    []models.Analysis
	recentErr error

	record    *models.Analysis
	recordErr error

	stats    *models.AnalysisStats
	statsErr error
}

func (f *fakeService) AnalyzeScreenshot(ctx context.Context, payload, imageName string) (*models.AnalysisResult, error) {
	f.analyzeCalls++
	return f.analyzeResult, f.analyzeErr
}

func (f *fakeService) RecentAnalyses(ctx context.Context, limit int) ([]models.Analysis, error) {
	return f.recent, f.recentErr
}

func (f *fakeService) AnalysisByID(ctx context.Context, id int64) (*models.Analysis, error) {
	return f.record, f.recordErr
}

func (f *fakeService) Stats(ctx context.Context) (*models.AnalysisStats, error) {
	return f.stats, f.statsErr
}

func testConfig() *config.Config {
	return &config.Config{
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func getPath(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAnalyze_MissingImage(t *testing.T) {
	svc := &fakeService{}
	handler := NewHandler(svc, testConfig())

	w := postJSON(t, handler, "/api/analyze", map[string]string{"image_name": "home.png"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected non-empty error message")
	}
	if svc.analyzeCalls != 0 {
		t.Errorf("Expected no analysis for a rejected request, got %d calls", svc.analyzeCalls)
	}
}

func TestAnalyze_Success(t *testing.T) {
	svc := &fakeService{analyzeResult: &models.AnalysisResult{
		Timestamp:       time.Now().UTC(),
		ImageDimensions: models.Dimensions{Width: 800, Height: 600},
		Recommendations: []models.Recommendation{},
	}}
	handler := NewHandler(svc, testConfig())

	w := postJSON(t, handler, "/api/analyze", models.AnalyzeRequest{
		Image:     "data:image/png;base64,aGVsbG8=",
		ImageName: "home.png",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode success envelope: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success flag to be set")
	}
	if resp.Analysis == nil || resp.Analysis.ImageDimensions.Width != 800 {
		t.Errorf("Expected the analysis in the envelope, got %+v", resp.Analysis)
	}
}

func TestAnalyze_DecodeErrorStatus(t *testing.T) {
	svc := &fakeService{analyzeErr: apperrors.NewDecodeError("invalid image payload", nil)}
	handler := NewHandler(svc, testConfig())

	w := postJSON(t, handler, "/api/analyze", models.AnalyzeRequest{Image: "garbage"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for decode failure, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected non-empty error message")
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	svc := &fakeService{recordErr: apperrors.NewNotFoundError("analysis not found", nil)}
	handler := NewHandler(svc, testConfig())

	w := getPath(handler, "/api/analyses/99")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetAnalysis_InvalidID(t *testing.T) {
	svc := &fakeService{}
	handler := NewHandler(svc, testConfig())

	w := getPath(handler, "/api/analyses/abc")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-numeric id, got %d", w.Code)
	}
}

func TestListAnalyses(t *testing.T) {
	svc := &fakeService{recent: []models.Analysis{{ID: 1}, {ID: 2}}}
	handler := NewHandler(svc, testConfig())

	w := getPath(handler, "/api/analyses?limit=5")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp models.AnalysesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if resp.Count != 2 || len(resp.Analyses) != 2 {
		t.Errorf("Expected 2 analyses, got count=%d len=%d", resp.Count, len(resp.Analyses))
	}
}

func TestListAnalyses_InvalidLimit(t *testing.T) {
	svc := &fakeService{}
	handler := NewHandler(svc, testConfig())

	w := getPath(handler, "/api/analyses?limit=abc")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid limit, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	svc := &fakeService{stats: &models.AnalysisStats{TotalAnalyses: 3, AvgIssuesPerAnalysis: 1.5}}
	handler := NewHandler(svc, testConfig())

	w := getPath(handler, "/api/stats")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp models.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if resp.Stats == nil || resp.Stats.TotalAnalyses != 3 {
		t.Errorf("Expected stats in envelope, got %+v", resp.Stats)
	}
}

func TestHealthEndpoints(t *testing.T) {
	handler := NewHandler(&fakeService{}, testConfig())

	for _, path := range []string{"/health", "/api/health"} {
		if w := getPath(handler, path); w.Code != http.StatusOK {
			t.Errorf("Expected status 200 from %s, got %d", path, w.Code)
		}
	}
}
