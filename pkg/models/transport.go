package models

// AnalyzeRequest is the ingress payload: a base64 data-URI screenshot and an
// optional display name for the stored record.
type AnalyzeRequest struct {
	Image     string `json:"image" binding:"required"`
	ImageName string `json:"image_name,omitempty"`
}

// AnalyzeResponse is the success envelope for POST /api/analyze.
type AnalyzeResponse struct {
	Success  bool            `json:"success"`
	Analysis *AnalysisResult `json:"analysis"`
}

// AnalysesResponse is the success envelope for GET /api/analyses.
type AnalysesResponse struct {
	Success  bool       `json:"success"`
	Analyses []Analysis `json:"analyses"`
	Count    int        `json:"count"`
}

// AnalysisRecordResponse is the success envelope for GET /api/analyses/:id.
type AnalysisRecordResponse struct {
	Success  bool      `json:"success"`
	Analysis *Analysis `json:"analysis"`
}

// StatsResponse is the success envelope for GET /api/stats.
type StatsResponse struct {
	Success bool           `json:"success"`
	Stats   *AnalysisStats `json:"stats"`
}

// ErrorResponse is the error envelope. Error carries a human-readable
// message; internal state never leaks into it.
type ErrorResponse struct {
	Error string `json:"error"`
}
