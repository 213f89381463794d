package models

import "time"

// Analysis is a persisted analysis record. The derived issue counts are
// computed once at save time and never recomputed on read.
type Analysis struct {
	ID             int64          `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	ImageName      string         `json:"image_name"`
	Result         AnalysisResult `json:"analysis"`
	TotalIssues    int            `json:"total_issues"`
	SeverityCounts SeverityCounts `json:"severity_counts"`
}

// IssueTypeCount pairs a recommendation type with how often it occurred
// across stored analyses.
type IssueTypeCount struct {
	Type  RecommendationType `json:"type"`
	Count int                `json:"count"`
}

// AnalysisStats aggregates the stored history.
type AnalysisStats struct {
	TotalAnalyses        int              `json:"total_analyses"`
	AvgIssuesPerAnalysis float64          `json:"avg_issues_per_analysis"`
	MostCommonIssueTypes []IssueTypeCount `json:"most_common_issue_types"`
}
