package server

import "github.com/skyhire/matchengine/match"

// AnalyzeRequest is the input boundary of a single evaluation. The
// resume arrives as already-extracted plain text; PDF/image extraction
// happens upstream.
type AnalyzeRequest struct {
	ResumeText  string `json:"resume_text" validate:"required"`
	JobText     string `json:"job_text" validate:"required"`
	NumKeywords int    `json:"num_keywords" validate:"omitempty,min=1,max=50"`
}

// BatchRequest carries an ordered list of pairs. Response order always
// equals request order.
type BatchRequest struct {
	Pairs []AnalyzeRequest `json:"pairs" validate:"required,min=1,dive"`
}

// AnalyzeResponse is the response record of one evaluation. Texts are
// truncated for transport; the engine itself never truncates.
type AnalyzeResponse struct {
	MatchScore      float64               `json:"match_score"`
	FitLevel        string                `json:"fit_level"`
	KeywordAnalysis match.KeywordAnalysis `json:"keyword_analysis"`
	ResumeText      string                `json:"resume_text"`
	JobText         string                `json:"job_text"`
}

// BatchResponse wraps ordered results.
type BatchResponse struct {
	Results []AnalyzeResponse `json:"results"`
}

// HealthResponse reports service liveness and model state.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelID     string `json:"model_id,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (r AnalyzeRequest) pair() match.Pair {
	return match.Pair{
		ResumeText:  r.ResumeText,
		JobText:     r.JobText,
		NumKeywords: r.NumKeywords,
	}
}

const responseTextLimit = 500

// truncateText shortens response texts to a transport-friendly preview,
// appending an ellipsis when cut.
func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func toResponse(result match.MatchResult) AnalyzeResponse {
	return AnalyzeResponse{
		MatchScore:      result.MatchScore,
		FitLevel:        string(result.FitLevel),
		KeywordAnalysis: result.KeywordAnalysis,
		ResumeText:      truncateText(result.ResumeText, responseTextLimit),
		JobText:         truncateText(result.JobText, responseTextLimit),
	}
}
