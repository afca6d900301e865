package server

import "github.com/maastricht-university/comment-moments/orchestrator"

// AnalyzeResponse is the body of a successful GET /analyze.
type AnalyzeResponse struct {
	VideoID  string                `json:"video_id"`
	Emotions []orchestrator.Moment `json:"emotions"`
	Count    int                   `json:"count"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}
