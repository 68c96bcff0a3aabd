package analyses

import (
	"time"

	"resume-ats/internal/ats"
)

// ErrorInfo describes why an analysis failed.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DetailResponse is returned by GET /analyses/:id.
type DetailResponse struct {
	AnalysisID     string              `json:"analysisId"`
	ResumeID       string              `json:"resumeId"`
	Status         string              `json:"status"`
	JobDescription string              `json:"jobDescription,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	StartedAt      *time.Time          `json:"startedAt,omitempty"`
	CompletedAt    *time.Time          `json:"completedAt,omitempty"`
	Result         *ats.ResumeAnalysis `json:"result,omitempty"`
	Error          *ErrorInfo          `json:"error,omitempty"`
}

// SummaryResponse is one item of GET /analyses.
type SummaryResponse struct {
	AnalysisID  string     `json:"analysisId"`
	ResumeID    string     `json:"resumeId"`
	Status      string     `json:"status"`
	ATSScore    *int       `json:"atsScore,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func toDetailResponse(a Analysis) DetailResponse {
	resp := DetailResponse{
		AnalysisID:     a.ID,
		ResumeID:       a.ResumeID,
		Status:         a.Status,
		JobDescription: a.JobDescription,
		CreatedAt:      a.CreatedAt,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
	}
	switch a.Status {
	case StatusCompleted:
		resp.Result = a.Result
	case StatusFailed:
		resp.Error = &ErrorInfo{Code: a.ErrorCode, Message: a.ErrorMessage}
	}
	return resp
}

func toSummaryResponse(a Analysis) SummaryResponse {
	resp := SummaryResponse{
		AnalysisID:  a.ID,
		ResumeID:    a.ResumeID,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		CompletedAt: a.CompletedAt,
	}
	if a.Status == StatusCompleted && a.Result != nil {
		score := a.Result.ATSScore
		resp.ATSScore = &score
	}
	return resp
}
