package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/resumes"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

// maxScoreBodyBytes bounds the synchronous scoring request body.
const maxScoreBodyBytes = 1 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/analyze", h.startAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.POST("/score", h.score)
}

type startAnalysisRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) startAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var req startAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	analysis, err := h.Svc.Submit(ctx, userID, resumeID, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrResumeNotFound):
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to start analysis", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.JSON(c, http.StatusAccepted, gin.H{
		"analysisId": analysis.ID,
		"status":     analysis.Status,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")
	c.Set("analysisId", analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "analysis not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toDetailResponse(analysis))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, offset := resumes.Paging(c, 20, 50)

	items, err := h.Svc.List(c.Request.Context(), ListFilter{
		UserID:   userID,
		ResumeID: strings.TrimSpace(c.Query("resumeId")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list analyses", nil)
		return
	}

	resp := make([]SummaryResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, toSummaryResponse(a))
	}
	respond.JSON(c, http.StatusOK, gin.H{"items": resp, "limit": limit, "offset": offset})
}

type scoreRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) score(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxScoreBodyBytes)

	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", gin.H{"maxBytes": maxScoreBodyBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "resumeText is required", nil)
		return
	}

	respond.JSON(c, http.StatusOK, h.Svc.Score(req.ResumeText, req.JobDescription))
}
