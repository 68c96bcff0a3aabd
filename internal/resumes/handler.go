package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

// multipart overhead allowed on top of the file size cap
const formOverhead = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxBytes()+formOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the upload limit", gin.H{"maxBytes": h.Svc.maxBytes()})
			return
		}
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
		return
	}
	defer file.Close()

	res, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the upload limit", gin.H{"maxBytes": h.Svc.maxBytes()})
		case errors.Is(err, ErrUnsupportedFileType):
			respond.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "only pdf, doc, docx and txt files are accepted", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "failed to upload resume", nil)
		}
		return
	}

	c.Set("resumeId", res.ID)
	respond.JSON(c, http.StatusCreated, toResponse(res))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	res, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch resume", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, offset := Paging(c, 20, 50)

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list resumes", nil)
		return
	}

	resp := make([]ResumeResponse, 0, len(items))
	for _, res := range items {
		resp = append(resp, toResponse(res))
	}
	respond.JSON(c, http.StatusOK, gin.H{"items": resp, "limit": limit, "offset": offset})
}

// Paging reads limit/offset query params, clamping limit to [1, max].
func Paging(c *gin.Context, def, max int) (int, int) {
	limit := def
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
