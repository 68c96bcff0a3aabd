package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/server/respond"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db Pinger
}

// NewService constructs a health service. db may be nil when running on
// in-memory repositories.
func NewService(db Pinger) *Service {
	return &Service{db: db}
}

// Status reports overall health and the state of each dependency.
func (s *Service) Status(ctx context.Context) (bool, map[string]string) {
	checks := map[string]string{"database": "disabled"}
	if s.db == nil {
		return true, checks
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		return false, checks
	}
	checks["database"] = "ok"
	return true, checks
}

// RegisterRoutes attaches GET /health.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		ok, checks := s.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	})
}
