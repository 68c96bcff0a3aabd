package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/analyses"
	"resume-ats/internal/resumes"
	"resume-ats/internal/services/health"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

// Rate limit groups.
const (
	groupDefault = "DEFAULT"
	groupScoring = "SCORING"
	groupUpload  = "UPLOAD"
	groupExempt  = "EXEMPT"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	ResumeHandler   *resumes.Handler
	AnalysisHandler *analyses.Handler
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// Forwarded headers are honored only from configured proxies; otherwise the
	// rate limiter would key on a caller-controlled address.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		log.Printf("router: invalid TRUSTED_PROXIES, trusting none: %v", err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		metrics.HTTP(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(rateLimitConfig(deps.Config, deps.RateLimiter)),
	)
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	return r
}

func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	rps, burst := cfg.RateLimitRPS, cfg.RateLimitBurst
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			groupDefault: {Rate: rps * 4, Burst: burst * 4},
			groupScoring: {Rate: rps, Burst: burst},
			groupUpload:  {Rate: rps, Burst: burst},
		},
		DefaultGroup: groupDefault,
		GroupFor:     rateLimitGroup,
		Limiter:      limiter,
	}
}

func rateLimitGroup(c *gin.Context) string {
	route := c.FullPath()
	switch {
	case route == "/metrics" || route == "/api/v1/health" || c.Request.Method == http.MethodOptions:
		return groupExempt
	case c.Request.Method == http.MethodPost && (route == "/api/v1/score" || route == "/api/v1/resumes/:id/analyze"):
		return groupScoring
	case c.Request.Method == http.MethodPost && route == "/api/v1/resumes":
		return groupUpload
	default:
		return groupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
