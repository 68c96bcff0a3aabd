package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	analysisStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ats",
		Name:      "analysis_started_total",
		Help:      "Total analyses started.",
	})
	analysisCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ats",
		Name:      "analysis_completed_total",
		Help:      "Total analyses completed.",
	})
	analysisFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ats",
		Name:      "analysis_failed_total",
		Help:      "Total analyses failed, by error code.",
	}, []string{"code"})
	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ats",
		Name:      "analysis_duration_ms",
		Help:      "Analysis duration in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2000, 5000, 10000},
	})
	atsScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ats",
		Name:      "score",
		Help:      "Distribution of overall ATS scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})
	resumesUploaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ats",
		Name:      "resumes_uploaded_total",
		Help:      "Total resumes uploaded, by file type.",
	}, []string{"file_type"})
	workerJobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ats",
		Name:      "worker_jobs_total",
		Help:      "Queue messages handled by workers, by backend and outcome.",
	}, []string{"backend", "outcome"})
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ats",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status class.",
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		analysisStarted,
		analysisCompleted,
		analysisFailed,
		analysisDuration,
		atsScore,
		resumesUploaded,
		workerJobs,
		httpRequests,
	)
}

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStarted.Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompleted.Inc()
}

// IncAnalysisFailed increments the failed counter for an error code.
func IncAnalysisFailed(code string) {
	if code == "" {
		code = "UNKNOWN"
	}
	analysisFailed.WithLabelValues(code).Inc()
}

// ObserveAnalysisDuration records how long one analysis took.
func ObserveAnalysisDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	analysisDuration.Observe(float64(d.Microseconds()) / 1000.0)
}

func ObserveScore(score int) {
	atsScore.Observe(float64(score))
}

func IncResumeUploaded(fileType string) {
	resumesUploaded.WithLabelValues(fileType).Inc()
}

// Worker job outcomes.
const (
	JobReceived  = "received"
	JobCompleted = "completed"
	JobFailed    = "failed"
	JobDropped   = "dropped"
)

// IncWorkerJob counts one queue message outcome for a backend (sqs, amqp, lambda).
func IncWorkerJob(backend, outcome string) {
	workerJobs.WithLabelValues(backend, outcome).Inc()
}

// HTTP counts requests by matched route so path parameters do not explode cardinality.
func HTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).Inc()
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Server returns a standalone metrics server, used by the worker binary.
func Server(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
