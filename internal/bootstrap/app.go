package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/analyses"
	"resume-ats/internal/ats"
	"resume-ats/internal/queue"
	"resume-ats/internal/resumes"
	"resume-ats/internal/services/health"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/server"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/storage/db"
	"resume-ats/internal/shared/storage/object"
	localstore "resume-ats/internal/shared/storage/object/local"
	s3store "resume-ats/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API, workers and lambdas.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	Queue             queue.Client
	Engine            *ats.Engine
	ResumesRepo       resumes.Repo
	AnalysesRepo      analyses.Repo
	ResumesService    *resumes.Service
	AnalysesService   *analyses.Service
	AnalysisProcessor AnalysisProcessor
	Health            *health.Service
	ResumeHandler     *resumes.Handler
	AnalysisHandler   *analyses.Handler
}

// AnalysisProcessor allows callers to override analysis processing for tests.
type AnalysisProcessor interface {
	ProcessAnalysis(ctx context.Context, analysisID string) error
}

// Build wires repositories, services and the HTTP router from configuration.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.QueueBackend) == "" {
		cfg.QueueBackend = "none"
	}
	ctx := context.Background()

	weights, err := ats.ParseWeights(cfg.ScoringWeights)
	if err != nil {
		return nil, err
	}
	engine, err := ats.NewEngine(weights)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		Engine: engine,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Health:          app.Health,
		ResumeHandler:   app.ResumeHandler,
		AnalysisHandler: app.AnalysisHandler,
		RateLimiter:     middleware.NewRateLimiter(nil),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, db.ErrNoDatabaseURL
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	switch cfg.QueueBackend {
	case "sqs":
		client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", analyses.ErrJobQueueNotConfigured, err)
		}
		return client, nil
	case "amqp":
		client, err := queue.NewAMQPClient(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", analyses.ErrJobQueueNotConfigured, err)
		}
		return client, nil
	default:
		return nil, nil
	}
}

func buildServices(app *App) {
	var resumeRepo resumes.Repo
	var analysisRepo analyses.Repo
	healthSvc := health.NewService(nil)

	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		healthSvc = health.NewService(app.DB)
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	resumeSvc := &resumes.Service{
		Store:    app.Store,
		Repo:     resumeRepo,
		MaxBytes: app.Config.MaxUploadBytes,
	}
	analysisSvc := &analyses.Service{
		Repo:    analysisRepo,
		Resumes: resumeRepo,
		Store:   app.Store,
		Engine:  app.Engine,
		Queue:   app.Queue,
	}

	app.ResumesRepo = resumeRepo
	app.AnalysesRepo = analysisRepo
	app.ResumesService = resumeSvc
	app.AnalysesService = analysisSvc
	app.AnalysisProcessor = analysisSvc
	app.Health = healthSvc
	app.ResumeHandler = resumes.NewHandler(resumeSvc)
	app.AnalysisHandler = analyses.NewHandler(analysisSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
