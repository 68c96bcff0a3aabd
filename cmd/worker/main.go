package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"resume-ats/internal/bootstrap"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/server"
)

const (
	defaultVisibilitySeconds  = 300
	defaultShutdownTimeoutSec = 30
	defaultJobTimeoutSec      = 240
)

// jobTimeout bounds a single handler once it is detached from shutdown.
var jobTimeout = time.Duration(defaultJobTimeoutSec) * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	metricsSrv := metrics.Server(server.Addr(cfg.Port))
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	concurrency := max(1, cfg.WorkerConcurrency)
	jobTimeout = time.Duration(envInt("WORKER_JOB_TIMEOUT_SECONDS", defaultJobTimeoutSec)) * time.Second
	shutdownTimeout := time.Duration(envInt("WORKER_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	var wg sync.WaitGroup
	switch cfg.QueueBackend {
	case "sqs":
		client, err := newSQSAPI(ctx, cfg.AWSRegion)
		if err != nil {
			log.Fatalf("load aws config: %v", err)
		}
		visibility := envInt("WORKER_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
		log.Printf("worker started backend=sqs queue=%s concurrency=%d visibility=%ds", cfg.SQSQueueURL, concurrency, visibility)
		pollSQS(ctx, &wg, client, cfg.SQSQueueURL, app.AnalysisProcessor, concurrency, visibility)
	case "amqp":
		consumer, ok := app.Queue.(amqpConsumer)
		if !ok {
			log.Fatalf("queue client %T cannot consume", app.Queue)
		}
		deliveries, err := consumer.Consume("ats-worker", concurrency)
		if err != nil {
			log.Fatalf("start consumer: %v", err)
		}
		log.Printf("worker started backend=amqp queue=%s concurrency=%d", cfg.AMQPQueue, concurrency)
		consumeAMQP(ctx, &wg, deliveries, app.AnalysisProcessor, concurrency)
	default:
		log.Fatalf("QUEUE_BACKEND=%q has no worker; use sqs or amqp", cfg.QueueBackend)
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight jobs", shutdownTimeout)
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight jobs")
	}
}

// jobContext keeps a handler running after ctx is canceled so in-flight jobs
// can reach a terminal state during the shutdown drain. ctx still stops the
// receive and consume loops.
func jobContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), jobTimeout)
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}
