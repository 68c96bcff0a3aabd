package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"resume-ats/internal/bootstrap"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/workerproc"
)

const backendLambda = "lambda"

var (
	initOnce  sync.Once
	initErr   error
	processor workerproc.Processor
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	processor = built.AnalysisProcessor
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}
	return processBatch(ctx, processor, event), nil
}

// processBatch reports only retryable failures; unrecoverable records are
// dropped so they do not cycle through the queue.
func processBatch(ctx context.Context, proc workerproc.Processor, event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		metrics.IncWorkerJob(backendLambda, metrics.JobReceived)
		err := workerproc.HandleMessage(ctx, proc, record.Body)
		switch {
		case err == nil:
			metrics.IncWorkerJob(backendLambda, metrics.JobCompleted)
		case workerproc.Unrecoverable(err):
			telemetry.Error("worker.analysis.dropped", map[string]any{"sqs_message_id": record.MessageId, "error": err.Error()})
			metrics.IncWorkerJob(backendLambda, metrics.JobDropped)
		default:
			telemetry.Error("worker.analysis.failed", map[string]any{"sqs_message_id": record.MessageId, "error": err.Error()})
			metrics.IncWorkerJob(backendLambda, metrics.JobFailed)
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
