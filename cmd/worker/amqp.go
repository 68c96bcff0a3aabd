package main

import (
	"context"
	"sync"

	"github.com/streadway/amqp"

	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/workerproc"
)

const backendAMQP = "amqp"

type amqpConsumer interface {
	Consume(consumerTag string, prefetch int) (<-chan amqp.Delivery, error)
}

// consumeAMQP runs a fixed pool of handlers over deliveries until ctx is
// canceled or the channel closes.
func consumeAMQP(ctx context.Context, wg *sync.WaitGroup, deliveries <-chan amqp.Delivery, processor workerproc.Processor, concurrency int) {
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					metrics.IncWorkerJob(backendAMQP, metrics.JobReceived)
					jobCtx, cancel := jobContext(ctx)
					handleDelivery(jobCtx, processor, d)
					cancel()
				}
			}
		}()
	}
	select {
	case <-ctx.Done():
	case <-drained(wg):
	}
}

func drained(wg *sync.WaitGroup) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

func handleDelivery(ctx context.Context, processor workerproc.Processor, d amqp.Delivery) {
	fields := map[string]any{
		"amqp_message_id": d.MessageId,
		"redelivered":     d.Redelivered,
	}
	if d.CorrelationId != "" {
		fields["request_id"] = d.CorrelationId
	}

	err := workerproc.HandleMessage(ctx, processor, string(d.Body))
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			fields["error"] = ackErr.Error()
			telemetry.Error("worker.analysis.ack_failed", fields)
			return
		}
		telemetry.Info("worker.analysis.completed", fields)
		metrics.IncWorkerJob(backendAMQP, metrics.JobCompleted)
	case workerproc.Unrecoverable(err):
		fields["error"] = err.Error()
		telemetry.Error("worker.analysis.dropped", fields)
		if rejErr := d.Reject(false); rejErr == nil {
			metrics.IncWorkerJob(backendAMQP, metrics.JobDropped)
		}
	default:
		fields["error"] = err.Error()
		telemetry.Error("worker.analysis.failed", fields)
		_ = d.Nack(false, true)
		metrics.IncWorkerJob(backendAMQP, metrics.JobFailed)
	}
}
