package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/scheduler"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// BatchStarter runs a created batch to completion.
type BatchStarter interface {
	Start(ctx context.Context, batchID string) (*models.BatchOperation, error)
}

// Worker consumes deferred batch jobs.
type Worker struct {
	batches BatchStarter
	logger  *slog.Logger
}

// NewWorker creates a Worker.
func NewWorker(batches BatchStarter, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{batches: batches, logger: logger}
}

// Handle processes each record and reports the ones SQS should redeliver.
// Malformed jobs, unknown batches and batches that are finished or owned by
// another worker are acknowledged; anything else is retried, and the retry
// resumes a processing batch where it stopped.
func (w *Worker) Handle(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		if err := w.process(ctx, message); err != nil {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}
	return resp, nil
}

func (w *Worker) process(ctx context.Context, message events.SQSMessage) error {
	job, err := scheduler.ParseBatchJob(message.Body)
	if err != nil {
		w.logger.ErrorContext(ctx, "dropping malformed batch job", "messageId", message.MessageId, "error", err)
		return nil
	}

	b, err := w.batches.Start(ctx, job.BatchID)
	switch {
	case err == nil:
		counts := b.Counts()
		w.logger.InfoContext(ctx, "batch processed", "batchId", b.ID, "status", b.Status,
			"succeeded", counts.Succeeded, "failed", counts.Failed, "skipped", counts.Skipped)
		return nil
	case errors.Is(err, models.ErrInvalidState), errors.Is(err, storage.ErrNotFound):
		w.logger.WarnContext(ctx, "skipping batch job", "batchId", job.BatchID, "error", err)
		return nil
	default:
		w.logger.ErrorContext(ctx, "failed to process batch", "batchId", job.BatchID, "error", err)
		return err
	}
}
