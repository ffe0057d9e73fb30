package scheduler

import (
	"context"
)

// BatchJob is the message body of a deferred batch.
type BatchJob struct {
	BatchID string `json:"batchId"`
}

// Scheduler defines the interface for a component that schedules a batch operation for later processing.
type Scheduler interface {
	// ScheduleBatch enqueues a created batch for asynchronous processing.
	ScheduleBatch(ctx context.Context, batchID string) error
}
