package storage

import (
	"context"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
)

// BatchStore persists batch operations and their per-item outcomes.
type BatchStore interface {
	// CreateBatch stores a new batch and returns its ID.
	CreateBatch(ctx context.Context, batch *models.BatchOperation) (string, error)

	// GetBatch retrieves a batch with its items.
	GetBatch(ctx context.Context, batchID string) (*models.BatchOperation, error)

	// AppendBatchItem records the outcome at position index. Each position is written once.
	AppendBatchItem(ctx context.Context, batchID string, index int, item models.BatchOperationItem) error

	// SetBatchStatus moves a batch from expected to status.
	SetBatchStatus(ctx context.Context, batchID string, expected, status models.BatchStatus, completedAt *time.Time) error
}
