package storage

import (
	"context"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
)

// PendingFilter narrows the pending set.
type PendingFilter struct {
	MerchantID string
	Type       models.TransactionType
	// OlderThan, when set, keeps transactions pending since before this instant.
	OlderThan *time.Time
}

// PendingUpdate replaces the reason and priority of a pending transaction.
type PendingUpdate struct {
	Reason    string
	Priority  models.Priority
	UpdatedAt time.Time
}

// PendingStore manages the queue attributes of pending transactions.
type PendingStore interface {
	// ListPending returns transactions whose status is pending.
	ListPending(ctx context.Context, filter PendingFilter) ([]models.Transaction, error)

	// SavePendingMetadata updates reason and priority of a pending transaction
	// and appends log in the same write.
	SavePendingMetadata(ctx context.Context, txID string, update PendingUpdate, log models.TransactionLog) error

	// ClearPendingMetadata removes the queue attributes of a transaction that is no longer pending.
	// SaveTransactionStatus already clears them on every move out of pending, so nothing in the
	// lifecycle calls this; it repairs rows that were left with stale attributes.
	ClearPendingMetadata(ctx context.Context, txID string) error
}
