package storage

import (
	"context"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
)

// TransactionFilter carries the predicates a backend may push down when
// listing transactions. Zero values mean "no constraint". Backends may
// return a superset; callers re-apply the full predicate.
type TransactionFilter struct {
	Status     models.TransactionStatus
	MerchantID string
	Type       models.TransactionType
	From       *time.Time
	To         *time.Time
}

// StatusChange is one atomic status mutation. The new status, timestamps,
// pending attributes and the audit log are written together, and only if
// the stored status still equals ExpectedStatus.
type StatusChange struct {
	TransactionID  string
	ExpectedStatus models.TransactionStatus
	NewStatus      models.TransactionStatus
	UpdatedAt      time.Time
	CompletedAt    *time.Time

	// Pending is written when NewStatus is PENDING and removed otherwise.
	Pending *models.PendingInfo

	Log models.TransactionLog
}

// Apply returns a copy of tx with change applied, which is the row a
// successful SaveTransactionStatus leaves behind when tx was read with
// change.ExpectedStatus.
func (change StatusChange) Apply(tx *models.Transaction) *models.Transaction {
	updated := *tx
	updated.Status = change.NewStatus
	updated.UpdatedAt = change.UpdatedAt
	if change.CompletedAt != nil {
		completedAt := *change.CompletedAt
		updated.CompletedAt = &completedAt
	}
	updated.Pending = nil
	if change.NewStatus == models.PENDING && change.Pending != nil {
		pending := *change.Pending
		updated.Pending = &pending
	}
	return &updated
}

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// QueryTransactions returns the transactions matching the pushed-down filter.
	QueryTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for creating transactions and changing their status.
type TransactionWriter interface {
	// CreateTransaction stores a new transaction together with its creation log.
	CreateTransaction(ctx context.Context, tx *models.Transaction, log models.TransactionLog) error

	// SaveTransactionStatus applies change atomically.
	SaveTransactionStatus(ctx context.Context, change StatusChange) error
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
