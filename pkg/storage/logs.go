package storage

import (
	"context"

	"github.com/chris/transaction-backoffice/pkg/models"
)

// LogStore is the append-only audit log. Entries are never updated or deleted.
type LogStore interface {
	// AppendLog durably writes entry and returns its ID.
	AppendLog(ctx context.Context, entry models.TransactionLog) (string, error)

	// QueryLogs returns logs newest first. An empty transactionID lists across all transactions.
	QueryLogs(ctx context.Context, transactionID string, limit int32) ([]models.TransactionLog, error)
}
