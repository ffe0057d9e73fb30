// Package audit is the append-only transaction audit trail.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/google/uuid"
)

const (
	// DefaultRecentLimit is used by ListRecent when no limit is given.
	DefaultRecentLimit = 20
	// MaxRecentLimit caps ListRecent.
	MaxRecentLimit = 200
)

// Logger writes and reads TransactionLog entries.
type Logger struct {
	store  storage.LogStore
	logger *slog.Logger
	now    func() time.Time
}

// NewLogger creates a Logger backed by store.
func NewLogger(store storage.LogStore, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the clock used to stamp new entries.
func (l *Logger) WithClock(now func() time.Time) *Logger {
	l.now = now
	return l
}

// Now returns the logger's current time in UTC.
func (l *Logger) Now() time.Time {
	return l.now().UTC()
}

// NewEntry builds an entry with a time-ordered ID and the current timestamp.
// The entry is not persisted; callers write it together with their mutation.
func (l *Logger) NewEntry(txID, action string, status models.TransactionStatus, message, performedBy string, details map[string]string) (models.TransactionLog, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.TransactionLog{}, fmt.Errorf("failed to generate log ID: %w", err)
	}
	return models.TransactionLog{
		ID:            id.String(),
		TransactionID: txID,
		Action:        action,
		Status:        status,
		Message:       message,
		PerformedBy:   performedBy,
		Details:       details,
		Timestamp:     l.Now(),
	}, nil
}

// Append durably writes entry. A failure is always returned to the caller.
func (l *Logger) Append(ctx context.Context, entry models.TransactionLog) (models.TransactionLog, error) {
	if err := validateEntry(entry); err != nil {
		return models.TransactionLog{}, err
	}
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return models.TransactionLog{}, fmt.Errorf("failed to generate log ID: %w", err)
		}
		entry.ID = id.String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.Now()
	}

	if _, err := l.store.AppendLog(ctx, entry); err != nil {
		l.logger.ErrorContext(ctx, "failed to append transaction log",
			"transactionId", entry.TransactionID, "action", entry.Action, "error", err)
		return models.TransactionLog{}, fmt.Errorf("failed to append log for transaction %s: %w", entry.TransactionID, err)
	}
	return entry, nil
}

// ListByTransaction returns all logs of txID, most recent first. No logs is an empty slice.
func (l *Logger) ListByTransaction(ctx context.Context, txID string) ([]models.TransactionLog, error) {
	if strings.TrimSpace(txID) == "" {
		return nil, fmt.Errorf("%w: transaction ID is required", models.ErrValidation)
	}
	logs, err := l.store.QueryLogs(ctx, txID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs for transaction %s: %w", txID, err)
	}
	if logs == nil {
		logs = []models.TransactionLog{}
	}
	sortNewestFirst(logs)
	return logs, nil
}

// ListRecent returns the most recent logs across all transactions.
func (l *Logger) ListRecent(ctx context.Context, limit int) ([]models.TransactionLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	logs, err := l.store.QueryLogs(ctx, "", int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent logs: %w", err)
	}
	if logs == nil {
		logs = []models.TransactionLog{}
	}
	sortNewestFirst(logs)
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

var errMissingField = errors.New("missing required log field")

func validateEntry(entry models.TransactionLog) error {
	switch {
	case strings.TrimSpace(entry.TransactionID) == "":
		return fmt.Errorf("%w: %w: transactionId", models.ErrValidation, errMissingField)
	case strings.TrimSpace(entry.Action) == "":
		return fmt.Errorf("%w: %w: action", models.ErrValidation, errMissingField)
	case strings.TrimSpace(entry.PerformedBy) == "":
		return fmt.Errorf("%w: %w: performedBy", models.ErrValidation, errMissingField)
	}
	return nil
}

// sortNewestFirst orders logs by timestamp descending. Equal timestamps fall
// back to the time-ordered ID so the order is deterministic.
func sortNewestFirst(logs []models.TransactionLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
}
