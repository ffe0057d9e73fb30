// Package lifecycle owns every change of a transaction's status: the
// transition table, the state machine that applies it atomically with its
// audit log, and the pending queue built on top of it.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/chris/transaction-backoffice/pkg/audit"
	"github.com/chris/transaction-backoffice/pkg/events"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// DefaultStoreTimeout bounds every repository call when Options leaves it unset.
const DefaultStoreTimeout = 5 * time.Second

// DefaultRetryReason is recorded as the pending reason of a retried transaction
// when the caller gives none.
const DefaultRetryReason = "Retry requested"

var transitions = map[models.TransactionStatus][]models.TransactionStatus{
	models.PENDING:   {models.COMPLETED, models.FAILED, models.CANCELED},
	models.COMPLETED: {models.REFUNDED, models.PARTIAL_REFUNDED},
	models.FAILED:    {models.PENDING, models.CANCELED},
}

// CanTransition reports whether a transaction in from may move to to.
func CanTransition(from, to models.TransactionStatus) bool {
	return slices.Contains(transitions[from], to)
}

// AllowedTargets lists the statuses reachable from from in one step.
func AllowedTargets(from models.TransactionStatus) []models.TransactionStatus {
	return slices.Clone(transitions[from])
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s models.TransactionStatus) bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Options configures a StateMachine or PendingQueue.
type Options struct {
	// StoreTimeout bounds each repository call. Expiry surfaces as storage.ErrUnavailable.
	StoreTimeout time.Duration
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = DefaultStoreTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// TransitionRequest asks for one status change.
type TransitionRequest struct {
	TransactionID string
	Target        models.TransactionStatus
	Reason        string
	PerformedBy   string

	// Priority is used when Target is PENDING. Empty means normal.
	Priority models.Priority

	// ExpectedStatus, when set, rejects the request unless the transaction is
	// currently in this status.
	ExpectedStatus models.TransactionStatus
}

// StateMachine validates and applies status transitions.
type StateMachine struct {
	store     storage.TransactionStore
	audit     *audit.Logger
	publisher events.Publisher
	logger    *slog.Logger
	timeout   time.Duration
}

// NewStateMachine creates a StateMachine. A nil publisher disables event publishing.
func NewStateMachine(store storage.TransactionStore, auditLog *audit.Logger, publisher events.Publisher, opts Options) *StateMachine {
	opts = opts.withDefaults()
	if publisher == nil {
		publisher = events.NoOpPublisher{}
	}
	return &StateMachine{
		store:     store,
		audit:     auditLog,
		publisher: publisher,
		logger:    opts.Logger,
		timeout:   opts.StoreTimeout,
	}
}

// Transition moves a transaction to req.Target. The status change and its
// STATUS_CHANGED_TO_<TARGET> log are written in one conditional write keyed
// on the status observed when the transaction was read.
func (m *StateMachine) Transition(ctx context.Context, req TransitionRequest) (*models.Transaction, error) {
	if err := validateTransition(req); err != nil {
		return nil, err
	}

	tx, err := m.getTransaction(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	if req.ExpectedStatus != "" && tx.Status != req.ExpectedStatus {
		return nil, fmt.Errorf("%w: transaction %s is %s, not %s", models.ErrInvalidTransition, tx.ID, tx.Status, req.ExpectedStatus)
	}
	if !CanTransition(tx.Status, req.Target) {
		return nil, fmt.Errorf("%w: transaction %s cannot move from %s to %s", models.ErrInvalidTransition, tx.ID, tx.Status, req.Target)
	}

	change, err := m.buildChange(tx, req)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := m.store.SaveTransactionStatus(sctx, change); err != nil {
		return nil, storeError(sctx, fmt.Sprintf("move transaction %s from %s to %s", tx.ID, tx.Status, req.Target), err)
	}

	m.logger.InfoContext(ctx, "transaction status changed",
		"transactionId", tx.ID, "from", tx.Status, "to", req.Target, "performedBy", req.PerformedBy)

	m.publish(ctx, models.StatusChangedEvent{
		TransactionID:  tx.ID,
		PreviousStatus: tx.Status,
		NewStatus:      req.Target,
		PerformedBy:    req.PerformedBy,
		Timestamp:      change.UpdatedAt,
	})

	return change.Apply(tx), nil
}

func (m *StateMachine) buildChange(tx *models.Transaction, req TransitionRequest) (storage.StatusChange, error) {
	updatedAt := nextUpdatedAt(tx.UpdatedAt, m.audit.Now())

	change := storage.StatusChange{
		TransactionID:  tx.ID,
		ExpectedStatus: tx.Status,
		NewStatus:      req.Target,
		UpdatedAt:      updatedAt,
	}

	details := map[string]string{"previousStatus": string(tx.Status)}
	if req.Reason != "" {
		details["reason"] = req.Reason
	}

	switch req.Target {
	case models.COMPLETED:
		completedAt := updatedAt
		change.CompletedAt = &completedAt
	case models.PENDING:
		priority := req.Priority
		if priority == "" {
			priority = models.PriorityNormal
		}
		change.Pending = &models.PendingInfo{
			Since:    updatedAt,
			Reason:   retryReason(req.Reason),
			Priority: priority,
		}
		details["priority"] = string(priority)
	}

	message := fmt.Sprintf("Status changed from %s to %s", tx.Status, req.Target)
	if req.Reason != "" {
		message += ": " + req.Reason
	}

	entry, err := m.audit.NewEntry(tx.ID, models.StatusChangedAction(req.Target), req.Target, message, req.PerformedBy, details)
	if err != nil {
		return storage.StatusChange{}, err
	}
	entry.Timestamp = updatedAt
	change.Log = entry

	return change, nil
}

// AddNote records an administrative note on a transaction without changing it.
func (m *StateMachine) AddNote(ctx context.Context, txID, note, performedBy string) (models.TransactionLog, error) {
	if strings.TrimSpace(note) == "" {
		return models.TransactionLog{}, fmt.Errorf("%w: note is required", models.ErrValidation)
	}
	if strings.TrimSpace(performedBy) == "" {
		return models.TransactionLog{}, fmt.Errorf("%w: performedBy is required", models.ErrValidation)
	}

	tx, err := m.getTransaction(ctx, txID)
	if err != nil {
		return models.TransactionLog{}, err
	}

	entry, err := m.audit.NewEntry(tx.ID, models.ActionNoteAdded, tx.Status, note, performedBy, nil)
	if err != nil {
		return models.TransactionLog{}, err
	}

	sctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	saved, err := m.audit.Append(sctx, entry)
	if err != nil {
		return models.TransactionLog{}, storeError(sctx, "add note to transaction "+tx.ID, err)
	}
	return saved, nil
}

func (m *StateMachine) getTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	sctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tx, err := m.store.GetTransaction(sctx, txID)
	if err != nil {
		return nil, storeError(sctx, "get transaction "+txID, err)
	}
	return tx, nil
}

// publish announces a committed change. The change is already durable, so a
// failure is logged and never returned.
func (m *StateMachine) publish(ctx context.Context, event models.StatusChangedEvent) {
	if err := m.publisher.PublishStatusChanged(ctx, event); err != nil {
		m.logger.ErrorContext(ctx, "CRITICAL: failed to publish status change event",
			"transactionId", event.TransactionID, "newStatus", event.NewStatus, "error", err)
	}
}

func validateTransition(req TransitionRequest) error {
	if strings.TrimSpace(req.TransactionID) == "" {
		return fmt.Errorf("%w: transaction ID is required", models.ErrValidation)
	}
	if !req.Target.Valid() {
		return fmt.Errorf("%w: unknown target status %q", models.ErrValidation, req.Target)
	}
	if strings.TrimSpace(req.PerformedBy) == "" {
		return fmt.Errorf("%w: performedBy is required", models.ErrValidation)
	}
	if req.Priority != "" {
		if _, err := models.ParsePriority(string(req.Priority)); err != nil {
			return err
		}
	}
	return nil
}

func retryReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return DefaultRetryReason
	}
	return "Retry: " + reason
}

// nextUpdatedAt returns now, or the smallest instant after previous when the
// clock has not advanced past it. Both are compared at microsecond precision,
// the precision timestamps are stored with.
func nextUpdatedAt(previous, now time.Time) time.Time {
	previous = previous.Truncate(time.Microsecond)
	now = now.Truncate(time.Microsecond)
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}

// storeError wraps a repository failure with the attempted operation. An
// expired deadline is reported as storage.ErrUnavailable so callers can retry.
func storeError(ctx context.Context, op string, err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return storage.Unavailable(op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
