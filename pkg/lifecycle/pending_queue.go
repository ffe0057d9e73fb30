package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/chris/transaction-backoffice/pkg/audit"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/chris/transaction-backoffice/pkg/validation"
	"github.com/google/uuid"
)

// PendingRepository is the storage the pending queue needs.
type PendingRepository interface {
	storage.TransactionStore
	storage.PendingStore
}

// EnqueueRequest admits a new transaction into the pending set.
type EnqueueRequest struct {
	Transaction             *models.Transaction
	Reason                  string
	Priority                models.Priority
	EstimatedCompletionTime *time.Time
	PerformedBy             string
}

// AnnotateRequest updates the queue attributes of a pending transaction.
// Empty fields keep their current value.
type AnnotateRequest struct {
	TransactionID string
	Reason        string
	Priority      models.Priority
	PerformedBy   string
}

// EscalationResult reports the outcome of an EscalateStale sweep.
type EscalationResult struct {
	Escalated []string
	Failed    map[string]error
}

// PendingQueue tracks and prioritizes pending transactions.
type PendingQueue struct {
	store   PendingRepository
	machine *StateMachine
	audit   *audit.Logger
	logger  *slog.Logger
	timeout time.Duration
}

// NewPendingQueue creates a PendingQueue. Resolutions go through machine.
func NewPendingQueue(store PendingRepository, machine *StateMachine, auditLog *audit.Logger, opts Options) *PendingQueue {
	opts = opts.withDefaults()
	return &PendingQueue{
		store:   store,
		machine: machine,
		audit:   auditLog,
		logger:  opts.Logger,
		timeout: opts.StoreTimeout,
	}
}

// Enqueue creates req.Transaction in pending. The transaction and its
// TRANSACTION_CREATED log are written together.
func (q *PendingQueue) Enqueue(ctx context.Context, req EnqueueRequest) (*models.Transaction, error) {
	if err := validateEnqueue(req); err != nil {
		return nil, err
	}

	tx := *req.Transaction
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	} else if err := q.checkNotExisting(ctx, tx.ID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	now := q.audit.Now()
	tx.Status = models.PENDING
	tx.CreatedAt = now
	tx.UpdatedAt = now
	tx.CompletedAt = nil
	tx.Pending = &models.PendingInfo{
		Since:                   now,
		Reason:                  req.Reason,
		Priority:                priority,
		EstimatedCompletionTime: req.EstimatedCompletionTime,
	}

	entry, err := q.audit.NewEntry(tx.ID, models.ActionTransactionCreated, models.PENDING,
		fmt.Sprintf("Transaction created: %s %s %s", tx.Type, tx.Amount.String(), tx.Currency),
		req.PerformedBy, map[string]string{"priority": string(priority), "reason": req.Reason})
	if err != nil {
		return nil, err
	}
	entry.Timestamp = now

	sctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()
	if err := q.store.CreateTransaction(sctx, &tx, entry); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("failed to enqueue transaction %s: %w", tx.ID, storage.ErrConcurrentModification)
		}
		return nil, storeError(sctx, "enqueue transaction "+tx.ID, err)
	}

	q.logger.InfoContext(ctx, "transaction enqueued", "transactionId", tx.ID, "priority", priority, "performedBy", req.PerformedBy)
	return &tx, nil
}

// checkNotExisting rejects a caller-supplied ID that is already stored.
func (q *PendingQueue) checkNotExisting(ctx context.Context, txID string) error {
	existing, err := q.machine.getTransaction(ctx, txID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.Status == models.PENDING {
		return fmt.Errorf("failed to enqueue transaction %s: %w", txID, models.ErrAlreadyPending)
	}
	return fmt.Errorf("%w: transaction %s is %s, use retry to re-queue it", models.ErrInvalidTransition, txID, existing.Status)
}

// DequeueAndResolve moves a pending transaction to resolution, which must be
// completed, failed or canceled.
func (q *PendingQueue) DequeueAndResolve(ctx context.Context, txID string, resolution models.TransactionStatus, reason, performedBy string) (*models.Transaction, error) {
	switch resolution {
	case models.COMPLETED, models.FAILED, models.CANCELED:
	default:
		return nil, fmt.Errorf("%w: %q is not a pending resolution", models.ErrValidation, resolution)
	}

	return q.machine.Transition(ctx, TransitionRequest{
		TransactionID:  txID,
		Target:         resolution,
		Reason:         reason,
		PerformedBy:    performedBy,
		ExpectedStatus: models.PENDING,
	})
}

// List returns pending transactions, highest priority first and oldest
// first within a priority.
func (q *PendingQueue) List(ctx context.Context, filter storage.PendingFilter) ([]models.PendingTransaction, error) {
	sctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	txs, err := q.store.ListPending(sctx, filter)
	if err != nil {
		return nil, storeError(sctx, "list pending transactions", err)
	}

	pending := make([]models.PendingTransaction, 0, len(txs))
	for i := range txs {
		if p, ok := txs[i].AsPending(); ok {
			pending = append(pending, p)
		}
	}
	SortPending(pending)
	return pending, nil
}

// SortPending orders pending transactions by priority descending, then
// pendingSince ascending. Ties keep their input order.
func SortPending(pending []models.PendingTransaction) {
	sort.SliceStable(pending, func(i, j int) bool {
		ri, rj := pending[i].Priority.Rank(), pending[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return pending[i].PendingSince.Before(pending[j].PendingSince)
	})
}

// Annotate replaces the reason and/or priority of a pending transaction.
func (q *PendingQueue) Annotate(ctx context.Context, req AnnotateRequest) (*models.PendingTransaction, error) {
	if strings.TrimSpace(req.PerformedBy) == "" {
		return nil, fmt.Errorf("%w: performedBy is required", models.ErrValidation)
	}
	if req.Reason == "" && req.Priority == "" {
		return nil, fmt.Errorf("%w: reason or priority is required", models.ErrValidation)
	}
	if req.Priority != "" {
		if _, err := models.ParsePriority(string(req.Priority)); err != nil {
			return nil, err
		}
	}

	tx, err := q.machine.getTransaction(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	return q.annotate(ctx, tx, req)
}

func (q *PendingQueue) annotate(ctx context.Context, tx *models.Transaction, req AnnotateRequest) (*models.PendingTransaction, error) {
	if tx.Status != models.PENDING || tx.Pending == nil {
		return nil, fmt.Errorf("%w: transaction %s is %s, not pending", models.ErrInvalidState, tx.ID, tx.Status)
	}

	update := storage.PendingUpdate{
		Reason:    tx.Pending.Reason,
		Priority:  tx.Pending.Priority,
		UpdatedAt: nextUpdatedAt(tx.UpdatedAt, q.audit.Now()),
	}
	details := map[string]string{}
	if req.Reason != "" && req.Reason != update.Reason {
		details["previousReason"] = update.Reason
		details["reason"] = req.Reason
		update.Reason = req.Reason
	}
	if req.Priority != "" && req.Priority != update.Priority {
		details["previousPriority"] = string(update.Priority)
		details["priority"] = string(req.Priority)
		update.Priority = req.Priority
	}

	entry, err := q.audit.NewEntry(tx.ID, models.ActionPendingUpdated, models.PENDING,
		fmt.Sprintf("Pending attributes updated: priority %s, reason %q", update.Priority, update.Reason),
		req.PerformedBy, details)
	if err != nil {
		return nil, err
	}
	entry.Timestamp = update.UpdatedAt

	sctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()
	if err := q.store.SavePendingMetadata(sctx, tx.ID, update, entry); err != nil {
		return nil, storeError(sctx, "update pending transaction "+tx.ID, err)
	}

	tx.UpdatedAt = update.UpdatedAt
	tx.Pending.Reason = update.Reason
	tx.Pending.Priority = update.Priority
	p, _ := tx.AsPending()
	return &p, nil
}

// EscalateStale raises the priority of every transaction pending since
// before now-olderThan by one level. A failure on one transaction does not
// stop the sweep; the per-transaction errors are reported in the result.
func (q *PendingQueue) EscalateStale(ctx context.Context, olderThan time.Duration, performedBy string) (EscalationResult, error) {
	result := EscalationResult{Failed: map[string]error{}}
	if olderThan <= 0 {
		return result, fmt.Errorf("%w: escalation age must be positive", models.ErrValidation)
	}

	cutoff := q.audit.Now().Add(-olderThan)
	sctx, cancel := context.WithTimeout(ctx, q.timeout)
	txs, err := q.store.ListPending(sctx, storage.PendingFilter{OlderThan: &cutoff})
	if err != nil {
		err = storeError(sctx, "list stale pending transactions", err)
		cancel()
		return result, err
	}
	cancel()

	for i := range txs {
		tx := &txs[i]
		if tx.Pending == nil || tx.Pending.Priority == models.PriorityUrgent {
			continue
		}
		_, err := q.annotate(ctx, tx, AnnotateRequest{
			TransactionID: tx.ID,
			Priority:      tx.Pending.Priority.Escalate(),
			PerformedBy:   performedBy,
		})
		if err != nil {
			q.logger.ErrorContext(ctx, "failed to escalate pending transaction", "transactionId", tx.ID, "error", err)
			result.Failed[tx.ID] = err
			continue
		}
		result.Escalated = append(result.Escalated, tx.ID)
	}

	return result, nil
}

func validateEnqueue(req EnqueueRequest) error {
	tx := req.Transaction
	switch {
	case tx == nil:
		return fmt.Errorf("%w: transaction is required", models.ErrValidation)
	case strings.TrimSpace(tx.MerchantID) == "":
		return fmt.Errorf("%w: merchantId is required", models.ErrValidation)
	case !tx.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be greater than zero", models.ErrValidation)
	case !validation.IsCurrency(tx.Currency):
		return fmt.Errorf("%w: invalid currency %q", models.ErrValidation, tx.Currency)
	case tx.Fee.IsNegative() || tx.FeeRate.IsNegative():
		return fmt.Errorf("%w: fee must not be negative", models.ErrValidation)
	case strings.TrimSpace(req.PerformedBy) == "":
		return fmt.Errorf("%w: performedBy is required", models.ErrValidation)
	}
	if _, err := models.ParseTransactionType(string(tx.Type)); err != nil {
		return err
	}
	if req.Priority != "" {
		if _, err := models.ParsePriority(string(req.Priority)); err != nil {
			return err
		}
	}
	return nil
}
