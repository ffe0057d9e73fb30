// Package batch applies one action to many transactions and records a
// per-item outcome for each of them.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/scheduler"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/google/uuid"
)

// MaxTransactionIDs caps the size of a single batch.
const MaxTransactionIDs = 1000

// Item error codes.
const (
	CodeDuplicate              = "DUPLICATE"
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeUnavailable            = "UNAVAILABLE"
	CodeValidation             = "VALIDATION_ERROR"
	CodeInternal               = "INTERNAL_ERROR"
)

var allowedActions = map[models.BatchType][]models.BatchAction{
	models.BatchTypeDeposit:    {models.BatchActionApprove, models.BatchActionFail, models.BatchActionCancel, models.BatchActionRetry},
	models.BatchTypeWithdrawal: {models.BatchActionApprove, models.BatchActionFail, models.BatchActionCancel, models.BatchActionRetry},
	models.BatchTypeStatusUpdate: {
		models.BatchActionApprove, models.BatchActionFail, models.BatchActionCancel,
		models.BatchActionRetry, models.BatchActionRefund, models.BatchActionPartialRefund,
	},
	models.BatchTypeRefund: {models.BatchActionRefund, models.BatchActionPartialRefund},
}

// Transitioner applies a single status change.
type Transitioner interface {
	Transition(ctx context.Context, req lifecycle.TransitionRequest) (*models.Transaction, error)
}

// Repository is the storage the coordinator needs.
type Repository interface {
	storage.BatchStore
	storage.TransactionReader
}

// SubmitRequest describes a new batch.
type SubmitRequest struct {
	Type           models.BatchType
	Action         models.BatchAction
	TransactionIDs []string
	PerformedBy    string
	Reason         string

	// Deferred creates the batch and hands it to the scheduler instead of
	// processing it before returning.
	Deferred bool
}

// Options configures a Coordinator.
type Options struct {
	Scheduler    scheduler.Scheduler
	Logger       *slog.Logger
	StoreTimeout time.Duration
	Now          func() time.Time
}

// Coordinator runs batch operations.
type Coordinator struct {
	store     Repository
	machine   Transitioner
	scheduler scheduler.Scheduler
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(store Repository, machine Transitioner, opts Options) *Coordinator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = lifecycle.DefaultStoreTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator{
		store:     store,
		machine:   machine,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		timeout:   opts.StoreTimeout,
		now:       opts.Now,
	}
}

// Submit creates a batch and, unless it is deferred, processes it to
// completion. A failing item never aborts the batch.
func (c *Coordinator) Submit(ctx context.Context, req SubmitRequest) (*models.BatchOperation, error) {
	b, err := c.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Deferred {
		return b, nil
	}
	return c.Start(ctx, b.ID)
}

// Create validates req and stores a new pending batch. A deferred batch is
// handed to the scheduler; if that fails the batch is marked failed.
func (c *Coordinator) Create(ctx context.Context, req SubmitRequest) (*models.BatchOperation, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	b := &models.BatchOperation{
		ID:             uuid.New().String(),
		Type:           req.Type,
		Action:         req.Action,
		TransactionIDs: slices.Clone(req.TransactionIDs),
		Status:         models.BatchPending,
		Items:          []models.BatchOperationItem{},
		Reason:         strings.TrimSpace(req.Reason),
		CreatedBy:      req.PerformedBy,
		CreatedAt:      c.now().UTC(),
	}

	sctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if _, err := c.store.CreateBatch(sctx, b); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	c.logger.InfoContext(ctx, "batch created", "batchId", b.ID, "type", b.Type, "action", b.Action,
		"items", len(b.TransactionIDs), "deferred", req.Deferred)

	if req.Deferred {
		if err := c.scheduler.ScheduleBatch(ctx, b.ID); err != nil {
			c.logger.ErrorContext(ctx, "failed to schedule batch", "batchId", b.ID, "error", err)
			if ferr := c.setStatus(ctx, b, models.BatchPending, models.BatchFailed); ferr != nil {
				return nil, errors.Join(fmt.Errorf("failed to schedule batch %s: %w", b.ID, err), ferr)
			}
			return nil, fmt.Errorf("failed to schedule batch %s: %w", b.ID, err)
		}
	}

	return b, nil
}

// Start processes a pending batch, or resumes a processing batch from its
// first unrecorded item. Items are handled sequentially in input order and
// every outcome is recorded before the next item starts. A processing batch
// whose items are all recorded is only marked completed.
func (c *Coordinator) Start(ctx context.Context, batchID string) (*models.BatchOperation, error) {
	b, err := c.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case models.BatchPending:
		if err := c.setStatus(ctx, b, models.BatchPending, models.BatchProcessing); err != nil {
			if errors.Is(err, storage.ErrConcurrentModification) {
				return nil, fmt.Errorf("%w: batch %s is no longer pending", models.ErrInvalidState, b.ID)
			}
			return nil, err
		}
	case models.BatchProcessing:
		c.logger.InfoContext(ctx, "resuming batch", "batchId", b.ID, "recorded", len(b.Items), "items", len(b.TransactionIDs))
	default:
		return nil, fmt.Errorf("%w: batch %s is %s, only pending or processing batches can be started", models.ErrInvalidState, b.ID, b.Status)
	}

	seen := make(map[string]struct{}, len(b.TransactionIDs))
	for _, txID := range b.TransactionIDs[:min(len(b.Items), len(b.TransactionIDs))] {
		seen[txID] = struct{}{}
	}

	for i := len(b.Items); i < len(b.TransactionIDs); i++ {
		txID := b.TransactionIDs[i]
		item := c.processItem(ctx, b, txID, seen)

		sctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.store.AppendBatchItem(sctx, b.ID, i, item)
		cancel()
		if errors.Is(err, storage.ErrConcurrentModification) {
			// Another worker recorded this position first and owns the batch.
			return nil, fmt.Errorf("%w: batch %s is being processed elsewhere", models.ErrInvalidState, b.ID)
		}
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to record batch item", "batchId", b.ID, "transactionId", txID, "error", err)
			recordErr := fmt.Errorf("failed to record outcome of transaction %s in batch %s: %w", txID, b.ID, err)
			if ferr := c.setStatus(ctx, b, models.BatchProcessing, models.BatchFailed); ferr != nil {
				return nil, errors.Join(recordErr, ferr)
			}
			return nil, recordErr
		}
		b.Items = append(b.Items, item)
	}

	if err := c.setStatus(ctx, b, models.BatchProcessing, models.BatchCompleted); err != nil {
		if errors.Is(err, storage.ErrConcurrentModification) {
			return nil, fmt.Errorf("%w: batch %s is no longer processing", models.ErrInvalidState, b.ID)
		}
		return nil, err
	}

	counts := b.Counts()
	c.logger.InfoContext(ctx, "batch completed", "batchId", b.ID,
		"succeeded", counts.Succeeded, "failed", counts.Failed, "skipped", counts.Skipped)

	return b, nil
}

func (c *Coordinator) processItem(ctx context.Context, b *models.BatchOperation, txID string, seen map[string]struct{}) models.BatchOperationItem {
	item := models.BatchOperationItem{TransactionID: txID}

	if _, dup := seen[txID]; dup {
		item.Status = models.ItemSkipped
		item.ErrorCode = CodeDuplicate
		item.ErrorMessage = "transaction appears more than once in the batch"
		item.ProcessedAt = c.now().UTC()
		return item
	}
	seen[txID] = struct{}{}

	err := c.checkType(ctx, b, txID)
	if err == nil {
		err = c.transition(ctx, b, txID)
	}

	item.ProcessedAt = c.now().UTC()
	if err != nil {
		item.Status = models.ItemFailed
		item.ErrorCode = ErrorCode(err)
		item.ErrorMessage = err.Error()
		return item
	}
	item.Status = models.ItemSucceeded
	return item
}

// checkType rejects transactions whose type does not match a deposit or
// withdrawal batch.
func (c *Coordinator) checkType(ctx context.Context, b *models.BatchOperation, txID string) error {
	var want models.TransactionType
	switch b.Type {
	case models.BatchTypeDeposit:
		want = models.TypeDeposit
	case models.BatchTypeWithdrawal:
		want = models.TypeWithdrawal
	default:
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	tx, err := c.store.GetTransaction(sctx, txID)
	if err != nil {
		return fmt.Errorf("failed to get transaction %s: %w", txID, err)
	}
	if tx.Type != want {
		return fmt.Errorf("%w: transaction %s is a %s, batch expects %s", models.ErrValidation, txID, tx.Type, want)
	}
	return nil
}

// transition applies the batch action, retrying once after a lost race.
func (c *Coordinator) transition(ctx context.Context, b *models.BatchOperation, txID string) error {
	reason := fmt.Sprintf("batch %s (%s)", b.ID, b.Action)
	if b.Reason != "" {
		reason += ": " + b.Reason
	}
	req := lifecycle.TransitionRequest{
		TransactionID: txID,
		Target:        b.Action.TargetStatus(),
		Reason:        reason,
		PerformedBy:   b.CreatedBy,
	}

	_, err := c.machine.Transition(ctx, req)
	if errors.Is(err, storage.ErrConcurrentModification) {
		c.logger.WarnContext(ctx, "retrying batch item after concurrent modification", "batchId", b.ID, "transactionId", txID)
		_, err = c.machine.Transition(ctx, req)
	}
	return err
}

// Cancel cancels a batch that has not started processing.
func (c *Coordinator) Cancel(ctx context.Context, batchID, performedBy string) (*models.BatchOperation, error) {
	if strings.TrimSpace(performedBy) == "" {
		return nil, fmt.Errorf("%w: performedBy is required", models.ErrValidation)
	}

	b, err := c.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BatchPending {
		return nil, fmt.Errorf("%w: batch %s is %s, only pending batches can be canceled", models.ErrInvalidState, b.ID, b.Status)
	}

	if err := c.setStatus(ctx, b, models.BatchPending, models.BatchCanceled); err != nil {
		if errors.Is(err, storage.ErrConcurrentModification) {
			return nil, fmt.Errorf("%w: batch %s started processing", models.ErrInvalidState, b.ID)
		}
		return nil, err
	}

	c.logger.InfoContext(ctx, "batch canceled", "batchId", b.ID, "performedBy", performedBy)
	return b, nil
}

// Get retrieves a batch with its items.
func (c *Coordinator) Get(ctx context.Context, batchID string) (*models.BatchOperation, error) {
	sctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	b, err := c.store.GetBatch(sctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch %s: %w", batchID, err)
	}
	return b, nil
}

// setStatus moves b from expected to status and mirrors the change on b.
func (c *Coordinator) setStatus(ctx context.Context, b *models.BatchOperation, expected, status models.BatchStatus) error {
	var completedAt *time.Time
	switch status {
	case models.BatchCompleted, models.BatchFailed, models.BatchCanceled:
		now := c.now().UTC()
		completedAt = &now
	}

	sctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.store.SetBatchStatus(sctx, b.ID, expected, status, completedAt); err != nil {
		return fmt.Errorf("failed to set batch %s to %s: %w", b.ID, status, err)
	}

	b.Status = status
	b.CompletedAt = completedAt
	return nil
}

func (c *Coordinator) validate(req SubmitRequest) error {
	if len(req.TransactionIDs) == 0 {
		return fmt.Errorf("%w: transactionIds must not be empty", models.ErrValidation)
	}
	if len(req.TransactionIDs) > MaxTransactionIDs {
		return fmt.Errorf("%w: a batch accepts at most %d transactions", models.ErrValidation, MaxTransactionIDs)
	}
	for _, id := range req.TransactionIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: transactionIds must not contain empty values", models.ErrValidation)
		}
	}
	if strings.TrimSpace(req.PerformedBy) == "" {
		return fmt.Errorf("%w: performedBy is required", models.ErrValidation)
	}
	actions, ok := allowedActions[req.Type]
	if !ok {
		return fmt.Errorf("%w: unknown batch type %q", models.ErrValidation, req.Type)
	}
	if !slices.Contains(actions, req.Action) {
		return fmt.Errorf("%w: action %q is not allowed for %s batches", models.ErrValidation, req.Action, req.Type)
	}
	if req.Deferred && c.scheduler == nil {
		return fmt.Errorf("%w: deferred batches are not enabled", models.ErrValidation)
	}
	return nil
}

// ErrorCode classifies an item failure.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, models.ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, storage.ErrConcurrentModification):
		return CodeConcurrentModification
	case errors.Is(err, storage.ErrUnavailable):
		return CodeUnavailable
	case errors.Is(err, models.ErrValidation):
		return CodeValidation
	default:
		return CodeInternal
	}
}
