package models

import (
	"fmt"
	"strings"
	"time"
)

// BatchType is the business category of a batch operation.
type BatchType string

const (
	BatchTypeDeposit      BatchType = "deposit"
	BatchTypeWithdrawal   BatchType = "withdrawal"
	BatchTypeStatusUpdate BatchType = "status_update"
	BatchTypeRefund       BatchType = "refund"
)

// ParseBatchType converts a wire value into a BatchType.
func ParseBatchType(s string) (BatchType, error) {
	switch t := BatchType(strings.ToLower(strings.TrimSpace(s))); t {
	case BatchTypeDeposit, BatchTypeWithdrawal, BatchTypeStatusUpdate, BatchTypeRefund:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown batch type %q", ErrValidation, s)
}

// BatchAction is the operation applied to every transaction of a batch.
type BatchAction string

const (
	BatchActionApprove       BatchAction = "approve"
	BatchActionFail          BatchAction = "fail"
	BatchActionCancel        BatchAction = "cancel"
	BatchActionRetry         BatchAction = "retry"
	BatchActionRefund        BatchAction = "refund"
	BatchActionPartialRefund BatchAction = "partial_refund"
)

var batchActionTargets = map[BatchAction]TransactionStatus{
	BatchActionApprove:       COMPLETED,
	BatchActionFail:          FAILED,
	BatchActionCancel:        CANCELED,
	BatchActionRetry:         PENDING,
	BatchActionRefund:        REFUNDED,
	BatchActionPartialRefund: PARTIAL_REFUNDED,
}

// ParseBatchAction converts a wire value into a BatchAction.
func ParseBatchAction(s string) (BatchAction, error) {
	a := BatchAction(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := batchActionTargets[a]; !ok {
		return "", fmt.Errorf("%w: unknown batch action %q", ErrValidation, s)
	}
	return a, nil
}

// TargetStatus is the transaction status the action moves an item to.
func (a BatchAction) TargetStatus() TransactionStatus {
	return batchActionTargets[a]
}

// BatchStatus is the processing state of a batch operation.
type BatchStatus string

const (
	BatchPending    BatchStatus = "pending"
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
	BatchCanceled   BatchStatus = "canceled"
)

// BatchItemStatus is the per-transaction outcome inside a batch.
type BatchItemStatus string

const (
	ItemSucceeded BatchItemStatus = "succeeded"
	ItemFailed    BatchItemStatus = "failed"
	ItemSkipped   BatchItemStatus = "skipped"
)

// BatchOperation applies one action to many transactions.
type BatchOperation struct {
	ID             string
	Type           BatchType
	Action         BatchAction
	TransactionIDs []string
	Status         BatchStatus
	Items          []BatchOperationItem
	Reason         string
	CreatedBy      string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}

// BatchOperationItem records the outcome for one transaction of a batch.
type BatchOperationItem struct {
	TransactionID string
	Status        BatchItemStatus
	ErrorCode     string
	ErrorMessage  string
	ProcessedAt   time.Time
}

// BatchCounts is derived from the items of a batch; it is never stored.
type BatchCounts struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// Counts scans the items of b.
func (b *BatchOperation) Counts() BatchCounts {
	c := BatchCounts{Total: len(b.TransactionIDs)}
	for _, item := range b.Items {
		switch item.Status {
		case ItemSucceeded:
			c.Succeeded++
		case ItemFailed:
			c.Failed++
		case ItemSkipped:
			c.Skipped++
		}
	}
	return c
}

// Finished reports whether every requested transaction has an outcome.
func (b *BatchOperation) Finished() bool {
	return len(b.Items) == len(b.TransactionIDs)
}
