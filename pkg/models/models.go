package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the internal domain model for a transaction.
type Transaction struct {
	ID            string
	MerchantID    string
	Type          TransactionType
	Amount        decimal.Decimal
	Currency      string
	Status        TransactionStatus
	Fee           decimal.Decimal
	FeeRate       decimal.Decimal
	Description   string
	ExternalID    string
	CustomerName  string
	CustomerEmail string
	Metadata      map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time

	// Pending is set while Status is PENDING and nil otherwise.
	Pending *PendingInfo
}

// PendingInfo holds the queue attributes of a pending transaction.
type PendingInfo struct {
	Since                   time.Time
	Reason                  string
	Priority                Priority
	EstimatedCompletionTime *time.Time
}

// PendingTransaction is the queue view of a transaction whose status is PENDING.
type PendingTransaction struct {
	Transaction
	PendingSince            time.Time
	PendingReason           string
	Priority                Priority
	EstimatedCompletionTime *time.Time
}

// AsPending projects tx into the pending view. It returns false when tx is not pending.
func (tx *Transaction) AsPending() (PendingTransaction, bool) {
	if tx.Status != PENDING || tx.Pending == nil {
		return PendingTransaction{}, false
	}
	return PendingTransaction{
		Transaction:             *tx,
		PendingSince:            tx.Pending.Since,
		PendingReason:           tx.Pending.Reason,
		Priority:                tx.Pending.Priority,
		EstimatedCompletionTime: tx.Pending.EstimatedCompletionTime,
	}, true
}

// TransactionLog is an immutable audit record tied to a transaction.
type TransactionLog struct {
	ID            string
	TransactionID string
	Action        string
	Status        TransactionStatus
	Message       string
	PerformedBy   string
	Details       map[string]string
	Timestamp     time.Time
}

// Audit actions written by the lifecycle components.
const (
	ActionTransactionCreated = "TRANSACTION_CREATED"
	ActionPendingUpdated     = "PENDING_UPDATED"
	ActionNoteAdded          = "NOTE_ADDED"
)

// StatusChangedAction returns the audit action for a move into status.
func StatusChangedAction(status TransactionStatus) string {
	return "STATUS_CHANGED_TO_" + strings.ToUpper(string(status))
}

// StatusChangedEvent is published after every committed status transition.
type StatusChangedEvent struct {
	TransactionID  string            `json:"transactionId"`
	PreviousStatus TransactionStatus `json:"previousStatus"`
	NewStatus      TransactionStatus `json:"newStatus"`
	PerformedBy    string            `json:"performedBy"`
	Timestamp      time.Time         `json:"timestamp"`
}
