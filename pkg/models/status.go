package models

import (
	"fmt"
	"strings"
)

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	PENDING          TransactionStatus = "pending"
	COMPLETED        TransactionStatus = "completed"
	FAILED           TransactionStatus = "failed"
	CANCELED         TransactionStatus = "canceled"
	REFUNDED         TransactionStatus = "refunded"
	PARTIAL_REFUNDED TransactionStatus = "partial_refunded"
)

// cancelledAlias is the British spelling still sent by older clients and
// found in older rows. It is only ever a wire alias for CANCELED.
const cancelledAlias = "cancelled"

// AllStatuses lists every logical status in lifecycle order.
var AllStatuses = []TransactionStatus{PENDING, COMPLETED, FAILED, CANCELED, REFUNDED, PARTIAL_REFUNDED}

// ParseTransactionStatus converts a wire value into a TransactionStatus.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == cancelledAlias {
		return CANCELED, nil
	}
	for _, st := range AllStatuses {
		if string(st) == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown transaction status %q", ErrValidation, s)
}

// Valid reports whether s is exactly one of the canonical statuses.
func (s TransactionStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}

// UnmarshalText accepts the canonical spelling and the "cancelled" alias.
func (s *TransactionStatus) UnmarshalText(text []byte) error {
	st, err := ParseTransactionStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// TransactionType is the kind of money movement.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
	TypeRefund     TransactionType = "refund"
	TypeAdjustment TransactionType = "adjustment"
)

// ParseTransactionType converts a wire value into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer, TypeRefund, TypeAdjustment:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", ErrValidation, s)
}

// Priority orders pending transactions for processing.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRank = map[Priority]int{
	PriorityLow:    0,
	PriorityNormal: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// ParsePriority converts a wire value into a Priority. An empty value is normal.
func ParsePriority(s string) (Priority, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return PriorityNormal, nil
	}
	p := Priority(v)
	if _, ok := priorityRank[p]; !ok {
		return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
	}
	return p, nil
}

// Rank returns the scheduling weight of p; higher is served first.
// Unknown priorities rank with normal.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return priorityRank[PriorityNormal]
}

// Escalate returns the next priority level, saturating at urgent.
func (p Priority) Escalate() Priority {
	switch p {
	case PriorityLow:
		return PriorityNormal
	case PriorityNormal:
		return PriorityHigh
	default:
		return PriorityUrgent
	}
}
