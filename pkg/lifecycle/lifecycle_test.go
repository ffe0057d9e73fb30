package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/chris/transaction-backoffice/pkg/audit"
	"github.com/chris/transaction-backoffice/pkg/events"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// stepClock advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

type fixture struct {
	store   *memory.Store
	audit   *audit.Logger
	machine *StateMachine
	queue   *PendingQueue
}

func newFixture(t *testing.T, clock func() time.Time, publisher events.Publisher) *fixture {
	t.Helper()
	store := memory.New()
	auditLog := audit.NewLogger(store, nil).WithClock(clock)
	machine := NewStateMachine(store, auditLog, publisher, Options{})
	return &fixture{
		store:   store,
		audit:   auditLog,
		machine: machine,
		queue:   NewPendingQueue(store, machine, auditLog, Options{}),
	}
}

func newTransaction(id string) *models.Transaction {
	return &models.Transaction{
		ID:          id,
		MerchantID:  "M1",
		Type:        models.TypeDeposit,
		Amount:      decimal.RequireFromString("125.50"),
		Currency:    "USD",
		Description: "Top up " + id,
	}
}

func (f *fixture) enqueue(t *testing.T, id string, priority models.Priority) *models.Transaction {
	t.Helper()
	tx, err := f.queue.Enqueue(context.Background(), EnqueueRequest{
		Transaction: newTransaction(id),
		Reason:      "awaiting bank confirmation",
		Priority:    priority,
		PerformedBy: "system",
	})
	require.NoError(t, err)
	return tx
}

func (f *fixture) transition(t *testing.T, id string, target models.TransactionStatus) *models.Transaction {
	t.Helper()
	tx, err := f.machine.Transition(context.Background(), TransitionRequest{TransactionID: id, Target: target, PerformedBy: "system"})
	require.NoError(t, err)
	return tx
}
