package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/transaction-backoffice/pkg/audit"
	eventmocks "github.com/chris/transaction-backoffice/pkg/events/mocks"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/chris/transaction-backoffice/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	assert.ElementsMatch(t, []models.TransactionStatus{models.COMPLETED, models.FAILED, models.CANCELED}, AllowedTargets(models.PENDING))
	assert.ElementsMatch(t, []models.TransactionStatus{models.REFUNDED, models.PARTIAL_REFUNDED}, AllowedTargets(models.COMPLETED))
	assert.ElementsMatch(t, []models.TransactionStatus{models.PENDING, models.CANCELED}, AllowedTargets(models.FAILED))

	for _, s := range []models.TransactionStatus{models.CANCELED, models.REFUNDED, models.PARTIAL_REFUNDED} {
		assert.True(t, IsTerminal(s), s)
		assert.Empty(t, AllowedTargets(s))
	}
	assert.False(t, IsTerminal(models.PENDING))

	for _, s := range models.AllStatuses {
		assert.False(t, CanTransition(s, s), "self transition from %s", s)
	}
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending To Completed", func(t *testing.T) {
		publisher := eventmocks.NewPublisher(t)
		f := newFixture(t, stepClock(t0, time.Second), publisher)
		created := f.enqueue(t, "TX1", models.PriorityNormal)

		publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(e models.StatusChangedEvent) bool {
			return e.TransactionID == "TX1" && e.PreviousStatus == models.PENDING && e.NewStatus == models.COMPLETED && e.PerformedBy == "system"
		})).Once().Return(nil)

		tx := f.transition(t, "TX1", models.COMPLETED)

		assert.Equal(t, models.COMPLETED, tx.Status)
		assert.True(t, tx.UpdatedAt.After(created.UpdatedAt))
		require.NotNil(t, tx.CompletedAt)
		assert.Nil(t, tx.Pending)

		logs, err := f.audit.ListByTransaction(ctx, "TX1")
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "STATUS_CHANGED_TO_COMPLETED", logs[0].Action)
		assert.Equal(t, models.COMPLETED, logs[0].Status)
		assert.Equal(t, "system", logs[0].PerformedBy)

		pending, err := f.queue.List(ctx, storage.PendingFilter{})
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Completed To Pending Is Rejected", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)
		f.enqueue(t, "TX1", models.PriorityNormal)
		f.transition(t, "TX1", models.COMPLETED)

		_, err := f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.PENDING, PerformedBy: "admin"})

		assert.ErrorIs(t, err, models.ErrInvalidTransition)
		logs, _ := f.audit.ListByTransaction(ctx, "TX1")
		assert.Len(t, logs, 2, "a rejected transition writes no log")
	})

	t.Run("Same Status Is Rejected", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)
		f.enqueue(t, "TX1", models.PriorityNormal)

		_, err := f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.PENDING, PerformedBy: "admin"})

		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	})

	t.Run("Terminal Is Rejected", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)
		f.enqueue(t, "TX1", models.PriorityNormal)
		f.transition(t, "TX1", models.CANCELED)

		for _, target := range models.AllStatuses {
			_, err := f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: target, PerformedBy: "admin"})
			assert.ErrorIs(t, err, models.ErrInvalidTransition, target)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)

		_, err := f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX404", Target: models.COMPLETED, PerformedBy: "admin"})

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Validation Error", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)

		_, err := f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: "settled", PerformedBy: "admin"})
		assert.ErrorIs(t, err, models.ErrValidation)

		_, err = f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.COMPLETED})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Non Canonical Target Is A Validation Error", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)
		f.enqueue(t, "TX1", models.PriorityNormal)

		_, err := f.machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: "COMPLETED", PerformedBy: "admin"})

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NotErrorIs(t, err, models.ErrInvalidTransition)
	})

	t.Run("Retry Resets Pending Attributes", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Minute), nil)
		created := f.enqueue(t, "TX1", models.PriorityLow)
		f.transition(t, "TX1", models.FAILED)

		tx, err := f.machine.Transition(ctx, TransitionRequest{
			TransactionID: "TX1", Target: models.PENDING, Reason: "bank back online", PerformedBy: "admin", Priority: models.PriorityHigh,
		})

		require.NoError(t, err)
		require.NotNil(t, tx.Pending)
		assert.Equal(t, "Retry: bank back online", tx.Pending.Reason)
		assert.Equal(t, models.PriorityHigh, tx.Pending.Priority)
		assert.True(t, tx.Pending.Since.After(created.Pending.Since))
	})

	t.Run("Retry Without Reason", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Minute), nil)
		f.enqueue(t, "TX1", models.PriorityLow)
		f.transition(t, "TX1", models.FAILED)

		tx := f.transition(t, "TX1", models.PENDING)

		assert.Equal(t, DefaultRetryReason, tx.Pending.Reason)
		assert.Equal(t, models.PriorityNormal, tx.Pending.Priority)
	})

	t.Run("UpdatedAt Increases With A Frozen Clock", func(t *testing.T) {
		f := newFixture(t, func() time.Time { return t0 }, nil)
		created := f.enqueue(t, "TX1", models.PriorityNormal)

		failed := f.transition(t, "TX1", models.FAILED)
		retried := f.transition(t, "TX1", models.PENDING)

		assert.True(t, failed.UpdatedAt.After(created.UpdatedAt))
		assert.True(t, retried.UpdatedAt.After(failed.UpdatedAt))
	})

	t.Run("Publish Failure Does Not Fail The Transition", func(t *testing.T) {
		publisher := eventmocks.NewPublisher(t)
		f := newFixture(t, stepClock(t0, time.Second), publisher)
		f.enqueue(t, "TX1", models.PriorityNormal)

		publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Once().Return(errors.New("queue down"))

		tx := f.transition(t, "TX1", models.COMPLETED)
		assert.Equal(t, models.COMPLETED, tx.Status)
	})
}

func TestNextUpdatedAt(t *testing.T) {
	t.Run("Clock Advanced", func(t *testing.T) {
		assert.Equal(t, t0.Add(time.Second), nextUpdatedAt(t0, t0.Add(time.Second)))
	})

	t.Run("Clock Behind", func(t *testing.T) {
		assert.Equal(t, t0.Add(time.Microsecond), nextUpdatedAt(t0, t0.Add(-time.Second)))
	})

	t.Run("Same Microsecond", func(t *testing.T) {
		previous := t0.Add(200 * time.Nanosecond)
		next := nextUpdatedAt(previous, t0.Add(700*time.Nanosecond))

		assert.Equal(t, t0.Add(time.Microsecond), next)
		assert.True(t, next.Truncate(time.Microsecond).After(previous.Truncate(time.Microsecond)))
	})
}

func TestTransitionStorageFailures(t *testing.T) {
	ctx := context.Background()
	pendingTx := &models.Transaction{
		ID: "TX1", Status: models.PENDING, UpdatedAt: t0,
		Pending: &models.PendingInfo{Since: t0, Priority: models.PriorityNormal},
	}

	t.Run("Concurrent Modification", func(t *testing.T) {
		store := new(mocks.Storage)
		publisher := eventmocks.NewPublisher(t)
		machine := NewStateMachine(store, audit.NewLogger(store, nil), publisher, Options{})

		store.On("GetTransaction", mock.Anything, "TX1").Once().Return(pendingTx, nil)
		store.On("SaveTransactionStatus", mock.Anything, mock.MatchedBy(func(c storage.StatusChange) bool {
			return c.ExpectedStatus == models.PENDING && c.NewStatus == models.COMPLETED && c.Log.Action == "STATUS_CHANGED_TO_COMPLETED"
		})).Once().Return(storage.ErrConcurrentModification)

		_, err := machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.COMPLETED, PerformedBy: "system"})

		assert.ErrorIs(t, err, storage.ErrConcurrentModification)
		assert.Contains(t, err.Error(), "TX1")
		store.AssertExpectations(t)
		publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	})

	t.Run("Committed Without Re-read", func(t *testing.T) {
		store := new(mocks.Storage)
		publisher := eventmocks.NewPublisher(t)
		machine := NewStateMachine(store, audit.NewLogger(store, nil), publisher, Options{})

		store.On("GetTransaction", mock.Anything, "TX1").Once().Return(pendingTx, nil)
		store.On("SaveTransactionStatus", mock.Anything, mock.Anything).Once().Return(nil)
		publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(e models.StatusChangedEvent) bool {
			return e.TransactionID == "TX1" && e.PreviousStatus == models.PENDING && e.NewStatus == models.COMPLETED
		})).Once().Return(nil)

		tx, err := machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.COMPLETED, PerformedBy: "system"})

		assert.NoError(t, err)
		assert.Equal(t, models.COMPLETED, tx.Status)
		assert.NotNil(t, tx.CompletedAt)
		assert.Nil(t, tx.Pending)
		assert.True(t, tx.UpdatedAt.After(t0))
		assert.Equal(t, models.PENDING, pendingTx.Status)
		store.AssertNumberOfCalls(t, "GetTransaction", 1)
		store.AssertExpectations(t)
	})

	t.Run("Store Timeout", func(t *testing.T) {
		store := new(mocks.Storage)
		machine := NewStateMachine(store, audit.NewLogger(store, nil), nil, Options{StoreTimeout: 10 * time.Millisecond})

		store.On("GetTransaction", mock.Anything, "TX1").Once().Return(
			func(ctx context.Context, id string) (*models.Transaction, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})

		_, err := machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.COMPLETED, PerformedBy: "system"})

		assert.ErrorIs(t, err, storage.ErrUnavailable)
		store.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store := new(mocks.Storage)
		machine := NewStateMachine(store, audit.NewLogger(store, nil), nil, Options{})

		store.On("GetTransaction", mock.Anything, "TX1").Once().Return(pendingTx, nil)
		store.On("SaveTransactionStatus", mock.Anything, mock.Anything).Once().Return(errors.New("write failed"))

		_, err := machine.Transition(ctx, TransitionRequest{TransactionID: "TX1", Target: models.FAILED, PerformedBy: "system"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to move transaction TX1 from pending to failed")
		store.AssertExpectations(t)
	})
}

func TestAddNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)
		f.enqueue(t, "TX1", models.PriorityNormal)

		entry, err := f.machine.AddNote(ctx, "TX1", "merchant confirmed by phone", "admin")

		require.NoError(t, err)
		assert.Equal(t, models.ActionNoteAdded, entry.Action)
		assert.Equal(t, models.PENDING, entry.Status)

		tx, err := f.store.GetTransaction(ctx, "TX1")
		require.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)
	})

	t.Run("Empty Note", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)

		_, err := f.machine.AddNote(ctx, "TX1", " ", "admin")

		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t, stepClock(t0, time.Second), nil)

		_, err := f.machine.AddNote(ctx, "TX404", "note", "admin")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
