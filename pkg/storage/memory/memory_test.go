package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func pendingTx(id string) *models.Transaction {
	return &models.Transaction{
		ID:         id,
		MerchantID: "M1",
		Type:       models.TypeDeposit,
		Amount:     decimal.NewFromInt(100),
		Currency:   "USD",
		Status:     models.PENDING,
		ExternalID: "ext-" + id,
		CreatedAt:  t0,
		UpdatedAt:  t0,
		Pending:    &models.PendingInfo{Since: t0, Reason: "review", Priority: models.PriorityNormal},
	}
}

func logFor(id, action string, ts time.Time) models.TransactionLog {
	return models.TransactionLog{ID: id + action, TransactionID: id, Action: action, PerformedBy: "system", Timestamp: ts}
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", models.ActionTransactionCreated, t0)))

		got, err := store.GetTransaction(ctx, "TX1")
		require.NoError(t, err)
		assert.Equal(t, models.PENDING, got.Status)

		logs, err := store.QueryLogs(ctx, "TX1", 0)
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("Already Exists", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", "A", t0)))

		err := store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", "B", t0))
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("Duplicate External ID", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", "A", t0)))

		dup := pendingTx("TX2")
		dup.ExternalID = "ext-TX1"
		err := store.CreateTransaction(ctx, dup, logFor("TX2", "A", t0))
		assert.ErrorIs(t, err, storage.ErrDuplicateExternalID)

		logs, err := store.QueryLogs(ctx, "TX2", 0)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}

func TestSaveTransactionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", "A", t0)))

		completedAt := t0.Add(time.Minute)
		err := store.SaveTransactionStatus(ctx, storage.StatusChange{
			TransactionID:  "TX1",
			ExpectedStatus: models.PENDING,
			NewStatus:      models.COMPLETED,
			UpdatedAt:      completedAt,
			CompletedAt:    &completedAt,
			Log:            logFor("TX1", "B", completedAt),
		})

		require.NoError(t, err)
		got, err := store.GetTransaction(ctx, "TX1")
		require.NoError(t, err)
		assert.Equal(t, models.COMPLETED, got.Status)
		assert.Nil(t, got.Pending)
		assert.Equal(t, completedAt, *got.CompletedAt)

		pending, err := store.ListPending(ctx, storage.PendingFilter{})
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Concurrent Modification", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", "A", t0)))

		err := store.SaveTransactionStatus(ctx, storage.StatusChange{
			TransactionID:  "TX1",
			ExpectedStatus: models.FAILED,
			NewStatus:      models.PENDING,
			UpdatedAt:      t0.Add(time.Minute),
			Log:            logFor("TX1", "B", t0),
		})

		assert.ErrorIs(t, err, storage.ErrConcurrentModification)
		logs, _ := store.QueryLogs(ctx, "TX1", 0)
		assert.Len(t, logs, 1, "no log is written when the status write is rejected")
	})

	t.Run("Not Found", func(t *testing.T) {
		err := New().SaveTransactionStatus(ctx, storage.StatusChange{TransactionID: "TX404"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Canceled Context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := New().SaveTransactionStatus(cctx, storage.StatusChange{TransactionID: "TX1"})
		assert.ErrorIs(t, err, storage.ErrUnavailable)
	})
}

func TestQueryLogs(t *testing.T) {
	ctx := context.Background()
	store := New()
	for i, id := range []string{"TX1", "TX2", "TX1"} {
		_, err := store.AppendLog(ctx, models.TransactionLog{
			ID: string(rune('a' + i)), TransactionID: id, Action: "A", Timestamp: t0.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	all, err := store.QueryLogs(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "b", all[1].ID)

	tx1, err := store.QueryLogs(ctx, "TX1", 0)
	require.NoError(t, err)
	assert.Len(t, tx1, 2)

	_, err = store.AppendLog(ctx, models.TransactionLog{ID: "a", TransactionID: "TX1"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestBatches(t *testing.T) {
	ctx := context.Background()
	store := New()

	id, err := store.CreateBatch(ctx, &models.BatchOperation{
		Type: models.BatchTypeStatusUpdate, Action: models.BatchActionCancel,
		TransactionIDs: []string{"TX1", "TX2"}, Status: models.BatchPending, CreatedAt: t0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, store.SetBatchStatus(ctx, id, models.BatchPending, models.BatchProcessing, nil))
	assert.ErrorIs(t, store.SetBatchStatus(ctx, id, models.BatchPending, models.BatchCanceled, nil), storage.ErrConcurrentModification)

	require.NoError(t, store.AppendBatchItem(ctx, id, 0, models.BatchOperationItem{TransactionID: "TX1", Status: models.ItemSucceeded}))
	assert.ErrorIs(t, store.AppendBatchItem(ctx, id, 0, models.BatchOperationItem{TransactionID: "TX1", Status: models.ItemFailed}), storage.ErrConcurrentModification)

	b, err := store.GetBatch(ctx, id)
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	assert.Equal(t, models.ItemSucceeded, b.Items[0].Status)

	_, err = store.GetBatch(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPendingMetadata(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.CreateTransaction(ctx, pendingTx("TX1"), logFor("TX1", "A", t0)))

	err := store.SavePendingMetadata(ctx, "TX1", storage.PendingUpdate{Reason: "kyc", Priority: models.PriorityUrgent, UpdatedAt: t0.Add(time.Minute)}, logFor("TX1", "B", t0))
	require.NoError(t, err)

	cutoff := t0.Add(time.Hour)
	pending, err := store.ListPending(ctx, storage.PendingFilter{OlderThan: &cutoff})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.PriorityUrgent, pending[0].Pending.Priority)
	assert.Equal(t, "kyc", pending[0].Pending.Reason)

	assert.ErrorIs(t, store.ClearPendingMetadata(ctx, "TX1"), storage.ErrConcurrentModification)
}
