package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionStatus(t *testing.T) {
	t.Run("Canonical", func(t *testing.T) {
		for _, st := range AllStatuses {
			got, err := ParseTransactionStatus(string(st))
			require.NoError(t, err)
			assert.Equal(t, st, got)
		}
	})

	t.Run("Cancelled Alias", func(t *testing.T) {
		got, err := ParseTransactionStatus("Cancelled")
		require.NoError(t, err)
		assert.Equal(t, CANCELED, got)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseTransactionStatus("settled")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("JSON Alias", func(t *testing.T) {
		var v struct {
			Status TransactionStatus `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"status":"cancelled"}`), &v))
		assert.Equal(t, CANCELED, v.Status)

		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"canceled"}`, string(out))
	})

	t.Run("Alias Is Not A Logical State", func(t *testing.T) {
		assert.False(t, TransactionStatus("cancelled").Valid())
		assert.True(t, CANCELED.Valid())
	})

	t.Run("Valid Is Case Sensitive", func(t *testing.T) {
		assert.False(t, TransactionStatus("COMPLETED").Valid())
		assert.False(t, TransactionStatus(" pending").Valid())
		assert.True(t, COMPLETED.Valid())
	})
}

func TestStatusChangedAction(t *testing.T) {
	assert.Equal(t, "STATUS_CHANGED_TO_COMPLETED", StatusChangedAction(COMPLETED))
	assert.Equal(t, "STATUS_CHANGED_TO_PARTIAL_REFUNDED", StatusChangedAction(PARTIAL_REFUNDED))
}

func TestPriority(t *testing.T) {
	assert.Greater(t, PriorityUrgent.Rank(), PriorityHigh.Rank())
	assert.Greater(t, PriorityHigh.Rank(), PriorityNormal.Rank())
	assert.Greater(t, PriorityNormal.Rank(), PriorityLow.Rank())

	assert.Equal(t, PriorityNormal, PriorityLow.Escalate())
	assert.Equal(t, PriorityUrgent, PriorityUrgent.Escalate())

	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNormal, p)

	_, err = ParsePriority("critical")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBatchCounts(t *testing.T) {
	b := BatchOperation{
		TransactionIDs: []string{"TX1", "TX2", "TX2", "TX3"},
		Items: []BatchOperationItem{
			{TransactionID: "TX1", Status: ItemSucceeded},
			{TransactionID: "TX2", Status: ItemFailed},
			{TransactionID: "TX2", Status: ItemSkipped},
		},
	}

	assert.Equal(t, BatchCounts{Total: 4, Succeeded: 1, Failed: 1, Skipped: 1}, b.Counts())
	assert.False(t, b.Finished())

	b.Items = append(b.Items, BatchOperationItem{TransactionID: "TX3", Status: ItemSucceeded})
	assert.True(t, b.Finished())
}

func TestAsPending(t *testing.T) {
	since := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	tx := Transaction{ID: "TX1", Status: PENDING, Pending: &PendingInfo{Since: since, Reason: "review", Priority: PriorityHigh}}

	p, ok := tx.AsPending()
	require.True(t, ok)
	assert.Equal(t, since, p.PendingSince)
	assert.Equal(t, PriorityHigh, p.Priority)

	tx.Status = COMPLETED
	_, ok = tx.AsPending()
	assert.False(t, ok)
}
