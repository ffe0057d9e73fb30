package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/chris/transaction-backoffice/pkg/storage/dynamodb/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTables = Tables{
	Transactions: "transactions",
	Logs:         "logs",
	Batches:      "batches",
	ExternalIDs:  "external_ids",
	Connections:  "connections",
}

func newTestStore() (*Store, *mocks.DynamoDBAPI) {
	mockClient := new(mocks.DynamoDBAPI)
	return New(mockClient, testTables), mockClient
}

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testTransaction(status models.TransactionStatus) *models.Transaction {
	tx := &models.Transaction{
		ID:         "tx-1",
		MerchantID: "m-1",
		Type:       models.TypeDeposit,
		Amount:     decimal.RequireFromString("125.50"),
		Currency:   "USD",
		Status:     status,
		Fee:        decimal.RequireFromString("1.25"),
		FeeRate:    decimal.RequireFromString("0.01"),
		ExternalID: "ext-1",
		Metadata:   map[string]string{"channel": "web"},
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
	if status == models.PENDING {
		tx.Pending = &models.PendingInfo{Since: testNow, Reason: "review", Priority: models.PriorityNormal}
	}
	return tx
}

func testLog(txID string) models.TransactionLog {
	return models.TransactionLog{
		ID:            "log-1",
		TransactionID: txID,
		Action:        models.ActionTransactionCreated,
		Status:        models.PENDING,
		Message:       "created",
		PerformedBy:   "ops",
		Timestamp:     testNow,
	}
}

func transactionItem(t *testing.T, tx *models.Transaction) map[string]types.AttributeValue {
	item, err := attributevalue.MarshalMap(toTransactionRecord(tx))
	require.NoError(t, err)
	return item
}

func canceled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, c := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(c)}
	}
	return &types.TransactionCanceledException{Message: aws.String("canceled"), CancellationReasons: reasons}
}

func TestClassify(t *testing.T) {
	t.Run("Unavailable", func(t *testing.T) {
		for _, err := range []error{
			context.DeadlineExceeded,
			&types.ProvisionedThroughputExceededException{},
			&types.RequestLimitExceeded{},
			&types.InternalServerError{},
		} {
			assert.ErrorIs(t, classify("op", err), storage.ErrUnavailable)
		}
	})

	t.Run("Other", func(t *testing.T) {
		err := classify("get thing", errors.New("boom"))
		assert.NotErrorIs(t, err, storage.ErrUnavailable)
		assert.EqualError(t, err, "failed to get thing: boom")
	})
}

func TestTransactionRecord(t *testing.T) {
	t.Run("Pending Round Trip", func(t *testing.T) {
		eta := testNow.Add(time.Hour)
		tx := testTransaction(models.PENDING)
		tx.Pending.EstimatedCompletionTime = &eta

		item := transactionItem(t, tx)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "125.5"}, item["amount"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-03-01T12:00:00.000000Z"}, item["created_at"])

		var record transactionRecord
		require.NoError(t, attributevalue.UnmarshalMap(item, &record))
		got, err := record.toModel()
		require.NoError(t, err)

		assert.True(t, tx.Amount.Equal(got.Amount))
		assert.True(t, tx.Fee.Equal(got.Fee))
		assert.True(t, tx.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, tx.Metadata, got.Metadata)
		require.NotNil(t, got.Pending)
		assert.Equal(t, "review", got.Pending.Reason)
		assert.Equal(t, models.PriorityNormal, got.Pending.Priority)
		require.NotNil(t, got.Pending.EstimatedCompletionTime)
		assert.True(t, eta.Equal(*got.Pending.EstimatedCompletionTime))
	})

	t.Run("Completed Has No Pending Attributes", func(t *testing.T) {
		tx := testTransaction(models.COMPLETED)
		done := testNow.Add(time.Minute)
		tx.CompletedAt = &done

		item := transactionItem(t, tx)
		assert.NotContains(t, item, "pending_since")
		assert.NotContains(t, item, "priority")

		var record transactionRecord
		require.NoError(t, attributevalue.UnmarshalMap(item, &record))
		got, err := record.toModel()
		require.NoError(t, err)
		assert.Nil(t, got.Pending)
		require.NotNil(t, got.CompletedAt)
		assert.True(t, done.Equal(*got.CompletedAt))
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		_, err := transactionRecord{ID: "tx-1", Amount: "abc"}.toModel()
		assert.ErrorContains(t, err, "invalid amount")
	})
}

func TestTimeLayoutSortsLexically(t *testing.T) {
	a := formatTime(testNow.Add(500 * time.Microsecond))
	b := formatTime(testNow.Add(time.Millisecond))
	c := formatTime(testNow.Add(time.Second))
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}
