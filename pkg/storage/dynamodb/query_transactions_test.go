package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQueryTransactions(t *testing.T) {
	from := testNow.Add(-time.Hour)
	to := testNow.Add(time.Hour)

	t.Run("By Status Uses Index", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == statusCreatedAtIndex &&
				*in.KeyConditionExpression == "#status = :status AND created_at BETWEEN :from AND :to" &&
				*in.FilterExpression == "#type = :type"
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{transactionItem(t, testTransaction(models.PENDING))},
		}, nil).Once()

		txs, err := store.QueryTransactions(context.Background(), storage.TransactionFilter{
			Status: models.PENDING, Type: models.TypeDeposit, From: &from, To: &to,
		})

		assert.NoError(t, err)
		assert.Len(t, txs, 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Without Status Scans", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return *in.FilterExpression == "merchant_id = :merchant_id AND created_at >= :from" &&
				in.ExpressionAttributeNames == nil
		})).Return(&dynamodb.ScanOutput{
			Items: []map[string]types.AttributeValue{
				transactionItem(t, testTransaction(models.PENDING)),
				transactionItem(t, testTransaction(models.COMPLETED)),
			},
		}, nil).Once()

		txs, err := store.QueryTransactions(context.Background(), storage.TransactionFilter{MerchantID: "m-1", From: &from})

		assert.NoError(t, err)
		assert.Len(t, txs, 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("No Filter", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return in.FilterExpression == nil
		})).Return(&dynamodb.ScanOutput{}, nil).Once()

		txs, err := store.QueryTransactions(context.Background(), storage.TransactionFilter{})

		assert.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed")).Once()

		_, err := store.QueryTransactions(context.Background(), storage.TransactionFilter{})

		assert.ErrorContains(t, err, "failed to scan transactions")
	})
}
