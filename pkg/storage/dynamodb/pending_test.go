package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListPending(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		first := testTransaction(models.PENDING)
		second := testTransaction(models.PENDING)
		second.ID = "tx-2"
		cutoff := testNow

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == statusCreatedAtIndex &&
				*in.FilterExpression == "merchant_id = :merchant_id AND pending_since < :cutoff" &&
				in.ExclusiveStartKey == nil
		})).Return(&dynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{transactionItem(t, first)},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "tx-1"}},
		}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{transactionItem(t, second)},
		}, nil).Once()

		txs, err := store.ListPending(context.Background(), storage.PendingFilter{MerchantID: "m-1", OlderThan: &cutoff})

		assert.NoError(t, err)
		assert.Len(t, txs, 2)
		assert.Equal(t, "tx-2", txs[1].ID)
		assert.NotNil(t, txs[0].Pending)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.ListPending(context.Background(), storage.PendingFilter{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query transactions")
	})
}

func TestSavePendingMetadata(t *testing.T) {
	update := storage.PendingUpdate{Reason: "manual review", Priority: models.PriorityHigh, UpdatedAt: testNow}

	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			u := in.TransactItems[0].Update
			return len(in.TransactItems) == 2 &&
				u.ExpressionAttributeValues[":reason"].(*types.AttributeValueMemberS).Value == "manual review"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		assert.NoError(t, store.SavePendingMetadata(context.Background(), "tx-1", update, testLog("tx-1")))
		mockClient.AssertExpectations(t)
	})

	t.Run("No Longer Pending", func(t *testing.T) {
		store, mockClient := newTestStore()
		tce := &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
			{Code: aws.String(conditionalCheckFailed), Item: transactionItem(t, testTransaction(models.COMPLETED))},
			{Code: aws.String("None")},
		}}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, tce).Once()

		err := store.SavePendingMetadata(context.Background(), "tx-1", update, testLog("tx-1"))

		assert.ErrorIs(t, err, storage.ErrConcurrentModification)
	})
}

func TestClearPendingMetadata(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		assert.NoError(t, store.ClearPendingMetadata(context.Background(), "tx-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		assert.ErrorIs(t, store.ClearPendingMetadata(context.Background(), "tx-1"), storage.ErrNotFound)
	})

	t.Run("Still Pending", func(t *testing.T) {
		store, mockClient := newTestStore()
		ccf := &types.ConditionalCheckFailedException{Item: transactionItem(t, testTransaction(models.PENDING))}
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, ccf).Once()

		assert.ErrorIs(t, store.ClearPendingMetadata(context.Background(), "tx-1"), storage.ErrConcurrentModification)
	})
}
