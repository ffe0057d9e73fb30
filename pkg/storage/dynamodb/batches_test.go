package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testBatch() *models.BatchOperation {
	return &models.BatchOperation{
		ID:             "batch-1",
		Type:           models.BatchTypeStatusUpdate,
		Action:         models.BatchActionApprove,
		TransactionIDs: []string{"tx-1", "tx-2"},
		Status:         models.BatchProcessing,
		Reason:         "month end",
		CreatedBy:      "ops",
		CreatedAt:      testNow,
	}
}

func TestCreateBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		b := testBatch()
		b.ID = ""

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			items, ok := in.Item["items"].(*types.AttributeValueMemberL)
			return *in.TableName == "batches" && ok && len(items.Value) == 0
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		id, err := store.CreateBatch(context.Background(), b)

		assert.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, b.ID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		_, err := store.CreateBatch(context.Background(), testBatch())

		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})
}

func TestGetBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		b := testBatch()
		b.Items = []models.BatchOperationItem{{TransactionID: "tx-1", Status: models.ItemSucceeded, ProcessedAt: testNow.Add(time.Second)}}
		item, err := attributevalue.MarshalMap(toBatchRecord(b))
		require.NoError(t, err)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()

		got, err := store.GetBatch(context.Background(), "batch-1")

		assert.NoError(t, err)
		assert.Equal(t, "month end", got.Reason)
		assert.Equal(t, []string{"tx-1", "tx-2"}, got.TransactionIDs)
		require.Len(t, got.Items, 1)
		assert.Equal(t, models.ItemSucceeded, got.Items[0].Status)
		assert.Equal(t, 1, got.Counts().Succeeded)
	})

	t.Run("Not Found", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := store.GetBatch(context.Background(), "batch-1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAppendBatchItem(t *testing.T) {
	item := models.BatchOperationItem{TransactionID: "tx-2", Status: models.ItemFailed, ErrorCode: "INVALID_TRANSITION", ProcessedAt: testNow}

	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return in.ExpressionAttributeValues[":index"].(*types.AttributeValueMemberN).Value == "1"
		})).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		assert.NoError(t, store.AppendBatchItem(context.Background(), "batch-1", 1, item))
		mockClient.AssertExpectations(t)
	})

	t.Run("Position Taken", func(t *testing.T) {
		store, mockClient := newTestStore()
		ccf := &types.ConditionalCheckFailedException{Item: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "batch-1"}}}
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, ccf).Once()

		assert.ErrorIs(t, store.AppendBatchItem(context.Background(), "batch-1", 1, item), storage.ErrConcurrentModification)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("update failed")).Once()

		assert.ErrorContains(t, store.AppendBatchItem(context.Background(), "batch-1", 1, item), "failed to append batch item")
	})
}

func TestSetBatchStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()
		done := testNow
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.UpdateExpression == "SET #status = :status, completed_at = :completed_at"
		})).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		err := store.SetBatchStatus(context.Background(), "batch-1", models.BatchProcessing, models.BatchCompleted, &done)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.SetBatchStatus(context.Background(), "batch-1", models.BatchPending, models.BatchCanceled, nil)

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
