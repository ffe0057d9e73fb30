package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetTransaction(t *testing.T) {
	tx := testTransaction(models.PENDING)

	t.Run("Success", func(t *testing.T) {
		store, mockClient := newTestStore()

		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return *in.TableName == "transactions" && *in.ConsistentRead
		})).Return(&dynamodb.GetItemOutput{Item: transactionItem(t, tx)}, nil)

		result, err := store.GetTransaction(context.Background(), tx.ID)

		assert.NoError(t, err)
		assert.Equal(t, tx.ID, result.ID)
		assert.Equal(t, models.PENDING, result.Status)
		assert.True(t, tx.Amount.Equal(result.Amount))
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		store, mockClient := newTestStore()

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetTransaction(context.Background(), tx.ID)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store, mockClient := newTestStore()

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		_, err := store.GetTransaction(context.Background(), tx.ID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get transaction from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}
