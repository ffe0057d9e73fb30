package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConnections(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			return *in.TableName == "connections" &&
				in.Item["connection_id"].(*types.AttributeValueMemberS).Value == "conn-1"
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		assert.NoError(t, store.AddConnection(context.Background(), "conn-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Remove", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("DeleteItem", mock.Anything, mock.AnythingOfType("*dynamodb.DeleteItemInput")).Return(&dynamodb.DeleteItemOutput{}, nil).Once()

		assert.NoError(t, store.RemoveConnection(context.Background(), "conn-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Get All", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == connectionsIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			{"connection_id": &types.AttributeValueMemberS{Value: "conn-1"}},
			{"connection_id": &types.AttributeValueMemberS{Value: "conn-2"}},
		}}, nil).Once()

		ids, err := store.GetAllConnections(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []string{"conn-1", "conn-2"}, ids)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store, mockClient := newTestStore()
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put item failed")).Once()

		assert.ErrorContains(t, store.AddConnection(context.Background(), "conn-1"), "failed to save connection")
	})
}
