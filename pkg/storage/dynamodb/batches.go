package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/google/uuid"
)

// CreateBatch stores a new batch, assigning an ID when it has none.
func (s *Store) CreateBatch(ctx context.Context, batch *models.BatchOperation) (string, error) {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}

	item, err := attributevalue.MarshalMap(toBatchRecord(batch))
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Batches),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return "", fmt.Errorf("batch with ID %s: %w", batch.ID, storage.ErrAlreadyExists)
		}
		return "", classify("create batch", err)
	}

	return batch.ID, nil
}

// GetBatch retrieves a batch with its items.
func (s *Store) GetBatch(ctx context.Context, batchID string) (*models.BatchOperation, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Batches),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: batchID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify("get batch", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("batch with ID %s: %w", batchID, storage.ErrNotFound)
	}

	var record batchRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch: %w", err)
	}
	return record.toModel()
}

// AppendBatchItem appends item, conditioned on the list holding exactly index items.
func (s *Store) AppendBatchItem(ctx context.Context, batchID string, index int, item models.BatchOperationItem) error {
	itemAV, err := attributevalue.Marshal([]batchItemRecord{toBatchItemRecord(item)})
	if err != nil {
		return fmt.Errorf("failed to marshal batch item: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Batches),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: batchID},
		},
		UpdateExpression:    aws.String("SET #items = list_append(#items, :item)"),
		ConditionExpression: aws.String("attribute_exists(id) AND size(#items) = :index"),
		ExpressionAttributeNames: map[string]string{
			"#items": "items",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":item":  itemAV,
			":index": &types.AttributeValueMemberN{Value: strconv.Itoa(index)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			if old == nil {
				return fmt.Errorf("batch with ID %s: %w", batchID, storage.ErrNotFound)
			}
			return fmt.Errorf("batch %s cannot write position %d: %w", batchID, index, storage.ErrConcurrentModification)
		}
		return classify("append batch item", err)
	}
	return nil
}

// SetBatchStatus moves a batch from expected to status.
func (s *Store) SetBatchStatus(ctx context.Context, batchID string, expected, status models.BatchStatus, completedAt *time.Time) error {
	expr := "SET #status = :status"
	values := map[string]types.AttributeValue{
		":status":   &types.AttributeValueMemberS{Value: string(status)},
		":expected": &types.AttributeValueMemberS{Value: string(expected)},
	}
	if completedAt != nil {
		expr += ", completed_at = :completed_at"
		values[":completed_at"] = &types.AttributeValueMemberS{Value: formatTime(*completedAt)}
	}

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Batches),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: batchID},
		},
		UpdateExpression:    aws.String(expr),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			if old == nil {
				return fmt.Errorf("batch with ID %s: %w", batchID, storage.ErrNotFound)
			}
			return fmt.Errorf("batch %s is not %s: %w", batchID, expected, storage.ErrConcurrentModification)
		}
		return classify("set batch status", err)
	}
	return nil
}
