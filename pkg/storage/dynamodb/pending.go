package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// ListPending queries the status index for pending transactions.
func (s *Store) ListPending(ctx context.Context, filter storage.PendingFilter) ([]models.Transaction, error) {
	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
	}
	var conds []string

	if filter.MerchantID != "" {
		conds = append(conds, "merchant_id = :merchant_id")
		values[":merchant_id"] = &types.AttributeValueMemberS{Value: filter.MerchantID}
	}
	if filter.Type != "" {
		names["#type"] = "type"
		conds = append(conds, "#type = :type")
		values[":type"] = &types.AttributeValueMemberS{Value: string(filter.Type)}
	}
	if filter.OlderThan != nil {
		conds = append(conds, "pending_since < :cutoff")
		values[":cutoff"] = &types.AttributeValueMemberS{Value: formatTime(*filter.OlderThan)}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.Tables.Transactions),
		IndexName:                 aws.String(statusCreatedAtIndex),
		KeyConditionExpression:    aws.String("#status = :status"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if len(conds) > 0 {
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
	}

	return s.queryTransactions(ctx, input)
}

// SavePendingMetadata updates reason and priority and appends log in one
// DynamoDB transaction, conditioned on the transaction still being pending.
func (s *Store) SavePendingMetadata(ctx context.Context, txID string, update storage.PendingUpdate, log models.TransactionLog) error {
	logAV, err := attributevalue.MarshalMap(toLogRecord(log))
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.Tables.Transactions),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: txID},
					},
					UpdateExpression:    aws.String("SET pending_reason = :reason, priority = :priority, updated_at = :updated_at"),
					ConditionExpression: aws.String("attribute_exists(id) AND #status = :pending AND attribute_exists(pending_since)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":reason":     &types.AttributeValueMemberS{Value: update.Reason},
						":priority":   &types.AttributeValueMemberS{Value: string(update.Priority)},
						":updated_at": &types.AttributeValueMemberS{Value: formatTime(update.UpdatedAt)},
						":pending":    &types.AttributeValueMemberS{Value: string(models.PENDING)},
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(s.Tables.Logs),
					Item:      logAV,
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if code, old, ok := cancellationReason(err, 0); ok && code == conditionalCheckFailed {
			if old == nil {
				return fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
			}
			return fmt.Errorf("transaction %s is no longer pending: %w", txID, storage.ErrConcurrentModification)
		}
		return classify("save pending metadata", err)
	}
	return nil
}

// ClearPendingMetadata removes the pending attributes of a transaction that left pending.
func (s *Store) ClearPendingMetadata(ctx context.Context, txID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Transactions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("REMOVE " + strings.Join(pendingAttributes, ", ")),
		ConditionExpression: aws.String("attribute_exists(id) AND #status <> :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(models.PENDING)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			if old == nil {
				return fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
			}
			return fmt.Errorf("transaction %s is still pending: %w", txID, storage.ErrConcurrentModification)
		}
		return classify("clear pending metadata", err)
	}
	return nil
}
