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

var pendingAttributes = []string{"pending_since", "pending_reason", "priority", "estimated_completion_time"}

// SaveTransactionStatus updates the status and appends the log in one
// DynamoDB transaction, conditioned on the stored status. The row is not
// read back; callers derive it with change.Apply.
func (s *Store) SaveTransactionStatus(ctx context.Context, change storage.StatusChange) error {
	logAV, err := attributevalue.MarshalMap(toLogRecord(change.Log))
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	update := statusUpdate(change)
	update.TableName = aws.String(s.Tables.Transactions)
	update.Key = map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: change.TransactionID},
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
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
				return fmt.Errorf("transaction with ID %s: %w", change.TransactionID, storage.ErrNotFound)
			}
			return fmt.Errorf("transaction %s is no longer %s: %w", change.TransactionID, change.ExpectedStatus, storage.ErrConcurrentModification)
		}
		return classify("save transaction status", err)
	}

	return nil
}

// statusUpdate builds the conditional update for change. Pending attributes
// are set when moving into pending and removed otherwise.
func statusUpdate(change storage.StatusChange) *types.Update {
	set := []string{"#status = :status", "updated_at = :updated_at"}
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(change.NewStatus)},
		":expected":   &types.AttributeValueMemberS{Value: string(change.ExpectedStatus)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(change.UpdatedAt)},
	}
	var remove []string

	if change.CompletedAt != nil {
		set = append(set, "completed_at = :completed_at")
		values[":completed_at"] = &types.AttributeValueMemberS{Value: formatTime(*change.CompletedAt)}
	}

	if change.NewStatus == models.PENDING && change.Pending != nil {
		set = append(set, "pending_since = :pending_since", "pending_reason = :pending_reason", "priority = :priority")
		values[":pending_since"] = &types.AttributeValueMemberS{Value: formatTime(change.Pending.Since)}
		values[":pending_reason"] = &types.AttributeValueMemberS{Value: change.Pending.Reason}
		values[":priority"] = &types.AttributeValueMemberS{Value: string(change.Pending.Priority)}
		if change.Pending.EstimatedCompletionTime != nil {
			set = append(set, "estimated_completion_time = :eta")
			values[":eta"] = &types.AttributeValueMemberS{Value: formatTime(*change.Pending.EstimatedCompletionTime)}
		} else {
			remove = append(remove, "estimated_completion_time")
		}
	} else {
		remove = append(remove, pendingAttributes...)
	}

	expr := "SET " + strings.Join(set, ", ")
	if len(remove) > 0 {
		expr += " REMOVE " + strings.Join(remove, ", ")
	}

	return &types.Update{
		UpdateExpression:                    aws.String(expr),
		ConditionExpression:                 aws.String("attribute_exists(id) AND #status = :expected"),
		ExpressionAttributeNames:            map[string]string{"#status": "status"},
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}
}
