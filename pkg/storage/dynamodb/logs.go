package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// AppendLog writes a single log entry. Entries are never overwritten.
func (s *Store) AppendLog(ctx context.Context, entry models.TransactionLog) (string, error) {
	item, err := attributevalue.MarshalMap(toLogRecord(entry))
	if err != nil {
		return "", fmt.Errorf("failed to marshal log: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Logs),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(sk)"),
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return "", fmt.Errorf("log with ID %s: %w", entry.ID, storage.ErrAlreadyExists)
		}
		return "", classify("append log", err)
	}

	return entry.ID, nil
}

// QueryLogs returns logs newest first, either for one transaction or from the
// recent-logs index.
func (s *Store) QueryLogs(ctx context.Context, transactionID string, limit int32) ([]models.TransactionLog, error) {
	input := &dynamodb.QueryInput{
		TableName:        aws.String(s.Tables.Logs),
		ScanIndexForward: aws.Bool(false), // Sort by timestamp in descending order
	}
	if transactionID != "" {
		input.KeyConditionExpression = aws.String("transaction_id = :id")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: transactionID},
		}
	} else {
		input.IndexName = aws.String(logsRecentIndex)
		input.KeyConditionExpression = aws.String("gsi1pk = :pk")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: recentLogsKey},
		}
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	var records []logRecord
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, classify("query logs", err)
		}
		var page []logRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal logs: %w", err)
		}
		records = append(records, page...)
		if len(result.LastEvaluatedKey) == 0 || (limit > 0 && len(records) >= int(limit)) {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	if limit > 0 && len(records) > int(limit) {
		records = records[:limit]
	}

	logs := make([]models.TransactionLog, 0, len(records))
	for _, r := range records {
		l, err := r.toModel()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}
