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

// QueryTransactions lists transactions matching filter. A status filter is
// served by the status-created_at index; anything else scans the table.
func (s *Store) QueryTransactions(ctx context.Context, filter storage.TransactionFilter) ([]models.Transaction, error) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
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

	rangeCond := createdAtRange(filter, values)

	if filter.Status != "" {
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
		keyCond := "#status = :status"
		if rangeCond != "" {
			keyCond += " AND " + rangeCond
		}
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(s.Tables.Transactions),
			IndexName:                 aws.String(statusCreatedAtIndex),
			KeyConditionExpression:    aws.String(keyCond),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}
		if len(conds) > 0 {
			input.FilterExpression = aws.String(strings.Join(conds, " AND "))
		}
		return s.queryTransactions(ctx, input)
	}

	if rangeCond != "" {
		conds = append(conds, rangeCond)
	}
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Transactions),
	}
	if len(conds) > 0 {
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
		input.ExpressionAttributeValues = values
		if len(names) > 0 {
			input.ExpressionAttributeNames = names
		}
	}
	return s.scanTransactions(ctx, input)
}

func createdAtRange(filter storage.TransactionFilter, values map[string]types.AttributeValue) string {
	switch {
	case filter.From != nil && filter.To != nil:
		values[":from"] = &types.AttributeValueMemberS{Value: formatTime(*filter.From)}
		values[":to"] = &types.AttributeValueMemberS{Value: formatTime(*filter.To)}
		return "created_at BETWEEN :from AND :to"
	case filter.From != nil:
		values[":from"] = &types.AttributeValueMemberS{Value: formatTime(*filter.From)}
		return "created_at >= :from"
	case filter.To != nil:
		values[":to"] = &types.AttributeValueMemberS{Value: formatTime(*filter.To)}
		return "created_at <= :to"
	}
	return ""
}

// queryTransactions follows LastEvaluatedKey until the query is exhausted.
func (s *Store) queryTransactions(ctx context.Context, input *dynamodb.QueryInput) ([]models.Transaction, error) {
	var records []transactionRecord
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, classify("query transactions", err)
		}
		var page []transactionRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		records = append(records, page...)
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return toTransactions(records)
}

func (s *Store) scanTransactions(ctx context.Context, input *dynamodb.ScanInput) ([]models.Transaction, error) {
	var records []transactionRecord
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, classify("scan transactions", err)
		}
		var page []transactionRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		records = append(records, page...)
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return toTransactions(records)
}
