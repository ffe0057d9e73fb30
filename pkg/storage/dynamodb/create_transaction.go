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

// CreateTransaction writes the transaction, its external ID reservation and
// its creation log in a single DynamoDB transaction.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction, log models.TransactionLog) error {
	txAV, err := attributevalue.MarshalMap(toTransactionRecord(tx))
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	logAV, err := attributevalue.MarshalMap(toLogRecord(log))
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Transactions),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	externalIndex := -1
	if tx.ExternalID != "" {
		extAV, err := attributevalue.MarshalMap(externalIDRecord{
			MerchantExternal: externalKey(tx.MerchantID, tx.ExternalID),
			TransactionID:    tx.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal external ID: %w", err)
		}
		externalIndex = len(items)
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.ExternalIDs),
				Item:                extAV,
				ConditionExpression: aws.String("attribute_not_exists(merchant_external)"),
			},
		})
	}

	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(s.Tables.Logs),
			Item:      logAV,
		},
	})

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if code, _, ok := cancellationReason(err, 0); ok && code == conditionalCheckFailed {
			return fmt.Errorf("transaction with ID %s: %w", tx.ID, storage.ErrAlreadyExists)
		}
		if externalIndex >= 0 {
			if code, _, ok := cancellationReason(err, externalIndex); ok && code == conditionalCheckFailed {
				return fmt.Errorf("external ID %s: %w", tx.ExternalID, storage.ErrDuplicateExternalID)
			}
		}
		return classify("create transaction", err)
	}

	return nil
}
