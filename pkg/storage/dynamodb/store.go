// Package dynamodb implements the storage contract on AWS DynamoDB.
//
// Table layout:
//   - transactions: partition key id. GSI status-created_at-index (status, created_at)
//     serves pending listings and status-filtered queries.
//   - logs: partition key transaction_id, sort key sk (timestamp#id). GSI
//     gsi1pk-timestamp-index serves the system-wide recent view.
//   - batches: partition key id. Items are appended in place.
//   - external_ids: partition key merchant_external; guards (merchantId, externalId) uniqueness.
//   - connections: partition key connection_id. GSI pk-index lists every connection.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names the DynamoDB tables backing the store.
type Tables struct {
	Transactions string
	Logs         string
	Batches      string
	ExternalIDs  string
	Connections  string
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client DynamoDBAPI
	Tables Tables
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client: client,
		Tables: tables,
	}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
	_ DynamoDBAPI              = (*dynamodb.Client)(nil)
)

const (
	statusCreatedAtIndex = "status-created_at-index"
	logsRecentIndex      = "gsi1pk-timestamp-index"
	connectionsIndex     = "pk-index"

	conditionalCheckFailed = "ConditionalCheckFailed"
)

// classify wraps a client error. Timeouts and throttling become storage.ErrUnavailable.
func classify(op string, err error) error {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		internal   *types.InternalServerError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &throughput),
		errors.As(err, &limit),
		errors.As(err, &internal):
		return storage.Unavailable(op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// cancellationReason returns the code and old item of the transact item at index.
func cancellationReason(err error, index int) (string, map[string]types.AttributeValue, bool) {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) || index >= len(tce.CancellationReasons) {
		return "", nil, false
	}
	reason := tce.CancellationReasons[index]
	if reason.Code == nil {
		return "", nil, false
	}
	return *reason.Code, reason.Item, true
}

// conditionFailed reports whether err is a failed condition on a single-item write,
// returning the stored item when the request asked for it.
func conditionFailed(err error) (map[string]types.AttributeValue, bool) {
	var ccf *types.ConditionalCheckFailedException
	if !errors.As(err, &ccf) {
		return nil, false
	}
	return ccf.Item, true
}
