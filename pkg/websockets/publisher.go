package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// PostToConnectionAPI is the subset of the API Gateway management client used to push messages.
type PostToConnectionAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// DefaultPublisher pushes messages to API Gateway WebSocket connections.
type DefaultPublisher struct {
	store       AllConnectionsGetter
	connManager ConnectionManager
	apiGwClient PostToConnectionAPI
}

// NewPublisher creates a new DefaultPublisher for the WebSocket API at apiEndpoint.
func NewPublisher(cfg aws.Config, store AllConnectionsGetter, connManager ConnectionManager, apiEndpoint string) *DefaultPublisher {
	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})
	return NewPublisherWithClient(store, connManager, apiGwClient)
}

// NewPublisherWithClient creates a DefaultPublisher around an existing client.
func NewPublisherWithClient(store AllConnectionsGetter, connManager ConnectionManager, client PostToConnectionAPI) *DefaultPublisher {
	return &DefaultPublisher{
		store:       store,
		connManager: connManager,
		apiGwClient: client,
	}
}

// Make sure we conform to the interface
var _ Publisher = (*DefaultPublisher)(nil)

// Publish sends a message to all connected clients. Gone connections are
// removed; other per-connection failures are logged.
func (p *DefaultPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.store.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})

		if err != nil {
			var goneErr *apigwtypes.GoneException
			if errors.As(err, &goneErr) {
				slog.InfoContext(ctx, "stale connection found, deleting", "connectionId", connectionID)
				if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
					slog.ErrorContext(ctx, "failed to delete stale connection", "connectionId", connectionID, "error", err)
				}
			} else {
				slog.ErrorContext(ctx, "failed to post to connection", "connectionId", connectionID, "error", err)
			}
		}
	}

	return nil
}
