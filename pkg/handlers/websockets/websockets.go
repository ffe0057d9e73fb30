package websockets

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/transaction-backoffice/pkg/websockets"
)

// Handler handles API Gateway WebSocket routes for the dashboard feed.
type Handler struct {
	connManager websockets.ConnectionManager
	logger      *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(connManager websockets.ConnectionManager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		connManager: connManager,
		logger:      logger,
	}
}

// Route dispatches a request on its route key.
func (h *Handler) Route(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return h.HandleConnect(ctx, request)
	case "$disconnect":
		return h.HandleDisconnect(ctx, request)
	default:
		return h.HandleDefault(ctx, request)
	}
}

// HandleConnect handles new client connections.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.InfoContext(ctx, "dashboard client connected", "connectionId", request.RequestContext.ConnectionID)

	if err := h.connManager.AddConnection(ctx, request.RequestContext.ConnectionID); err != nil {
		h.logger.ErrorContext(ctx, "failed to save connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDisconnect handles client disconnections.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.InfoContext(ctx, "dashboard client disconnected", "connectionId", request.RequestContext.ConnectionID)

	if err := h.connManager.RemoveConnection(ctx, request.RequestContext.ConnectionID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDefault acknowledges client messages. The feed is server to client only.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.DebugContext(ctx, "ignoring dashboard client message", "connectionId", request.RequestContext.ConnectionID)
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}
