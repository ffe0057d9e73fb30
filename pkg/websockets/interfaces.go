package websockets

import (
	"context"
)

// ConnectionManager tracks the dashboard clients connected through the API
// Gateway WebSocket API. Connection IDs are added on $connect and removed on
// $disconnect or when a push finds the connection gone.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// AllConnectionsGetter lists the connection IDs a status change is pushed to.
type AllConnectionsGetter interface {
	GetAllConnections(ctx context.Context) ([]string, error)
}

// Publisher delivers a dashboard message to every connected client. The API
// Gateway publisher and the local Hub both implement it.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
