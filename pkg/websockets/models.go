package websockets

import "github.com/chris/transaction-backoffice/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeStatusChanged is sent after every committed status transition.
	MessageTypeStatusChanged MessageType = "statusChanged"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// StatusChangedMessage wraps a status change for the dashboard.
func StatusChangedMessage(event models.StatusChangedEvent) Message {
	return Message{Type: MessageTypeStatusChanged, Payload: event}
}
