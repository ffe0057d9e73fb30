package websockets

import (
	"context"

	"github.com/chris/transaction-backoffice/pkg/events"
	"github.com/chris/transaction-backoffice/pkg/models"
)

// StatusFeed forwards committed status changes to dashboard clients.
type StatusFeed struct {
	Publisher Publisher
}

// NewStatusFeed creates a StatusFeed on top of p.
func NewStatusFeed(p Publisher) *StatusFeed {
	return &StatusFeed{Publisher: p}
}

// Make sure we conform to the interface
var _ events.Publisher = (*StatusFeed)(nil)

// PublishStatusChanged sends a statusChanged message to every connected client.
func (f *StatusFeed) PublishStatusChanged(ctx context.Context, event models.StatusChangedEvent) error {
	return f.Publisher.Publish(ctx, StatusChangedMessage(event))
}
