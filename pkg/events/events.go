// Package events carries committed status changes to downstream collaborators
// (notification queue, live dashboards). Delivery is at-least-once and
// entirely owned by the consumer.
package events

import (
	"context"
	"errors"

	"github.com/chris/transaction-backoffice/pkg/models"
)

// Publisher defines the interface for announcing a committed status transition.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, event models.StatusChangedEvent) error
}

// Multi fans an event out to every publisher. All publishers are attempted;
// their errors are joined.
type Multi []Publisher

// Make sure we conform to the interface
var _ Publisher = Multi(nil)

// PublishStatusChanged delivers event to every publisher in order.
func (m Multi) PublishStatusChanged(ctx context.Context, event models.StatusChangedEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.PublishStatusChanged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NoOpPublisher drops every event.
type NoOpPublisher struct{}

// PublishStatusChanged does nothing.
func (NoOpPublisher) PublishStatusChanged(ctx context.Context, event models.StatusChangedEvent) error {
	return nil
}
