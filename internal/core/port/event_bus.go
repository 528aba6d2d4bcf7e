package port

import "context"

// EventBus publishes ledger notifications for external observers.
// Delivery is best effort; the ledger never fails an operation because
// an event could not be published.
type EventBus interface {
	Publish(ctx context.Context, topic string, event any) error
}
