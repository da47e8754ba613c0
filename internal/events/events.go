package events

import (
	"context"
	"time"

	"marketledger/internal/domain"
)

// Event types emitted after successful catalog mutations.
const (
	ProductCreated      = "product.created"
	ProductUpdated      = "product.updated"
	ProductPriceUpdated = "product.price_updated"
	ProductReviewed     = "product.reviewed"
	ProductLiked        = "product.liked"
	ProductSold         = "product.sold"
	ProductDeleted      = "product.deleted"
)

// Event describes one catalog change.
type Event struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	ProductID  string           `json:"productId"`
	Actor      domain.Principal `json:"actor"`
	OccurredAt time.Time        `json:"occurredAt"`
	Product    domain.Product   `json:"product"`
}

// Publisher delivers catalog events. Implementations must not block the
// caller for longer than a single network round trip.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
