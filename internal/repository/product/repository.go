package product

import (
	"context"

	"marketledger/internal/domain"
)

// Repository is an ordered key-value map of products keyed by id.
// Upsert replaces the whole record stored under p.ID.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	Ping(ctx context.Context) error
}
