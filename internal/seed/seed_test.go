package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketledger/internal/domain"
	productrepo "marketledger/internal/repository/product"
)

func TestApply_InsertsDemoProducts(t *testing.T) {
	ctx := context.Background()
	store := productrepo.NewMemory()

	n, err := Apply(ctx, store, nil)
	require.NoError(t, err)
	assert.Equal(t, len(demoProducts), n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(demoProducts))
	for _, p := range list {
		assert.Equal(t, DemoAuthor, p.Author)
		assert.True(t, p.Price.IsPositive())
	}
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := productrepo.NewMemory()
	_, err := Apply(ctx, store, nil)
	require.NoError(t, err)

	_, err = store.Upsert(ctx, domain.Product{ID: "demo-poster", Name: "Renamed", Author: "someone"})
	require.NoError(t, err)

	n, err := Apply(ctx, store, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	p, err := store.GetByID(ctx, "demo-poster")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
}

type brokenStore struct{}

func (brokenStore) GetByID(context.Context, string) (*domain.Product, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func TestApply_LookupError(t *testing.T) {
	n, err := Apply(context.Background(), brokenStore{}, nil)
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, 0, n)
}
