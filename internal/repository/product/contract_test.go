package product

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketledger/internal/domain"
)

// runRepositoryContract exercises the ordered key-value behaviour every backend must provide.
func runRepositoryContract(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty list", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("upsert and get", func(t *testing.T) {
		_, err := repo.Upsert(ctx, domain.Product{
			ID:            "b-product",
			Name:          "Mug",
			Description:   "ceramic",
			Price:         decimal.RequireFromString("12.50"),
			AttachmentURL: "https://example.com/mug.png",
			Feedbacks:     []domain.Feedback{},
			CreatedAt:     created,
			Author:        "alice",
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "b-product")
		require.NoError(t, err)
		assert.Equal(t, "Mug", got.Name)
		assert.True(t, decimal.RequireFromString("12.5").Equal(got.Price))
		assert.Equal(t, domain.Principal("alice"), got.Author)
		assert.True(t, created.Equal(got.CreatedAt))
		assert.Nil(t, got.UpdatedAt)
		assert.NotNil(t, got.Feedbacks)
		assert.Empty(t, got.Feedbacks)
	})

	t.Run("upsert replaces whole record", func(t *testing.T) {
		updated := created.Add(time.Hour)
		_, err := repo.Upsert(ctx, domain.Product{
			ID:        "b-product",
			Name:      "Mug v2",
			Price:     decimal.RequireFromString("13"),
			Sold:      2,
			Likes:     5,
			Feedbacks: []domain.Feedback{{ID: "f1", Content: "great", Author: "bob", CreatedAt: updated}},
			CreatedAt: created,
			UpdatedAt: &updated,
			Author:    "alice",
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "b-product")
		require.NoError(t, err)
		assert.Equal(t, "Mug v2", got.Name)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, uint64(2), got.Sold)
		assert.Equal(t, uint64(5), got.Likes)
		require.Len(t, got.Feedbacks, 1)
		assert.Equal(t, "great", got.Feedbacks[0].Content)
		assert.Equal(t, domain.Principal("bob"), got.Feedbacks[0].Author)
		require.NotNil(t, got.UpdatedAt)
		assert.True(t, updated.Equal(*got.UpdatedAt))
	})

	t.Run("list in key order", func(t *testing.T) {
		for _, id := range []string{"c-product", "a-product"} {
			_, err := repo.Upsert(ctx, domain.Product{ID: id, Name: id, CreatedAt: created, Author: "carol"})
			require.NoError(t, err)
		}
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "a-product", list[0].ID)
		assert.Equal(t, "b-product", list[1].ID)
		assert.Equal(t, "c-product", list[2].ID)
	})

	t.Run("delete returns removed record", func(t *testing.T) {
		removed, err := repo.Delete(ctx, "a-product")
		require.NoError(t, err)
		assert.Equal(t, "a-product", removed.ID)

		_, err = repo.GetByID(ctx, "a-product")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repo.Delete(ctx, "a-product")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("upsert without id", func(t *testing.T) {
		_, err := repo.Upsert(ctx, domain.Product{Name: "nameless"})
		assert.Error(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
