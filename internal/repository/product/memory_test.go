package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketledger/internal/domain"
)

func TestMemory_Contract(t *testing.T) {
	runRepositoryContract(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	_, err := repo.Upsert(ctx, domain.Product{ID: "p1", Feedbacks: []domain.Feedback{{ID: "f1"}}})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Feedbacks[0].Content = "mutated"
	got.Likes = 99

	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "", again.Feedbacks[0].Content)
	assert.Equal(t, uint64(0), again.Likes)
}
