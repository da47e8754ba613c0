package product

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketledger/internal/domain"
)

func newTestRedisRepo(t *testing.T) (Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, "test:products", nil), mr
}

func TestRedis_Contract(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	runRepositoryContract(t, repo)
}

func TestRedis_KeysLayout(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	_, err := repo.Upsert(context.Background(), domain.Product{ID: "p1", Name: "Lamp"})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:products:records"))
	assert.True(t, mr.Exists("test:products:index"))
	assert.Contains(t, mr.HGet("test:products:records", "p1"), `"name":"Lamp"`)
}

func TestRedis_ListSkipsDanglingIndexEntries(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	_, err := repo.Upsert(context.Background(), domain.Product{ID: "p1", Name: "Lamp"})
	require.NoError(t, err)
	_, err = mr.ZAdd("test:products:index", 0, "p0")
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].ID)
}

func TestRedis_PingFailsWhenServerDown(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	mr.Close()

	err := repo.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
