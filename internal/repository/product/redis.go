package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/logging"
)

// redisRepo keeps records in a hash and their ids in a sorted set with equal
// scores, which Redis orders lexicographically.
type redisRepo struct {
	rdb     *redis.Client
	records string
	index   string
	logger  *zap.Logger
}

func NewRedis(rdb *redis.Client, keyPrefix string, logger *zap.Logger) Repository {
	return &redisRepo{
		rdb:     rdb,
		records: keyPrefix + ":records",
		index:   keyPrefix + ":index",
		logger:  logging.OrNop(logger),
	}
}

func (r *redisRepo) List(ctx context.Context) ([]domain.Product, error) {
	ids, err := r.rdb.ZRange(ctx, r.index, 0, -1).Result()
	if err != nil {
		r.logger.Error("product repo: list index", zap.Error(err))
		return nil, err
	}
	result := make([]domain.Product, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	raws, err := r.rdb.HMGet(ctx, r.records, ids...).Result()
	if err != nil {
		r.logger.Error("product repo: list records", zap.Error(err))
		return nil, err
	}
	for i, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			r.logger.Warn("product repo: index entry without record", zap.String("id", ids[i]))
			continue
		}
		p, err := decodeProduct(s)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *redisRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := r.rdb.HGet(ctx, r.records, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return decodeProduct(raw)
}

func (r *redisRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, errors.New("product repo: upsert without id")
	}
	stored := p.Clone()
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("product repo: encode id=%s: %w", p.ID, err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.records, stored.ID, data)
		pipe.ZAdd(ctx, r.index, redis.Z{Score: 0, Member: stored.ID})
		return nil
	})
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: upserted", zap.String("id", p.ID))
	return &stored, nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.records, id)
		pipe.ZRem(ctx, r.index, id)
		return nil
	})
	if err != nil {
		r.logger.Error("product repo: delete", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: deleted", zap.String("id", id))
	return existing, nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func decodeProduct(raw string) (*domain.Product, error) {
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("product repo: decode: %w", err)
	}
	if p.Feedbacks == nil {
		p.Feedbacks = []domain.Feedback{}
	}
	return &p, nil
}
