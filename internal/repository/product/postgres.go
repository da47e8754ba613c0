package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/logging"
)

const productColumns = `id, name, description, price::text, sold, attachment_url, likes, feedbacks, author, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", zap.String("id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price, sold, attachment_url, likes, feedbacks, author, created_at, updated_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8::jsonb, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    sold = EXCLUDED.sold,
    attachment_url = EXCLUDED.attachment_url,
    likes = EXCLUDED.likes,
    feedbacks = EXCLUDED.feedbacks,
    author = EXCLUDED.author,
    created_at = EXCLUDED.created_at,
    updated_at = EXCLUDED.updated_at
`
	if p.ID == "" {
		return nil, errors.New("product repo: upsert without id")
	}
	stored := p.Clone()
	feedbacks, err := json.Marshal(stored.Feedbacks)
	if err != nil {
		return nil, fmt.Errorf("product repo: encode feedbacks id=%s: %w", p.ID, err)
	}

	_, err = r.pool.Exec(ctx, q,
		stored.ID,
		stored.Name,
		stored.Description,
		stored.Price.String(),
		int64(stored.Sold),
		stored.AttachmentURL,
		int64(stored.Likes),
		string(feedbacks),
		stored.Author.String(),
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: upserted", zap.String("id", p.ID))
	return &stored, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	q := `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: delete", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: deleted", zap.String("id", id))
	return p, nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p         domain.Product
		price     string
		sold      int64
		likes     int64
		feedbacks []byte
		author    string
		updatedAt *time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &sold, &p.AttachmentURL, &likes, &feedbacks, &author, &p.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	dec, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("decode price id=%s: %w", p.ID, err)
	}
	p.Price = dec
	p.Sold = uint64(sold)
	p.Likes = uint64(likes)
	p.Author = domain.Principal(author)
	p.UpdatedAt = updatedAt
	p.Feedbacks = []domain.Feedback{}
	if len(feedbacks) > 0 {
		if err := json.Unmarshal(feedbacks, &p.Feedbacks); err != nil {
			return nil, fmt.Errorf("decode feedbacks id=%s: %w", p.ID, err)
		}
		if p.Feedbacks == nil {
			p.Feedbacks = []domain.Feedback{}
		}
	}
	return &p, nil
}
