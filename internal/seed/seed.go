package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/logging"
)

// DemoAuthor owns every seeded product.
const DemoAuthor domain.Principal = "demo-author"

// Store is the subset of the product repository seeding needs.
type Store interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type productSeed struct {
	ID            string
	Name          string
	Description   string
	Price         string
	AttachmentURL string
}

var demoProducts = []productSeed{
	{
		ID:            "demo-poster",
		Name:          "Demo Poster",
		Description:   "Digital poster print for demo purposes",
		Price:         "19.99",
		AttachmentURL: "https://example.com/demo/poster.png",
	},
	{
		ID:            "demo-ebook",
		Name:          "Demo E-Book",
		Description:   "Short e-book with demo content",
		Price:         "12.99",
		AttachmentURL: "https://example.com/demo/ebook.pdf",
	},
}

// Apply inserts the demo products that are not present yet and returns how
// many were written. Existing records are left untouched.
func Apply(ctx context.Context, store Store, logger *zap.Logger) (int, error) {
	logger = logging.OrNop(logger)
	now := time.Now().UTC().Truncate(time.Microsecond)

	inserted := 0
	for _, s := range demoProducts {
		_, err := store.GetByID(ctx, s.ID)
		if err == nil {
			logger.Debug("seed product exists", zap.String("id", s.ID))
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return inserted, fmt.Errorf("lookup product %s: %w", s.ID, err)
		}

		p := domain.Product{
			ID:            s.ID,
			Name:          s.Name,
			Description:   s.Description,
			Price:         decimal.RequireFromString(s.Price),
			AttachmentURL: s.AttachmentURL,
			Feedbacks:     []domain.Feedback{},
			CreatedAt:     now,
			Author:        DemoAuthor,
		}
		if _, err := store.Upsert(ctx, p); err != nil {
			return inserted, fmt.Errorf("upsert product %s: %w", s.ID, err)
		}
		logger.Info("seeded product", zap.String("id", s.ID), zap.String("name", s.Name))
		inserted++
	}
	return inserted, nil
}
