package product

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/events"
	"marketledger/internal/logging"
	"marketledger/internal/metrics"
	productrepo "marketledger/internal/repository/product"
)

const notOwnerMessage = "You are not the owner of this product"

// Input carries the caller-editable product fields.
type Input struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	AttachmentURL string          `json:"attachmentURL"`
}

// FeedbackInput carries a new review.
type FeedbackInput struct {
	Content string `json:"content"`
}

// Service implements the product catalog on top of an ordered key-value store.
// Mutations are serialized so each read-modify-replace is atomic with respect
// to other calls on the same Service.
type Service struct {
	repo       productrepo.Repository
	publisher  events.Publisher
	logger     *zap.Logger
	now        func() time.Time // microsecond precision, as stored by postgres
	newID      func() string
	newEventID func() string

	mu sync.Mutex
}

func New(repo productrepo.Repository, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:       repo,
		publisher:  publisher,
		logger:     logging.OrNop(logger),
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:      uuid.NewString,
		newEventID: uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	metrics.IncCatalogOp("list", err)
	return products, err
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		err = domain.Errorf(domain.ErrNotFound, "Product with id=%s not found", id)
	}
	metrics.IncCatalogOp("get", err)
	return p, err
}

func (s *Service) Create(ctx context.Context, caller domain.Principal, in Input) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Product{
		ID:            s.newID(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		AttachmentURL: in.AttachmentURL,
		Feedbacks:     []domain.Feedback{},
		CreatedAt:     s.now(),
		Author:        caller,
	}
	return s.store(ctx, "create", events.ProductCreated, caller, p)
}

func (s *Service) Update(ctx context.Context, caller domain.Principal, id string, in Input) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		metrics.IncCatalogOp("update", err)
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.AttachmentURL = in.AttachmentURL
	p.UpdatedAt = s.timestamp()
	return s.store(ctx, "update", events.ProductUpdated, caller, *p)
}

func (s *Service) UpdatePrice(ctx context.Context, caller domain.Principal, id string, price decimal.Decimal) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		metrics.IncCatalogOp("update_price", err)
		return nil, err
	}
	p.Price = price
	p.UpdatedAt = s.timestamp()
	return s.store(ctx, "update_price", events.ProductPriceUpdated, caller, *p)
}

// AddFeedback appends a review. Anyone may review; updatedAt is left alone.
func (s *Service) AddFeedback(ctx context.Context, caller domain.Principal, id string, in FeedbackInput) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		metrics.IncCatalogOp("add_feedback", err)
		return nil, err
	}
	p.Feedbacks = append(p.Feedbacks, domain.Feedback{
		ID:        s.newID(),
		Content:   in.Content,
		Author:    caller,
		CreatedAt: s.now(),
	})
	return s.store(ctx, "add_feedback", events.ProductReviewed, caller, *p)
}

func (s *Service) Like(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		metrics.IncCatalogOp("like", err)
		return nil, err
	}
	p.Likes++
	return s.store(ctx, "like", events.ProductLiked, caller, *p)
}

// Buy records a sale. No payment or balance is involved.
func (s *Service) Buy(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		metrics.IncCatalogOp("buy", err)
		return nil, err
	}
	p.Sold++
	return s.store(ctx, "buy", events.ProductSold, caller, *p)
}

// Delete removes a product. Unlike Update it does not check ownership.
func (s *Service) Delete(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		err = domain.Errorf(domain.ErrNotFound, "couldn't delete a Product with id=%s. Product not found.", id)
	}
	metrics.IncCatalogOp("delete", err)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog.deleted", zap.String("id", id), zap.String("caller", caller.String()))
	s.publish(ctx, events.ProductDeleted, caller, *p)
	return p, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "Product with id=%s not found", id)
	}
	return p, err
}

func (s *Service) loadOwned(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "Couldn't update Product with id=%s. Product not found", id)
	}
	if err != nil {
		return nil, err
	}
	if p.Author != caller {
		s.logger.Info("catalog.not_owner",
			zap.String("id", id),
			zap.String("caller", caller.String()),
			zap.String("author", p.Author.String()),
		)
		return nil, domain.Errorf(domain.ErrPermissionDenied, notOwnerMessage)
	}
	return p, nil
}

func (s *Service) store(ctx context.Context, op, eventType string, caller domain.Principal, p domain.Product) (*domain.Product, error) {
	stored, err := s.repo.Upsert(ctx, p)
	metrics.IncCatalogOp(op, err)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog."+op, zap.String("id", stored.ID), zap.String("caller", caller.String()))
	s.publish(ctx, eventType, caller, *stored)
	return stored, nil
}

// publish never fails the call; delivery errors are logged by the publisher.
func (s *Service) publish(ctx context.Context, eventType string, caller domain.Principal, p domain.Product) {
	evt := events.Event{
		ID:         s.newEventID(),
		Type:       eventType,
		ProductID:  p.ID,
		Actor:      caller,
		OccurredAt: s.now(),
		Product:    p,
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("catalog.event_dropped", zap.String("type", eventType), zap.String("id", p.ID), zap.Error(err))
	}
}

func (s *Service) timestamp() *time.Time {
	ts := s.now()
	return &ts
}
