package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/ledger"
	"marketledger/internal/metrics"
	productsvc "marketledger/internal/service/product"
)

// CatalogService is the product catalog as seen by the handlers.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, caller domain.Principal, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, caller domain.Principal, id string, in productsvc.Input) (*domain.Product, error)
	UpdatePrice(ctx context.Context, caller domain.Principal, id string, price decimal.Decimal) (*domain.Product, error)
	AddFeedback(ctx context.Context, caller domain.Principal, id string, in productsvc.FeedbackInput) (*domain.Product, error)
	Like(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error)
	Buy(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error)
	Delete(ctx context.Context, caller domain.Principal, id string) (*domain.Product, error)
}

// LedgerService is the token ledger as seen by the handlers.
type LedgerService interface {
	InitializeSupply(name, originAddress, ticker string, totalSupply uint64) bool
	Transfer(from, to string, amount uint64) (bool, error)
	Balance(address string) uint64
	Ticker() string
	Name() string
	TotalSupply() uint64
	Accounts() []ledger.Account
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles the services the router dispatches to.
type Deps struct {
	Catalog CatalogService
	Ledger  LedgerService
	Store   Pinger
}

func buildRouter(logger *zap.Logger, deps Deps, allowOrigins []string) (*gin.Engine, error) {
	if deps.Catalog == nil {
		return nil, errors.New("httpserver: catalog service required")
	}
	if deps.Ledger == nil {
		return nil, errors.New("httpserver: ledger service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		requestLogger(logger),
		gin.Recovery(),
		cors.New(corsConfig(allowOrigins)),
		requestMetrics(),
		principalMiddleware(),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	products := &productHandlers{svc: deps.Catalog, logger: logger}
	pg := router.Group("/products")
	pg.GET("", products.list)
	pg.GET("/:id", products.get)
	pg.POST("", products.create)
	pg.PUT("/:id", products.update)
	pg.PATCH("/:id/price", products.updatePrice)
	pg.POST("/:id/feedbacks", products.addFeedback)
	pg.POST("/:id/like", products.like)
	pg.POST("/:id/buy", products.buy)
	pg.DELETE("/:id", products.delete)

	token := &tokenHandlers{svc: deps.Ledger}
	tg := router.Group("/token")
	tg.POST("/initialize", token.initializeSupply)
	tg.POST("/transfer", token.transfer)
	tg.GET("/balance", token.balance)
	tg.GET("/accounts", token.accounts)
	tg.GET("/ticker", token.ticker)
	tg.GET("/name", token.name)
	tg.GET("/total-supply", token.totalSupply)

	return router, nil
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", principalHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range allowOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowOrigins
	return cfg
}
