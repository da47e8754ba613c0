package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	productsvc "marketledger/internal/service/product"
)

type productHandlers struct {
	svc    CatalogService
	logger *zap.Logger
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	AttachmentURL string          `json:"attachmentURL"`
}

func (r productRequest) input() productsvc.Input {
	return productsvc.Input{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		AttachmentURL: r.AttachmentURL,
	}
}

type priceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type feedbackRequest struct {
	Content string `json:"content"`
}

func (h *productHandlers) list(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		writeError(c, err)
		return
	}
	writeOk(c, products)
}

func (h *productHandlers) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	p, err := h.svc.Create(ctx, principalFrom(ctx), req.input())
	if err != nil {
		h.logger.Error("create product", zap.Error(err))
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	p, err := h.svc.Update(ctx, principalFrom(ctx), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) updatePrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	p, err := h.svc.UpdatePrice(ctx, principalFrom(ctx), c.Param("id"), req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) addFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	p, err := h.svc.AddFeedback(ctx, principalFrom(ctx), c.Param("id"), productsvc.FeedbackInput{Content: req.Content})
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) like(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.Like(ctx, principalFrom(ctx), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) buy(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.Buy(ctx, principalFrom(ctx), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}

func (h *productHandlers) delete(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.Delete(ctx, principalFrom(ctx), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, p)
}
