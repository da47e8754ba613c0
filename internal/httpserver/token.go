package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type tokenHandlers struct {
	svc LedgerService
}

type initializeSupplyRequest struct {
	Name          string `json:"name"`
	OriginAddress string `json:"originAddress"`
	Ticker        string `json:"ticker"`
	TotalSupply   uint64 `json:"totalSupply"`
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

func (h *tokenHandlers) initializeSupply(c *gin.Context) {
	var req initializeSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeOk(c, h.svc.InitializeSupply(req.Name, req.OriginAddress, req.Ticker, req.TotalSupply))
}

func (h *tokenHandlers) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ok, err := h.svc.Transfer(req.From, req.To, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOk(c, ok)
}

// balance reads the address from the query string so that any string the
// ledger accepts, including "" and values containing "/", can be looked up.
func (h *tokenHandlers) balance(c *gin.Context) {
	writeOk(c, h.svc.Balance(c.Query("address")))
}

func (h *tokenHandlers) accounts(c *gin.Context) {
	writeOk(c, h.svc.Accounts())
}

func (h *tokenHandlers) ticker(c *gin.Context) {
	writeOk(c, h.svc.Ticker())
}

func (h *tokenHandlers) name(c *gin.Context) {
	writeOk(c, h.svc.Name())
}

func (h *tokenHandlers) totalSupply(c *gin.Context) {
	writeOk(c, h.svc.TotalSupply())
}
