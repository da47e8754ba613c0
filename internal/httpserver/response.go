package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketledger/internal/domain"
	"marketledger/internal/ledger"
)

const rejectCodeTrapped = "CANISTER_ERROR"

type okResponse struct {
	Ok any `json:"Ok"`
}

type errResponse struct {
	Err string `json:"Err"`
}

type rejectResponse struct {
	RejectCode    string `json:"reject_code"`
	RejectMessage string `json:"reject_message"`
}

func writeOk(c *gin.Context, v any) {
	c.JSON(http.StatusOK, okResponse{Ok: v})
}

func writeErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errResponse{Err: msg})
}

// writeError maps service errors to a status. Traps are rejected calls,
// not Err results.
func writeError(c *gin.Context, err error) {
	var trapErr *ledger.TrapError
	if errors.As(err, &trapErr) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, rejectResponse{
			RejectCode:    rejectCodeTrapped,
			RejectMessage: trapErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErr(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		writeErr(c, http.StatusForbidden, err.Error())
	default:
		_ = c.Error(err)
		writeErr(c, http.StatusInternalServerError, "internal error")
	}
}
