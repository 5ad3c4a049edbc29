package leavebalance

import (
	"net/http"

	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ledger Ledger
}

func NewHandler(ledger Ledger) *Handler {
	return &Handler{ledger: ledger}
}

func (h *Handler) GetMine(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	resp, err := h.ledger.MyBalance(c.Request.Context(), id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
