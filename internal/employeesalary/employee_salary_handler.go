package employeesalary

import (
	"net/http"

	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upsert(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req UpsertSalaryProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByEmployee(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
