package payroll

import (
	"net/http"
	"strconv"

	"go-hris-payroll/internal/middleware"
	payrollerrors "go-hris-payroll/internal/payroll/errors"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("payroll operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Preview(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Confirm(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	rows, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, rows)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) PeriodItems(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	year, yearErr := strconv.Atoi(c.Param("year"))
	month, monthErr := strconv.Atoi(c.Param("month"))
	if yearErr != nil || monthErr != nil {
		response.AppError(c, payrollerrors.ErrInvalidPeriod)
		return
	}

	rows, err := h.service.PeriodItems(c.Request.Context(), id, year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}
