package attendance

import (
	"net/http"

	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Status(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	resp, err := h.service.Status(c.Request.Context(), id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}

	rows, err := h.service.History(c.Request.Context(), id, q.Month, q.Year)
	if err != nil {
		response.AppError(c, err)
		return
	}

	page, meta := response.Paginate(c, rows)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) Summary(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}
	employeeID := q.EmployeeID
	if employeeID == "" {
		employeeID = id.EmployeeID
	}

	days, err := h.service.AttendedDayCount(c.Request.Context(), id, employeeID, q.Month, q.Year)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SummaryResponse{
		EmployeeID:   employeeID,
		Month:        q.Month,
		Year:         q.Year,
		AttendedDays: days,
	}, nil)
}
