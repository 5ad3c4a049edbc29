package response

import (
	"go-hris-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// AppError writes err using the status, code and details it carries;
// anything else becomes a 500 without leaking the cause.
func AppError(c *gin.Context, err error) {
	e := apperror.ToHTTP(err)
	Error(c, e.Status, e.Code, e.Message, e.Details)
}

func ValidationError(c *gin.Context, err error) {
	AppError(c, apperror.MapValidationError(err))
}
