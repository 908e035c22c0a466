package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weekboard/pkg/apperr"
)

// Response is the unified API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Pagination carries list metadata.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData wraps a paginated list.
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// OK writes a 200 success response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// Created writes a 201 success response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// OKPage writes a 200 paginated response.
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data: PageData{
			List: list,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Business error codes, one per error kind.
const (
	CodeValidation     = 10001
	CodeAuthentication = 10002
	CodeAuthorization  = 10003
	CodeNotFound       = 10004
	CodeConflict       = 10005
	CodeRateLimited    = 10006
	CodeInternal       = 50000
)

// Error writes an arbitrary error response.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{Code: code, Message: message})
}

// Invalid writes a 422 validation failure.
func Invalid(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, CodeValidation, message)
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeAuthentication, message)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeAuthorization, message)
}

// InternalError writes a 500.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}

// AppError maps a service-layer error onto the envelope using the
// apperr taxonomy. Unclassified errors become 500 without leaking the
// underlying message.
func AppError(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		InternalError(c)
		return
	}

	var code int
	switch apperr.KindOf(err) {
	case apperr.KindAuthentication:
		code = CodeAuthentication
	case apperr.KindAuthorization:
		code = CodeAuthorization
	case apperr.KindValidation:
		code = CodeValidation
	case apperr.KindNotFound:
		code = CodeNotFound
	case apperr.KindConflict:
		code = CodeConflict
	default:
		code = CodeInternal
	}

	Error(c, status, code, apperr.MessageOf(err))
}
