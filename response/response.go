package response

import (
	"errors"
	"net/http"

	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Success returns 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// SuccessWithPagination returns 200 with a page of data
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// ServerError returns 500
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
	})
}

// Unauthorized returns 401
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Unauthorized",
	})
}

// Forbidden returns 403
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Forbidden",
	})
}

// NotFound returns 404 with message
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: message,
	})
}

// BadRequest returns 400 with message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError maps an error to a status code and message
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotificationNotFound), appErr.Code == apperrors.ErrCodeDBNotFound:
		NotFound(c, appErr.Message)
	case appErr.Code == apperrors.ErrCodeValidation,
		appErr.Code == apperrors.ErrCodeRequiredField,
		appErr.Code == apperrors.ErrCodeInvalidFormat,
		appErr.Code == apperrors.ErrCodeInvalidID,
		appErr.Code == apperrors.ErrCodeInvalidSchedule:
		BadRequest(c, appErr.Message)
	case appErr.Code == apperrors.ErrCodeUnauthorized,
		appErr.Code == apperrors.ErrCodeInvalidToken,
		appErr.Code == apperrors.ErrCodeMissingToken:
		Unauthorized(c)
	case appErr.Code == apperrors.ErrCodeForbidden:
		Forbidden(c)
	default:
		c.JSON(http.StatusInternalServerError, Response{
			Code: 0,
			Mess: appErr.Message,
		})
	}
}
