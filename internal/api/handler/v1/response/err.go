package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
	Field      string `json:"field,omitempty"`
	Tables     []int  `json:"tables,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

// RenderErr writes err as the JSON body and aborts the chain. Server errors
// are logged with their full cause and rendered without it.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err))
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Bad request",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err *domain.ValidationError) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Validation failed",
		ErrorText:      err.Error(),
		Field:          err.Field,
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthorized",
		ErrorText:      err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     "Permission denied",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(entity, key string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found",
		ErrorText:      fmt.Sprintf("%s with %s %v not found", entity, key, value),
	}
}

func ErrConflict(err *domain.ConflictError) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict",
		ErrorText:      err.Error(),
		Tables:         err.Tables,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error",
	}
}

// FromDomain maps a service error onto its HTTP rendering. Anything that is
// not a known domain error becomes a 500 carrying err.
func FromDomain(err error) *Err {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return ErrValidation(validation)
	case errors.As(err, &conflict):
		return ErrConflict(conflict)
	case errors.Is(err, domain.ErrForbidden):
		return ErrPermissionDenied(domain.ErrForbidden)
	case errors.Is(err, domain.ErrNotFound):
		return &Err{
			Err:            err,
			HTTPStatusCode: http.StatusNotFound,
			StatusText:     "Resource not found",
			ErrorText:      notFoundText(err),
		}
	default:
		return ErrInternalServerError(err)
	}
}

// notFoundText keeps only the innermost "<entity> not found" message so
// internal call chains stay out of responses.
func notFoundText(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil || next == domain.ErrNotFound {
			return err.Error()
		}
		err = next
	}
}
