package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/repository/cache"
	"mk-orders/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	if statusCode >= http.StatusInternalServerError {
		logrus.WithField("path", c.FullPath()).Error(message)
	}
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// respondError writes err with the status and kind of its error class so
// clients can tell a locked order from a failed store.
func respondError(c *gin.Context, err error) {
	code, kind := classify(err)
	if code >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.AbortWithStatusJSON(code, errorResponse{Message: err.Error(), Kind: kind})
}

func classify(err error) (int, string) {
	var eh cache.ErrorHandler
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, lifecycle.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, lifecycle.ErrValidation), errors.Is(err, service.ErrDecode):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, lifecycle.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.As(err, &eh):
		return eh.StatusCode, ""
	default:
		return http.StatusInternalServerError, ""
	}
}
