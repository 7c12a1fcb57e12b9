package cache

import "fmt"

// ErrorHandler carries the HTTP status a cache failure should surface as.
type ErrorHandler struct {
	Err        error
	StatusCode int
}

func NewErrorHandler(err error, status int) ErrorHandler {
	return ErrorHandler{Err: err, StatusCode: status}
}

func (e ErrorHandler) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cache error (status %d)", e.StatusCode)
	}
	return e.Err.Error()
}

func (e ErrorHandler) Unwrap() error { return e.Err }
