package service

import (
	"errors"

	"mk-orders/internal/lifecycle"
)

var ErrNotFound = lifecycle.ErrNotFound

var (
	ErrDecode     = errors.New("decode")
	ErrValidation = lifecycle.ErrValidation
)
