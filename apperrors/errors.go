package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateVIN = errors.New("vin already registered")
	ErrValidation   = errors.New("validation failed")
	ErrBadExtension = errors.New("file extension not allowed")
	ErrUnsafeName   = errors.New("unsafe filename")
)
