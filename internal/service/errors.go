package service

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrPageUnknown      = errors.New("page is not registered")
	ErrSectionNotFound  = errors.New("section not found")
	ErrUnknownType      = errors.New("unknown section type")
	ErrProductNotFound  = errors.New("product not found")
	ErrUploadTimeout    = errors.New("upload timed out")
	ErrInvalidCreds     = errors.New("invalid credentials")
)
