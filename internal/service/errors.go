package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInactiveAccount    = errors.New("inactive account")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrImageUpload        = errors.New("error uploading image")
	ErrImageDelete        = errors.New("error deleting image")
	ErrSearchDisabled     = errors.New("search is disabled")
)
