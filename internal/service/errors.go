package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnknownMunicipality = errors.New("unknown municipality")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotInaugurated      = errors.New("request is not inaugurated")
	ErrAlreadyPromoted     = errors.New("request already promoted")
)
