package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPlan     = errors.New("invalid style plan")
	ErrProviderFailure = errors.New("provider failure")
)
