package application

import "errors"

var (
	ErrValidation = errors.New("validation error")
)
