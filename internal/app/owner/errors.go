package owner

import "errors"

var (
	ErrInvalidOwner  = errors.New("invalid_owner")
	ErrInvalidFilter = errors.New("invalid_filter")
)
