package staking

import "errors"

var (
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyStaked  = errors.New("already_staked")
	ErrHeroNotFound   = errors.New("hero_not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)
