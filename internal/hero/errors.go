package hero

import "errors"

var ErrInvalidConfiguration = errors.New("invalid_configuration")
