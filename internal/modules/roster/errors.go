package roster

import "errors"

var ErrValidation = errors.New("validation error")
