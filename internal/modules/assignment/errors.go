package assignment

import "errors"

var (
	ErrGuideUnavailable = errors.New("guide unavailable for booking date range")
	ErrGuideInactive    = errors.New("guide is deactivated")
)
