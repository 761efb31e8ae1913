package booking

import "errors"

var (
	ErrGuideRequired     = errors.New("booking has no assigned guide")
	ErrTierLimitReached  = errors.New("free tier booking limit reached")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
