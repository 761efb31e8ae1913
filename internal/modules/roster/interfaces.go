package roster

import (
	"context"

	"tourdesk/internal/domain"
)

// GuideStore is the slice of the platform store the roster mutates.
type GuideStore interface {
	CreateGuide(ctx context.Context, agencyID string, g domain.Guide) (domain.Guide, error)
	DeleteGuide(ctx context.Context, guideID string) error
	SetGuideActive(ctx context.Context, guideID string, active bool) error
}

type NotificationSender interface {
	NotifyRosterChanged(ctx context.Context, guideID, change string) error
}
