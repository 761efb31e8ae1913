package assignment

import "context"

// AssignmentStore is the slice of the platform store the coordinator pushes
// through. Both the HTTP client and the gorm repositories satisfy it.
type AssignmentStore interface {
	SetBookingAssignedGuides(ctx context.Context, bookingID string, guideIDs []string) error
}

type NotificationSender interface {
	NotifyAssignmentChanged(ctx context.Context, bookingID string, guideIDs []string) error
	NotifyOperationFailed(ctx context.Context, bookingID, code, message string) error
}
