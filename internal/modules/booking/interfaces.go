package booking

import (
	"context"

	"tourdesk/internal/domain"
)

// PlatformStore is the slice of the remote store the ledger needs: status
// pushes plus everything a full snapshot refresh pulls.
type PlatformStore interface {
	SetBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error
	ListGuides(ctx context.Context, agencyID string) ([]domain.Guide, error)
	ListBookings(ctx context.Context, agencyID string) ([]domain.Booking, error)
	GetTierConfig(ctx context.Context, agencyID string) (domain.TierConfig, error)
}

// AdmissionGuard gates the pending to accepted transition.
type AdmissionGuard interface {
	CanAccept() bool
	AcceptedCount() int
}

type NotificationSender interface {
	NotifyStatusChanged(ctx context.Context, bookingID string, status domain.BookingStatus) error
	NotifyOperationFailed(ctx context.Context, bookingID, code, message string) error
}
