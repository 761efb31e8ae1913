package booking

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tourdesk/internal/domain"
	"tourdesk/internal/store"
)

// Service owns status transitions over the booking ledger and the snapshot
// refresh from the platform store. Bookings are created tourist-side; this
// back-office only moves them through the accept/decline flow.
type Service struct {
	session   *store.Session
	admission AdmissionGuard
	platform  PlatformStore
	notifs    NotificationSender
	log       *logrus.Logger
}

func NewService(session *store.Session, admission AdmissionGuard, platform PlatformStore, notifs NotificationSender, log *logrus.Logger) *Service {
	return &Service{
		session:   session,
		admission: admission,
		platform:  platform,
		notifs:    notifs,
		log:       log,
	}
}

func (s *Service) List() []domain.Booking {
	return s.session.Bookings()
}

func (s *Service) Get(id string) (domain.Booking, error) {
	b, ok := s.session.Booking(id)
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

// Refresh re-pulls the whole agency snapshot. A failed pull leaves the
// previous snapshot untouched; the session is never half-replaced.
func (s *Service) Refresh(ctx context.Context) error {
	agencyID := s.session.AgencyID()

	guides, err := s.platform.ListGuides(ctx, agencyID)
	if err != nil {
		return fmt.Errorf("refresh guides: %w", err)
	}
	bookings, err := s.platform.ListBookings(ctx, agencyID)
	if err != nil {
		return fmt.Errorf("refresh bookings: %w", err)
	}
	tier, err := s.platform.GetTierConfig(ctx, agencyID)
	if err != nil {
		return fmt.Errorf("refresh tier config: %w", err)
	}

	s.session.Replace(guides, bookings, tier)
	s.log.WithFields(logrus.Fields{
		"agency_id": agencyID,
		"guides":    len(guides),
		"bookings":  len(bookings),
		"tier":      tier.Tier,
	}).Info("session snapshot refreshed")
	return nil
}

// Accept runs the guarded pending to accepted transition: the booking must
// carry at least one guide and the agency must have an admission slot.
// Both checks re-read live state at call time.
func (s *Service) Accept(ctx context.Context, id string) (domain.Booking, error) {
	b, ok := s.session.Booking(id)
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	if !canTransition(b.Status, domain.BookingAccepted) {
		return domain.Booking{}, ErrInvalidTransition
	}
	if len(b.GuideIDs) == 0 {
		s.notifyFailed(ctx, id, "GUIDE_REQUIRED", "Assign at least one guide before accepting")
		return domain.Booking{}, ErrGuideRequired
	}
	if !s.admission.CanAccept() {
		s.notifyFailed(ctx, id, "TIER_LIMIT_REACHED", "Free tier booking limit reached, upgrade to accept more")
		return domain.Booking{}, ErrTierLimitReached
	}

	return s.transition(ctx, b, domain.BookingAccepted)
}

// Decline is unconditional from pending.
func (s *Service) Decline(ctx context.Context, id string) (domain.Booking, error) {
	return s.guardedTransition(ctx, id, domain.BookingDeclined)
}

func (s *Service) Complete(ctx context.Context, id string) (domain.Booking, error) {
	return s.guardedTransition(ctx, id, domain.BookingCompleted)
}

func (s *Service) Cancel(ctx context.Context, id string) (domain.Booking, error) {
	return s.guardedTransition(ctx, id, domain.BookingCancelled)
}

func (s *Service) guardedTransition(ctx context.Context, id string, to domain.BookingStatus) (domain.Booking, error) {
	b, ok := s.session.Booking(id)
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	if !canTransition(b.Status, to) {
		return domain.Booking{}, ErrInvalidTransition
	}
	return s.transition(ctx, b, to)
}

// transition applies the status optimistically, pushes it, and restores
// the exact prior booking on a failed write. Status writes either complete
// remotely or are rolled back; they are never abandoned half-applied.
func (s *Service) transition(ctx context.Context, prior domain.Booking, to domain.BookingStatus) (domain.Booking, error) {
	s.session.SetBookingStatus(prior.ID, to)

	if err := s.platform.SetBookingStatus(ctx, prior.ID, to); err != nil {
		s.session.RestoreBooking(prior)
		s.log.WithFields(logrus.Fields{
			"booking_id": prior.ID,
			"from":       prior.Status,
			"to":         to,
			"error":      err,
		}).Warn("status write failed, local state rolled back")
		s.notifyFailed(ctx, prior.ID, "NETWORK_ERROR", "Could not save status, change was undone")
		return domain.Booking{}, fmt.Errorf("push status: %w", domain.ErrNetwork)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyStatusChanged(ctx, prior.ID, to)
	}

	b, _ := s.session.Booking(prior.ID)
	return b, nil
}

func (s *Service) notifyFailed(ctx context.Context, bookingID, code, message string) {
	if s.notifs != nil {
		_ = s.notifs.NotifyOperationFailed(ctx, bookingID, code, message)
	}
}
