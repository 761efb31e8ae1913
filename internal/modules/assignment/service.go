package assignment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tourdesk/internal/domain"
	"tourdesk/internal/modules/availability"
	"tourdesk/internal/store"
)

type Resolver interface {
	ForTarget(target domain.Booking) map[string]availability.Availability
}

// Service mutates the assignment relation between bookings and guides.
// Every mutation is optimistic: the session snapshot changes first, the
// platform store write follows, and a failed write restores the exact
// pre-operation booking.
type Service struct {
	session  *store.Session
	resolver Resolver
	platform AssignmentStore
	notifs   NotificationSender
	log      *logrus.Logger
}

func NewService(session *store.Session, resolver Resolver, platform AssignmentStore, notifs NotificationSender, log *logrus.Logger) *Service {
	return &Service{
		session:  session,
		resolver: resolver,
		platform: platform,
		notifs:   notifs,
		log:      log,
	}
}

// Toggle flips one guide's membership in the booking's assignment set.
// Removal is always permitted; addition requires the guide to be
// schedule-free and baseActive for the booking's date range.
func (s *Service) Toggle(ctx context.Context, bookingID, guideID string) ([]string, error) {
	b, ok := s.session.Booking(bookingID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	var next []string
	if b.HasGuide(guideID) {
		for _, id := range b.GuideIDs {
			if id != guideID {
				next = append(next, id)
			}
		}
		if next == nil {
			next = []string{}
		}
	} else {
		if _, ok := s.session.Guide(guideID); !ok {
			return nil, domain.ErrNotFound
		}
		if err := s.checkAvailable(b, guideID); err != nil {
			s.notifyRejected(ctx, bookingID, guideID, err)
			return nil, err
		}
		next = append(append([]string{}, b.GuideIDs...), guideID)
	}

	return s.apply(ctx, b, next)
}

// BulkAssign replaces the entire assignment set atomically. Every guide
// being added is checked the same way as the toggle path; one unavailable
// guide fails the whole operation with the set untouched.
func (s *Service) BulkAssign(ctx context.Context, bookingID string, guideIDs []string) ([]string, error) {
	b, ok := s.session.Booking(bookingID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := dedup(guideIDs)
	for _, gid := range next {
		if _, ok := s.session.Guide(gid); !ok {
			return nil, domain.ErrNotFound
		}
	}
	for _, gid := range next {
		if b.HasGuide(gid) {
			continue // already on the booking, no re-check on keep
		}
		if err := s.checkAvailable(b, gid); err != nil {
			s.notifyRejected(ctx, bookingID, gid, err)
			return nil, err
		}
	}

	return s.apply(ctx, b, next)
}

func (s *Service) checkAvailable(b domain.Booking, guideID string) error {
	result := s.resolver.ForTarget(b)
	av, ok := result[guideID]
	if !ok {
		return domain.ErrNotFound
	}
	if av.Available {
		return nil
	}
	if av.Reason == availability.ReasonInactive {
		return ErrGuideInactive
	}
	return ErrGuideUnavailable
}

func (s *Service) apply(ctx context.Context, prior domain.Booking, next []string) ([]string, error) {
	s.session.SetAssignedGuides(prior.ID, next)

	if err := s.platform.SetBookingAssignedGuides(ctx, prior.ID, next); err != nil {
		s.session.RestoreBooking(prior)
		s.log.WithFields(logrus.Fields{
			"booking_id": prior.ID,
			"error":      err,
		}).Warn("assignment write failed, local state rolled back")
		if s.notifs != nil {
			_ = s.notifs.NotifyOperationFailed(ctx, prior.ID, "NETWORK_ERROR", "Could not save assignment, change was undone")
		}
		return nil, fmt.Errorf("push assignment: %w", domain.ErrNetwork)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAssignmentChanged(ctx, prior.ID, next)
	}
	return next, nil
}

func (s *Service) notifyRejected(ctx context.Context, bookingID, guideID string, err error) {
	if s.notifs == nil {
		return
	}
	code := "GUIDE_UNAVAILABLE"
	if err == ErrGuideInactive {
		code = "GUIDE_INACTIVE"
	}
	_ = s.notifs.NotifyOperationFailed(ctx, bookingID, code, "Guide "+guideID+" cannot be assigned")
}

func dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
