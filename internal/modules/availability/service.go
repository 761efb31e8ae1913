package availability

import (
	"tourdesk/internal/domain"
	"tourdesk/internal/store"
)

type Reason string

const (
	ReasonActive   Reason = "active"
	ReasonBooked   Reason = "booked"
	ReasonInactive Reason = "inactive"
)

type Availability struct {
	Available bool   `json:"available"`
	Reason    Reason `json:"reason"`
}

// Compute resolves, for every guide on the roster, whether it can be
// assigned to target for target's date range.
//
// A booking with no date range imposes no schedule constraint, so every
// baseActive guide is reported available. Otherwise any other booking in a
// blocking status whose inclusive range overlaps target's marks its
// assigned guides busy. Recomputed on every call; the ledger is bounded by
// a single agency's data and correctness beats caching here.
func Compute(guides []domain.Guide, bookings []domain.Booking, target domain.Booking) map[string]Availability {
	busy := make(map[string]bool)
	if target.HasDates() {
		for _, b := range bookings {
			if b.ID == target.ID {
				continue
			}
			if !b.Status.Blocks() {
				continue
			}
			if !target.Overlaps(b) {
				continue
			}
			for _, gid := range b.GuideIDs {
				busy[gid] = true
			}
		}
	}

	out := make(map[string]Availability, len(guides))
	for _, g := range guides {
		switch {
		case busy[g.ID]:
			out[g.ID] = Availability{Available: false, Reason: ReasonBooked}
		case !g.BaseActive:
			out[g.ID] = Availability{Available: false, Reason: ReasonInactive}
		default:
			out[g.ID] = Availability{Available: true, Reason: ReasonActive}
		}
	}
	return out
}

type Service struct {
	session *store.Session
}

func NewService(session *store.Session) *Service {
	return &Service{session: session}
}

// ForBooking resolves availability for a booking already in the ledger.
func (s *Service) ForBooking(bookingID string) (map[string]Availability, error) {
	target, ok := s.session.Booking(bookingID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return Compute(s.session.Guides(), s.session.Bookings(), target), nil
}

// ForTarget resolves availability against an arbitrary target booking,
// used by the coordinator before it mutates anything.
func (s *Service) ForTarget(target domain.Booking) map[string]Availability {
	return Compute(s.session.Guides(), s.session.Bookings(), target)
}
