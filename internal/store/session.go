package store

import (
	"sort"
	"sync"

	"tourdesk/internal/domain"
)

// Session is the agency's in-memory view of its roster, ledger and tier
// config, rehydrated from the platform store on each refresh. All mutation
// goes through the engine services; handlers only read. The mutex is there
// because the HTTP handlers and the websocket hub share one Session, not
// because engine operations interleave. Within a session they are
// serialized by the request flow.
type Session struct {
	mu       sync.RWMutex
	agencyID string
	guides   map[string]domain.Guide
	bookings map[string]domain.Booking
	tier     domain.TierConfig
}

func NewSession(agencyID string) *Session {
	return &Session{
		agencyID: agencyID,
		guides:   make(map[string]domain.Guide),
		bookings: make(map[string]domain.Booking),
		tier:     domain.DefaultTierConfig(),
	}
}

func (s *Session) AgencyID() string { return s.agencyID }

// Replace swaps in a freshly fetched snapshot wholesale. The previous
// snapshot stays intact if the caller never gets here (failed refresh).
func (s *Session) Replace(guides []domain.Guide, bookings []domain.Booking, tier domain.TierConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.guides = make(map[string]domain.Guide, len(guides))
	for _, g := range guides {
		s.guides[g.ID] = g
	}
	s.bookings = make(map[string]domain.Booking, len(bookings))
	for _, b := range bookings {
		s.bookings[b.ID] = b.Clone()
	}
	s.tier = tier
}

func (s *Session) Tier() domain.TierConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tier
}

func (s *Session) Guide(id string) (domain.Guide, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guides[id]
	return g, ok
}

func (s *Session) Guides() []domain.Guide {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Guide, 0, len(s.guides))
	for _, g := range s.guides {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Session) Booking(id string) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, false
	}
	return b.Clone(), true
}

func (s *Session) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Session) PutGuide(g domain.Guide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guides[g.ID] = g
}

// DeleteGuide drops the guide and strips it from every booking's
// assignment set; the remote store owns the referential constraint, the
// local view just has to stop pointing at a guide that no longer exists.
func (s *Session) DeleteGuide(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.guides, id)
	for bid, b := range s.bookings {
		kept := b.GuideIDs[:0]
		for _, gid := range b.GuideIDs {
			if gid != id {
				kept = append(kept, gid)
			}
		}
		b.GuideIDs = kept
		s.bookings[bid] = b
	}
}

func (s *Session) SetBookingStatus(id string, status domain.BookingStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return false
	}
	b.Status = status
	s.bookings[id] = b
	return true
}

func (s *Session) SetAssignedGuides(id string, guideIDs []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return false
	}
	b.GuideIDs = append([]string(nil), guideIDs...)
	s.bookings[id] = b
	return true
}

// RestoreBooking puts back a snapshot taken before an optimistic mutation.
// Restoring the whole record, not re-toggling the change, keeps repeated
// failed writes idempotent.
func (s *Session) RestoreBooking(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b.Clone()
}
