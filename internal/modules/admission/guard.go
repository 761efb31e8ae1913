package admission

import (
	"tourdesk/internal/domain"
	"tourdesk/internal/store"
)

// Guard enforces the free-tier ceiling on concurrently accepted bookings.
// It is re-evaluated against the live ledger at the moment of each
// transition; nothing is cached, since other bookings may have changed
// state between render and click.
type Guard struct {
	session *store.Session
}

func NewGuard(session *store.Session) *Guard {
	return &Guard{session: session}
}

// AcceptedCount counts bookings holding an admission slot. Completed
// bookings were accepted and stay counted.
func (g *Guard) AcceptedCount() int {
	n := 0
	for _, b := range g.session.Bookings() {
		if b.Status.CountsAccepted() {
			n++
		}
	}
	return n
}

func (g *Guard) CanAccept() bool {
	tier := g.session.Tier()
	if tier.Tier == domain.TierPaid {
		return true
	}
	return g.AcceptedCount() < tier.BookingLimit
}
