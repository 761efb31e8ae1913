package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourdesk/internal/domain"
	"tourdesk/internal/store"
)

func sessionWith(tier domain.TierConfig, statuses ...domain.BookingStatus) *store.Session {
	session := store.NewSession("agency-1")
	bookings := make([]domain.Booking, 0, len(statuses))
	for i, st := range statuses {
		bookings = append(bookings, domain.Booking{ID: string(rune('a' + i)), Status: st})
	}
	session.Replace(nil, bookings, tier)
	return session
}

func TestCanAccept_FreeTierUnderLimit(t *testing.T) {
	session := sessionWith(
		domain.TierConfig{Tier: domain.TierFree, BookingLimit: 2},
		domain.BookingAccepted, domain.BookingPending,
	)

	guard := NewGuard(session)
	assert.Equal(t, 1, guard.AcceptedCount())
	assert.True(t, guard.CanAccept())
}

func TestCanAccept_FreeTierAtLimit(t *testing.T) {
	session := sessionWith(
		domain.TierConfig{Tier: domain.TierFree, BookingLimit: 1},
		domain.BookingAccepted, domain.BookingPending,
	)

	guard := NewGuard(session)
	assert.False(t, guard.CanAccept())
}

func TestCanAccept_CompletedCountsTowardCeiling(t *testing.T) {
	session := sessionWith(
		domain.TierConfig{Tier: domain.TierFree, BookingLimit: 2},
		domain.BookingAccepted, domain.BookingCompleted,
	)

	guard := NewGuard(session)
	assert.Equal(t, 2, guard.AcceptedCount())
	assert.False(t, guard.CanAccept())
}

func TestCanAccept_DeclinedAndCancelledDoNotCount(t *testing.T) {
	session := sessionWith(
		domain.TierConfig{Tier: domain.TierFree, BookingLimit: 1},
		domain.BookingDeclined, domain.BookingCancelled, domain.BookingRefunded,
	)

	guard := NewGuard(session)
	assert.Equal(t, 0, guard.AcceptedCount())
	assert.True(t, guard.CanAccept())
}

func TestCanAccept_PaidTierHasNoCeiling(t *testing.T) {
	session := sessionWith(
		domain.TierConfig{Tier: domain.TierPaid, BookingLimit: 1},
		domain.BookingAccepted, domain.BookingAccepted, domain.BookingAccepted,
	)

	guard := NewGuard(session)
	assert.True(t, guard.CanAccept())
}

// The guard reads live ledger state on every call rather than caching:
// a booking accepted after the first check must affect the second.
func TestCanAccept_ReevaluatedAfterLedgerChange(t *testing.T) {
	session := sessionWith(
		domain.TierConfig{Tier: domain.TierFree, BookingLimit: 1},
		domain.BookingPending,
	)

	guard := NewGuard(session)
	assert.True(t, guard.CanAccept())

	session.SetBookingStatus("a", domain.BookingAccepted)
	assert.False(t, guard.CanAccept())
}
