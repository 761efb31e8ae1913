package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourdesk/internal/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBookingAccessorsReturnCopies(t *testing.T) {
	s := NewSession("agency-1")
	s.Replace(nil, []domain.Booking{
		{ID: "b1", Status: domain.BookingPending, GuideIDs: []string{"g1"}},
	}, domain.DefaultTierConfig())

	b, _ := s.Booking("b1")
	b.GuideIDs[0] = "mutated"
	b.Status = domain.BookingCancelled

	fresh, _ := s.Booking("b1")
	assert.Equal(t, []string{"g1"}, fresh.GuideIDs)
	assert.Equal(t, domain.BookingPending, fresh.Status)
}

func TestRestoreBookingUndoesMutations(t *testing.T) {
	s := NewSession("agency-1")
	s.Replace(nil, []domain.Booking{
		{ID: "b1", Status: domain.BookingPending, GuideIDs: []string{"g1"}},
	}, domain.DefaultTierConfig())

	snapshot, _ := s.Booking("b1")

	s.SetBookingStatus("b1", domain.BookingAccepted)
	s.SetAssignedGuides("b1", []string{"g1", "g2"})

	s.RestoreBooking(snapshot)

	got, _ := s.Booking("b1")
	assert.Equal(t, domain.BookingPending, got.Status)
	assert.Equal(t, []string{"g1"}, got.GuideIDs)
}

func TestDeleteGuideStripsAssignments(t *testing.T) {
	s := NewSession("agency-1")
	s.Replace(
		[]domain.Guide{{ID: "g1"}, {ID: "g2"}},
		[]domain.Booking{
			{ID: "b1", Status: domain.BookingAccepted, GuideIDs: []string{"g1", "g2"}},
			{ID: "b2", Status: domain.BookingPending, GuideIDs: []string{"g1"}},
		},
		domain.DefaultTierConfig(),
	)

	s.DeleteGuide("g1")

	_, ok := s.Guide("g1")
	assert.False(t, ok)
	b1, _ := s.Booking("b1")
	assert.Equal(t, []string{"g2"}, b1.GuideIDs)
	b2, _ := s.Booking("b2")
	assert.Empty(t, b2.GuideIDs)
}

func TestSetOnUnknownBookingReportsFalse(t *testing.T) {
	s := NewSession("agency-1")

	assert.False(t, s.SetBookingStatus("nope", domain.BookingAccepted))
	assert.False(t, s.SetAssignedGuides("nope", []string{"g1"}))
}

func TestGuidesSortedByName(t *testing.T) {
	s := NewSession("agency-1")
	s.Replace([]domain.Guide{
		{ID: "g1", Name: "Zara"},
		{ID: "g2", Name: "Anna"},
	}, nil, domain.DefaultTierConfig())

	guides := s.Guides()
	assert.Equal(t, "Anna", guides[0].Name)
	assert.Equal(t, "Zara", guides[1].Name)
}

func TestBookingsSortedByCreation(t *testing.T) {
	now := time.Now()
	s := NewSession("agency-1")
	s.Replace(nil, []domain.Booking{
		{ID: "b2", CreatedAt: now.Add(time.Hour)},
		{ID: "b1", CreatedAt: now},
	}, domain.DefaultTierConfig())

	bookings := s.Bookings()
	assert.Equal(t, "b1", bookings[0].ID)
	assert.Equal(t, "b2", bookings[1].ID)
}

func TestReplaceSwapsWholeSnapshot(t *testing.T) {
	s := NewSession("agency-1")
	s.Replace(
		[]domain.Guide{{ID: "g1"}},
		[]domain.Booking{{ID: "b1", CheckIn: date(2025, 1, 1), CheckOut: date(2025, 1, 2)}},
		domain.TierConfig{Tier: domain.TierFree, BookingLimit: 1},
	)
	s.Replace(
		[]domain.Guide{{ID: "g2"}},
		[]domain.Booking{{ID: "b2"}},
		domain.TierConfig{Tier: domain.TierPaid},
	)

	_, ok := s.Guide("g1")
	assert.False(t, ok)
	_, ok = s.Booking("b1")
	assert.False(t, ok)
	_, ok = s.Booking("b2")
	assert.True(t, ok)
	assert.Equal(t, domain.TierPaid, s.Tier().Tier)
}
