package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"

	// Payment subsystem states. The engine never enters or leaves them,
	// but accepts them as-is when the ledger is refreshed.
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingRefunded       BookingStatus = "refunded"
)

// Blocks reports whether a booking in this status occupies its assigned
// guides' schedules. Declined, cancelled and payment-limbo bookings do not.
func (s BookingStatus) Blocks() bool {
	switch s {
	case BookingCancelled, BookingDeclined, BookingRefunded, BookingPendingPayment:
		return false
	}
	return true
}

// CountsAccepted reports whether the booking counts toward the free-tier
// ceiling. Completed bookings were accepted and stay counted.
func (s BookingStatus) CountsAccepted() bool {
	return s == BookingAccepted || s == BookingCompleted
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingDeclined, BookingCompleted,
		BookingCancelled, BookingPendingPayment, BookingRefunded:
		return true
	}
	return false
}

type Booking struct {
	ID        string        `json:"id"`
	AgencyID  string        `json:"agency_id"`
	Location  string        `json:"location"`
	GroupSize int           `json:"group_size"`
	CheckIn   *time.Time    `json:"check_in,omitempty"`
	CheckOut  *time.Time    `json:"check_out,omitempty"`
	Status    BookingStatus `json:"status"`
	GuideIDs  []string      `json:"guide_ids"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// HasDates reports whether the booking carries a date range the resolver
// can evaluate. Bookings without one impose no schedule constraint.
func (b Booking) HasDates() bool {
	return b.CheckIn != nil && b.CheckOut != nil
}

// Overlaps tests the inclusive date-range overlap rule. Bookings missing
// either end of their range never overlap anything.
func (b Booking) Overlaps(other Booking) bool {
	if !b.HasDates() || !other.HasDates() {
		return false
	}
	return !b.CheckIn.After(*other.CheckOut) && !b.CheckOut.Before(*other.CheckIn)
}

func (b Booking) HasGuide(guideID string) bool {
	for _, id := range b.GuideIDs {
		if id == guideID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, safe to hold as a rollback snapshot while the
// live booking is mutated.
func (b Booking) Clone() Booking {
	c := b
	if b.CheckIn != nil {
		v := *b.CheckIn
		c.CheckIn = &v
	}
	if b.CheckOut != nil {
		v := *b.CheckOut
		c.CheckOut = &v
	}
	c.GuideIDs = append([]string(nil), b.GuideIDs...)
	return c
}
