package booking

import "tourdesk/internal/domain"

// Legal status transitions owned by this engine. Payment states are
// pass-through: the ledger accepts them on refresh but no local operation
// enters or leaves them. Declined, completed and cancelled are terminal.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:  {domain.BookingAccepted, domain.BookingDeclined, domain.BookingCancelled},
	domain.BookingAccepted: {domain.BookingCompleted, domain.BookingCancelled},
}

func canTransition(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
