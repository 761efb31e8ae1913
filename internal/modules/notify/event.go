package notify

import "time"

// Event is what the operator UI's toast/alert layer consumes. Code is one
// of the stable reason codes also used by the HTTP error envelope.
type Event struct {
	Type      string    `json:"type"`
	Code      string    `json:"code,omitempty"`
	BookingID string    `json:"booking_id,omitempty"`
	GuideID   string    `json:"guide_id,omitempty"`
	GuideIDs  []string  `json:"guide_ids,omitempty"`
	Status    string    `json:"status,omitempty"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

const (
	TypeAssignmentChanged = "assignment.changed"
	TypeStatusChanged     = "booking.status_changed"
	TypeRosterChanged     = "roster.changed"
	TypeOperationFailed   = "operation.failed"
)
