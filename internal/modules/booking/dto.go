package booking

import (
	"time"

	"tourdesk/internal/domain"
)

type BookingView struct {
	ID        string     `json:"id"`
	Location  string     `json:"location"`
	GroupSize int        `json:"group_size"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	Status    string     `json:"status"`
	GuideIDs  []string   `json:"guide_ids"`
}

func toView(b domain.Booking) BookingView {
	ids := b.GuideIDs
	if ids == nil {
		ids = []string{}
	}
	return BookingView{
		ID:        b.ID,
		Location:  b.Location,
		GroupSize: b.GroupSize,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Status:    string(b.Status),
		GuideIDs:  ids,
	}
}

type TierView struct {
	Tier          string `json:"tier"`
	BookingLimit  int    `json:"booking_limit"`
	GuideLimit    int    `json:"guide_limit"`
	AcceptedCount int    `json:"accepted_count"`
}
