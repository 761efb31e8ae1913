package domain

type TierLevel string

const (
	TierFree TierLevel = "free"
	TierPaid TierLevel = "paid"
)

// TierConfig is loaded once per session from the platform store. The paid
// tier removes the accepted-bookings ceiling entirely; GuideLimit is
// informational and not enforced here.
type TierConfig struct {
	Tier         TierLevel `json:"tier"`
	BookingLimit int       `json:"booking_limit"`
	GuideLimit   int       `json:"guide_limit"`
}

func DefaultTierConfig() TierConfig {
	return TierConfig{Tier: TierFree, BookingLimit: 3, GuideLimit: 5}
}
