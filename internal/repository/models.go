package repository

import (
	"encoding/json"
	"time"
)

type guideModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	AgencyID   string    `gorm:"column:agency_id;index"`
	Name       string    `gorm:"column:name"`
	Specialty  string    `gorm:"column:specialty"`
	Languages  string    `gorm:"column:languages;type:text"`
	Email      string    `gorm:"column:email"`
	Phone      string    `gorm:"column:phone"`
	BaseActive bool      `gorm:"column:base_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (guideModel) TableName() string { return "guides" }

type bookingModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	AgencyID  string     `gorm:"column:agency_id;index"`
	Location  string     `gorm:"column:location"`
	GroupSize int        `gorm:"column:group_size"`
	CheckIn   *time.Time `gorm:"column:check_in"`
	CheckOut  *time.Time `gorm:"column:check_out"`
	Status    string     `gorm:"column:status"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// One row per assigned guide; the unique index backs the no-duplicate
// invariant on the assignment relation.
type bookingGuideModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	BookingID string `gorm:"column:booking_id;uniqueIndex:idx_booking_guide"`
	GuideID   string `gorm:"column:guide_id;uniqueIndex:idx_booking_guide"`
}

func (bookingGuideModel) TableName() string { return "booking_guides" }

type tierModel struct {
	AgencyID     string    `gorm:"column:agency_id;primaryKey"`
	Tier         string    `gorm:"column:tier"`
	BookingLimit int       `gorm:"column:booking_limit"`
	GuideLimit   int       `gorm:"column:guide_limit"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (tierModel) TableName() string { return "agency_tiers" }

func encodeLanguages(langs []string) string {
	if len(langs) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(langs)
	return string(data)
}

func decodeLanguages(raw string) []string {
	if raw == "" {
		return nil
	}
	var langs []string
	if err := json.Unmarshal([]byte(raw), &langs); err != nil {
		return nil
	}
	return langs
}
