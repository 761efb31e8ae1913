package domain

import "time"

type Guide struct {
	ID         string    `json:"id"`
	AgencyID   string    `json:"agency_id"`
	Name       string    `json:"name" validate:"required"`
	Specialty  string    `json:"specialty"`
	Languages  []string  `json:"languages"`
	Email      string    `json:"email" validate:"omitempty,email"`
	Phone      string    `json:"phone"`
	BaseActive bool      `json:"base_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
