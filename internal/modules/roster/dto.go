package roster

type CreateGuideRequest struct {
	Name      string   `json:"name" binding:"required" validate:"required"`
	Specialty string   `json:"specialty"`
	Languages []string `json:"languages"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
