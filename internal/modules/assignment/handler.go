package assignment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/guides/:guideId", h.Toggle)
	rg.PUT("/bookings/:id/guides", h.BulkAssign)
}

func (h *Handler) Toggle(c *gin.Context) {
	set, err := h.service.Toggle(c.Request.Context(), c.Param("id"), c.Param("guideId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guide_ids": set})
}

func (h *Handler) BulkAssign(c *gin.Context) {
	var req BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	set, err := h.service.BulkAssign(c.Request.Context(), c.Param("id"), req.GuideIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guide_ids": set})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or guide not found")
	case errors.Is(err, ErrGuideUnavailable):
		response.Error(c, http.StatusConflict, "GUIDE_UNAVAILABLE", "Guide is already booked for an overlapping reservation")
	case errors.Is(err, ErrGuideInactive):
		response.Error(c, http.StatusConflict, "GUIDE_INACTIVE", "Guide is deactivated")
	case errors.Is(err, domain.ErrNetwork):
		response.Error(c, http.StatusBadGateway, "NETWORK_ERROR", "Could not reach the platform store, change was undone")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update assignment")
	}
}
