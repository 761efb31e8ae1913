package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/response"
	"tourdesk/internal/store"
)

type Handler struct {
	service *Service
	session *store.Session
}

func NewHandler(service *Service, session *store.Session) *Handler {
	return &Handler{service: service, session: session}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.POST("/bookings/refresh", h.Refresh)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/accept", h.Accept)
	rg.POST("/bookings/:id/decline", h.Decline)
	rg.POST("/bookings/:id/complete", h.Complete)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.GET("/tier", h.Tier)
}

func (h *Handler) List(c *gin.Context) {
	bookings := h.service.List()
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toView(b))
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toView(b)})
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		response.Error(c, http.StatusBadGateway, "NETWORK_ERROR", "Could not refresh from the platform store")
		return
	}
	h.List(c)
}

func (h *Handler) Tier(c *gin.Context) {
	tier := h.session.Tier()
	response.Success(c, http.StatusOK, gin.H{"tier": TierView{
		Tier:          string(tier.Tier),
		BookingLimit:  tier.BookingLimit,
		GuideLimit:    tier.GuideLimit,
		AcceptedCount: h.service.admission.AcceptedCount(),
	}})
}

func (h *Handler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

func (h *Handler) Decline(c *gin.Context) {
	h.transition(c, h.service.Decline)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id string) (domain.Booking, error)) {
	b, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toView(b)})
}

func writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrGuideRequired):
		response.Error(c, http.StatusUnprocessableEntity, "GUIDE_REQUIRED", "Assign at least one guide before accepting")
	case errors.Is(err, ErrTierLimitReached):
		response.Error(c, http.StatusForbidden, "TIER_LIMIT_REACHED", "Free tier booking limit reached, upgrade to accept more")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking status does not allow this transition")
	case errors.Is(err, domain.ErrNetwork):
		response.Error(c, http.StatusBadGateway, "NETWORK_ERROR", "Could not save status, change was undone")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
	}
}
