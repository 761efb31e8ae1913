package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"tourdesk/internal/domain"
)

// Service fans engine outcomes out to the agency's operator sessions. It
// satisfies each module's NotificationSender interface; delivery is best
// effort and never fails the triggering operation.
type Service struct {
	hub      *Hub
	agencyID string
	log      *logrus.Logger
}

func NewService(hub *Hub, agencyID string, log *logrus.Logger) *Service {
	return &Service{hub: hub, agencyID: agencyID, log: log}
}

func (s *Service) NotifyAssignmentChanged(_ context.Context, bookingID string, guideIDs []string) error {
	s.publish(Event{
		Type:      TypeAssignmentChanged,
		BookingID: bookingID,
		GuideIDs:  guideIDs,
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *Service) NotifyStatusChanged(_ context.Context, bookingID string, status domain.BookingStatus) error {
	s.publish(Event{
		Type:      TypeStatusChanged,
		BookingID: bookingID,
		Status:    string(status),
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *Service) NotifyRosterChanged(_ context.Context, guideID, change string) error {
	s.publish(Event{
		Type:    TypeRosterChanged,
		GuideID: guideID,
		Message: change,
		At:      time.Now().UTC(),
	})
	return nil
}

func (s *Service) NotifyOperationFailed(_ context.Context, bookingID, code, message string) error {
	s.publish(Event{
		Type:      TypeOperationFailed,
		Code:      code,
		BookingID: bookingID,
		Message:   message,
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *Service) publish(evt Event) {
	sent := s.hub.Broadcast(s.agencyID, evt)
	s.log.WithFields(logrus.Fields{
		"type":       evt.Type,
		"code":       evt.Code,
		"booking_id": evt.BookingID,
		"recipients": sent,
	}).Debug("notification published")
}
