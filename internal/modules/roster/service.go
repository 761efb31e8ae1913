package roster

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/validator"
	"tourdesk/internal/store"
)

// Service manages the agency's guide roster. Remote writes go first: a
// guide only appears in (or disappears from) the session after the
// platform store confirmed the change, so there is nothing to roll back.
type Service struct {
	session  *store.Session
	platform GuideStore
	notifs   NotificationSender
	log      *logrus.Logger
}

func NewService(session *store.Session, platform GuideStore, notifs NotificationSender, log *logrus.Logger) *Service {
	return &Service{
		session:  session,
		platform: platform,
		notifs:   notifs,
		log:      log,
	}
}

func (s *Service) List() []domain.Guide {
	return s.session.Guides()
}

func (s *Service) Get(id string) (domain.Guide, error) {
	g, ok := s.session.Guide(id)
	if !ok {
		return domain.Guide{}, domain.ErrNotFound
	}
	return g, nil
}

func (s *Service) Create(ctx context.Context, req CreateGuideRequest) (domain.Guide, error) {
	if fields := validator.Validate(req); fields != nil {
		return domain.Guide{}, fmt.Errorf("%w: %v", ErrValidation, fields)
	}

	g := domain.Guide{
		Name:       req.Name,
		Specialty:  req.Specialty,
		Languages:  req.Languages,
		Email:      req.Email,
		Phone:      req.Phone,
		BaseActive: true,
	}

	created, err := s.platform.CreateGuide(ctx, s.session.AgencyID(), g)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("create guide: %w", err)
	}

	s.session.PutGuide(created)
	if s.notifs != nil {
		_ = s.notifs.NotifyRosterChanged(ctx, created.ID, "created")
	}
	return created, nil
}

// Delete removes the guide remotely, then drops it locally, stripping it
// from every booking's assignment set. The remote store refuses deletion
// of guides referenced by non-terminal bookings; that constraint is not
// re-checked here.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, ok := s.session.Guide(id); !ok {
		return domain.ErrNotFound
	}

	if err := s.platform.DeleteGuide(ctx, id); err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}

	s.session.DeleteGuide(id)
	if s.notifs != nil {
		_ = s.notifs.NotifyRosterChanged(ctx, id, "deleted")
	}
	return nil
}

// SetActive flips the agency-controlled on/off switch. Deactivation is
// not retroactive: guides already assigned stay assigned.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (domain.Guide, error) {
	g, ok := s.session.Guide(id)
	if !ok {
		return domain.Guide{}, domain.ErrNotFound
	}
	if g.BaseActive == active {
		return g, nil
	}

	if err := s.platform.SetGuideActive(ctx, id, active); err != nil {
		return domain.Guide{}, fmt.Errorf("set guide active: %w", err)
	}

	g.BaseActive = active
	s.session.PutGuide(g)
	s.log.WithFields(logrus.Fields{"guide_id": id, "active": active}).Info("guide active flag changed")
	return g, nil
}
