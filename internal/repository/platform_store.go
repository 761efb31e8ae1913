package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tourdesk/internal/domain"
)

// PlatformStore is the standalone-mode implementation of the platform
// store operations, backed directly by the database instead of the core
// API. Used for local development, the seed command and tests.
type PlatformStore struct {
	db *gorm.DB
}

func NewPlatformStore(db *gorm.DB) *PlatformStore {
	return &PlatformStore{db: db}
}

func (s *PlatformStore) Migrate() error {
	return s.db.AutoMigrate(
		&guideModel{},
		&bookingModel{},
		&bookingGuideModel{},
		&tierModel{},
	)
}

func (s *PlatformStore) ListGuides(ctx context.Context, agencyID string) ([]domain.Guide, error) {
	var rows []guideModel
	if err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}

	out := make([]domain.Guide, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainGuide(m))
	}
	return out, nil
}

func (s *PlatformStore) ListBookings(ctx context.Context, agencyID string) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		b := toDomainBooking(m)

		var joins []bookingGuideModel
		if err := s.db.WithContext(ctx).
			Where("booking_id = ?", m.ID).
			Find(&joins).Error; err != nil {
			return nil, fmt.Errorf("list booking guides: %w", err)
		}
		for _, j := range joins {
			b.GuideIDs = append(b.GuideIDs, j.GuideID)
		}

		out = append(out, b)
	}
	return out, nil
}

func (s *PlatformStore) GetTierConfig(ctx context.Context, agencyID string) (domain.TierConfig, error) {
	var m tierModel
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Agencies without a tier row run on free defaults.
		return domain.DefaultTierConfig(), nil
	}
	if err != nil {
		return domain.TierConfig{}, fmt.Errorf("get tier config: %w", err)
	}

	return domain.TierConfig{
		Tier:         domain.TierLevel(m.Tier),
		BookingLimit: m.BookingLimit,
		GuideLimit:   m.GuideLimit,
	}, nil
}

func (s *PlatformStore) SetBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	res := s.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("set booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PlatformStore) SetBookingAssignedGuides(ctx context.Context, bookingID string, guideIDs []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&bookingModel{}).Where("id = ?", bookingID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("booking_id = ?", bookingID).Delete(&bookingGuideModel{}).Error; err != nil {
			return err
		}
		for _, gid := range guideIDs {
			if err := tx.Create(&bookingGuideModel{BookingID: bookingID, GuideID: gid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("duplicate assignment for booking %s: %w", bookingID, err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set assigned guides: %w", err)
	}
	return nil
}

func (s *PlatformStore) CreateGuide(ctx context.Context, agencyID string, g domain.Guide) (domain.Guide, error) {
	now := time.Now()
	m := guideModel{
		ID:         uuid.NewString(),
		AgencyID:   agencyID,
		Name:       g.Name,
		Specialty:  g.Specialty,
		Languages:  encodeLanguages(g.Languages),
		Email:      g.Email,
		Phone:      g.Phone,
		BaseActive: g.BaseActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Guide{}, fmt.Errorf("create guide: %w", err)
	}
	return toDomainGuide(m), nil
}

func (s *PlatformStore) DeleteGuide(ctx context.Context, guideID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", guideID).Delete(&bookingGuideModel{}).Error; err != nil {
			return fmt.Errorf("delete guide assignments: %w", err)
		}
		res := tx.Where("id = ?", guideID).Delete(&guideModel{})
		if res.Error != nil {
			return fmt.Errorf("delete guide: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *PlatformStore) SetGuideActive(ctx context.Context, guideID string, active bool) error {
	res := s.db.WithContext(ctx).
		Model(&guideModel{}).
		Where("id = ?", guideID).
		Updates(map[string]any{"base_active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("set guide active: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateBooking exists for seeding and tests; in production bookings are
// tourist-initiated on the platform side and only ever read here.
func (s *PlatformStore) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	now := time.Now()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	m := bookingModel{
		ID:        b.ID,
		AgencyID:  b.AgencyID,
		Location:  b.Location,
		GroupSize: b.GroupSize,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Status:    string(b.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	if len(b.GuideIDs) > 0 {
		if err := s.SetBookingAssignedGuides(ctx, b.ID, b.GuideIDs); err != nil {
			return domain.Booking{}, err
		}
	}
	created := toDomainBooking(m)
	created.GuideIDs = append([]string(nil), b.GuideIDs...)
	return created, nil
}

// SetTierConfig upserts the agency's tier row. Seeding/admin helper.
func (s *PlatformStore) SetTierConfig(ctx context.Context, agencyID string, cfg domain.TierConfig) error {
	m := tierModel{
		AgencyID:     agencyID,
		Tier:         string(cfg.Tier),
		BookingLimit: cfg.BookingLimit,
		GuideLimit:   cfg.GuideLimit,
		UpdatedAt:    time.Now(),
	}
	return s.db.WithContext(ctx).Save(&m).Error
}

// Reset wipes all rows, child tables first. Seeding helper.
func (s *PlatformStore) Reset() error {
	for _, table := range []string{"booking_guides", "bookings", "guides", "agency_tiers"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func toDomainGuide(m guideModel) domain.Guide {
	return domain.Guide{
		ID:         m.ID,
		AgencyID:   m.AgencyID,
		Name:       m.Name,
		Specialty:  m.Specialty,
		Languages:  decodeLanguages(m.Languages),
		Email:      m.Email,
		Phone:      m.Phone,
		BaseActive: m.BaseActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toDomainBooking(m bookingModel) domain.Booking {
	return domain.Booking{
		ID:        m.ID,
		AgencyID:  m.AgencyID,
		Location:  m.Location,
		GroupSize: m.GroupSize,
		CheckIn:   m.CheckIn,
		CheckOut:  m.CheckOut,
		Status:    domain.BookingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
