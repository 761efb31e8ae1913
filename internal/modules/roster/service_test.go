package roster

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tourdesk/internal/domain"
	"tourdesk/internal/store"
)

type MockGuideStore struct {
	mock.Mock
}

func (m *MockGuideStore) CreateGuide(ctx context.Context, agencyID string, g domain.Guide) (domain.Guide, error) {
	args := m.Called(ctx, agencyID, g)
	return args.Get(0).(domain.Guide), args.Error(1)
}

func (m *MockGuideStore) DeleteGuide(ctx context.Context, guideID string) error {
	args := m.Called(ctx, guideID)
	return args.Error(0)
}

func (m *MockGuideStore) SetGuideActive(ctx context.Context, guideID string, active bool) error {
	args := m.Called(ctx, guideID, active)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyRosterChanged(ctx context.Context, guideID, change string) error {
	args := m.Called(ctx, guideID, change)
	return args.Error(0)
}

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newFixture() (*store.Session, *MockGuideStore, *MockNotificationSender, *Service) {
	session := store.NewSession("agency-1")
	session.Replace(
		[]domain.Guide{
			{ID: "g1", Name: "Aruzhan", BaseActive: true},
			{ID: "g2", Name: "Marco", BaseActive: true},
		},
		[]domain.Booking{
			{ID: "b1", CheckIn: date(2025, 1, 10), CheckOut: date(2025, 1, 12), Status: domain.BookingAccepted, GuideIDs: []string{"g1", "g2"}},
			{ID: "b2", Status: domain.BookingPending, GuideIDs: []string{"g1"}},
		},
		domain.DefaultTierConfig(),
	)

	platform := new(MockGuideStore)
	notifs := new(MockNotificationSender)
	service := NewService(session, platform, notifs, logrus.New())
	return session, platform, notifs, service
}

func TestCreate_Success(t *testing.T) {
	session, platform, notifs, service := newFixture()

	created := domain.Guide{ID: "g-new", AgencyID: "agency-1", Name: "Lena", BaseActive: true}
	platform.On("CreateGuide", mock.Anything, "agency-1", mock.Anything).Return(created, nil)
	notifs.On("NotifyRosterChanged", mock.Anything, "g-new", "created").Return(nil)

	g, err := service.Create(context.Background(), CreateGuideRequest{Name: "Lena", Languages: []string{"de", "en"}})

	assert.NoError(t, err)
	assert.Equal(t, "g-new", g.ID)
	_, ok := session.Guide("g-new")
	assert.True(t, ok)
}

func TestCreate_ValidationFailsLocally(t *testing.T) {
	_, platform, _, service := newFixture()

	_, err := service.Create(context.Background(), CreateGuideRequest{Name: "", Email: "not-an-email"})

	assert.ErrorIs(t, err, ErrValidation)
	platform.AssertNotCalled(t, "CreateGuide", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_RemoteFailureLeavesRosterUntouched(t *testing.T) {
	session, platform, _, service := newFixture()
	platform.On("CreateGuide", mock.Anything, "agency-1", mock.Anything).
		Return(domain.Guide{}, domain.ErrNetwork)

	_, err := service.Create(context.Background(), CreateGuideRequest{Name: "Lena"})

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Len(t, session.Guides(), 2)
}

func TestDelete_StripsGuideFromAssignments(t *testing.T) {
	session, platform, notifs, service := newFixture()
	platform.On("DeleteGuide", mock.Anything, "g1").Return(nil)
	notifs.On("NotifyRosterChanged", mock.Anything, "g1", "deleted").Return(nil)

	err := service.Delete(context.Background(), "g1")

	assert.NoError(t, err)
	_, ok := session.Guide("g1")
	assert.False(t, ok)

	b1, _ := session.Booking("b1")
	assert.Equal(t, []string{"g2"}, b1.GuideIDs)
	b2, _ := session.Booking("b2")
	assert.Empty(t, b2.GuideIDs)
}

func TestDelete_RemoteFailureKeepsGuide(t *testing.T) {
	session, platform, _, service := newFixture()
	platform.On("DeleteGuide", mock.Anything, "g1").Return(domain.ErrNetwork)

	err := service.Delete(context.Background(), "g1")

	assert.ErrorIs(t, err, domain.ErrNetwork)
	_, ok := session.Guide("g1")
	assert.True(t, ok)
	b1, _ := session.Booking("b1")
	assert.Contains(t, b1.GuideIDs, "g1")
}

func TestDelete_UnknownGuide(t *testing.T) {
	_, _, _, service := newFixture()

	err := service.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetActive_FlipsFlag(t *testing.T) {
	session, platform, _, service := newFixture()
	platform.On("SetGuideActive", mock.Anything, "g1", false).Return(nil)

	g, err := service.SetActive(context.Background(), "g1", false)

	assert.NoError(t, err)
	assert.False(t, g.BaseActive)
	stored, _ := session.Guide("g1")
	assert.False(t, stored.BaseActive)
}

func TestSetActive_NoopWhenUnchanged(t *testing.T) {
	_, platform, _, service := newFixture()

	g, err := service.SetActive(context.Background(), "g1", true)

	assert.NoError(t, err)
	assert.True(t, g.BaseActive)
	platform.AssertNotCalled(t, "SetGuideActive", mock.Anything, mock.Anything, mock.Anything)
}

// Deactivation is not retroactive: the guide stays on bookings it was
// already assigned to.
func TestSetActive_DeactivationKeepsExistingAssignments(t *testing.T) {
	session, platform, _, service := newFixture()
	platform.On("SetGuideActive", mock.Anything, "g1", false).Return(nil)

	_, err := service.SetActive(context.Background(), "g1", false)

	assert.NoError(t, err)
	b1, _ := session.Booking("b1")
	assert.Contains(t, b1.GuideIDs, "g1")
}
