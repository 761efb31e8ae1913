package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/domain"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestListGuidesDecodesAndAuthenticates(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"guides": []domain.Guide{
				{ID: "g1", Name: "Aigerim", BaseActive: true},
				{ID: "g2", Name: "Marco", BaseActive: false},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", time.Second, testLogger())
	guides, err := client.ListGuides(context.Background(), "agency-1")

	require.NoError(t, err)
	require.Len(t, guides, 2)
	assert.Equal(t, "Aigerim", guides[0].Name)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "/internal/v1/agencies/agency-1/guides", gotPath)
}

func TestServerErrorMapsToNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	err := client.SetBookingStatus(context.Background(), "b1", domain.BookingAccepted)

	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestTimeoutMapsToNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 50*time.Millisecond, testLogger())
	err := client.DeleteGuide(context.Background(), "g1")

	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestNotFoundMapsToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	err := client.SetGuideActive(context.Background(), "ghost", false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}

// A 404 is an answer, not an outage: repeated not-found responses must
// never open the breaker.
func TestRepeatedNotFoundDoesNotOpenBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	for i := 0; i < 6; i++ {
		err := client.DeleteGuide(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())

	for i := 0; i < 3; i++ {
		err := client.SetBookingStatus(context.Background(), "b1", domain.BookingAccepted)
		assert.ErrorIs(t, err, domain.ErrNetwork)
	}
	require.Equal(t, int64(3), atomic.LoadInt64(&hits))

	// the breaker is open now; the platform is not hit again
	err := client.SetBookingStatus(context.Background(), "b1", domain.BookingAccepted)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, int64(3), atomic.LoadInt64(&hits))
}
