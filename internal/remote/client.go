package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"tourdesk/internal/domain"
)

// Client implements the platform store operations over the core API's
// JSON endpoints. Calls run through a circuit breaker so a flapping
// platform does not hang every operator action behind timeouts; an open
// breaker reports the same ErrNetwork the caller already rolls back on.
type Client struct {
	base    string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log *logrus.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "platform-store",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// A 404 is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return &Client{
		base:    baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     log,
	}
}

type guidePayload struct {
	Guide domain.Guide `json:"guide"`
}

func (c *Client) ListGuides(ctx context.Context, agencyID string) ([]domain.Guide, error) {
	var out struct {
		Guides []domain.Guide `json:"guides"`
	}
	err := c.do(ctx, http.MethodGet, "/internal/v1/agencies/"+agencyID+"/guides", nil, &out)
	return out.Guides, err
}

func (c *Client) ListBookings(ctx context.Context, agencyID string) ([]domain.Booking, error) {
	var out struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	err := c.do(ctx, http.MethodGet, "/internal/v1/agencies/"+agencyID+"/bookings", nil, &out)
	return out.Bookings, err
}

func (c *Client) GetTierConfig(ctx context.Context, agencyID string) (domain.TierConfig, error) {
	var out struct {
		Tier domain.TierConfig `json:"tier"`
	}
	err := c.do(ctx, http.MethodGet, "/internal/v1/agencies/"+agencyID+"/tier", nil, &out)
	return out.Tier, err
}

func (c *Client) SetBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, "/internal/v1/bookings/"+bookingID+"/status", body, nil)
}

func (c *Client) SetBookingAssignedGuides(ctx context.Context, bookingID string, guideIDs []string) error {
	body := map[string][]string{"guide_ids": guideIDs}
	return c.do(ctx, http.MethodPut, "/internal/v1/bookings/"+bookingID+"/guides", body, nil)
}

func (c *Client) CreateGuide(ctx context.Context, agencyID string, g domain.Guide) (domain.Guide, error) {
	var out guidePayload
	err := c.do(ctx, http.MethodPost, "/internal/v1/agencies/"+agencyID+"/guides", g, &out)
	return out.Guide, err
}

func (c *Client) DeleteGuide(ctx context.Context, guideID string) error {
	return c.do(ctx, http.MethodDelete, "/internal/v1/guides/"+guideID, nil, nil)
}

func (c *Client) SetGuideActive(ctx context.Context, guideID string, active bool) error {
	body := map[string]bool{"active": active}
	return c.do(ctx, http.MethodPatch, "/internal/v1/guides/"+guideID+"/active", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if err == nil {
		return nil
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("%s %s: breaker open: %w", method, path, domain.ErrNetwork)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, domain.ErrNetwork)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode >= 400:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
			"body":   string(payload),
		}).Warn("platform store rejected request")
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, domain.ErrNetwork)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %v: %w", method, path, err, domain.ErrNetwork)
	}
	return nil
}
