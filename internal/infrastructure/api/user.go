package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
)

func (c *Client) Profile(ctx context.Context) (*domain.UserSummary, error) {
	var user domain.UserSummary
	if err := c.d.SendJSON(ctx, http.MethodGet, "/user/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes the mutable profile fields and refreshes the cached
// user so session state reflects the change without a re-login.
func (c *Client) UpdateProfile(ctx context.Context, input ports.ProfileUpdate) (*domain.UserSummary, error) {
	var user domain.UserSummary
	if err := c.d.SendJSON(ctx, http.MethodPut, "/user/profile", input, &user); err != nil {
		return nil, err
	}
	if err := c.creds.Set(domain.Credential{User: &user}); err != nil {
		c.log.Warn().Err(err).Msg("failed to cache updated profile")
	}
	return &user, nil
}

// ActiveBookings returns the caller's open reservations. The server enforces
// at most one; the slice shape mirrors the wire format.
func (c *Client) ActiveBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.d.SendJSON(ctx, http.MethodGet, "/user/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Book reserves a spot in the given lot. A conflict report from the server
// ("already have an active booking") is authoritative — callers must surface
// it, not retry around it.
func (c *Client) Book(ctx context.Context, input ports.BookInput) (*ports.BookResult, error) {
	var result ports.BookResult
	if err := c.d.SendJSON(ctx, http.MethodPost, "/user/bookings", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Release closes the booking and returns the server-computed final cost. The
// client sends no cost figure of its own.
func (c *Client) Release(ctx context.Context, bookingID int) (*ports.ReleaseResult, error) {
	var result ports.ReleaseResult
	path := fmt.Sprintf("/user/bookings/%d/release", bookingID)
	if err := c.d.SendJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) History(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.d.SendJSON(ctx, http.MethodGet, "/user/bookings/history", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.UserStats, error) {
	var stats domain.UserStats
	if err := c.d.SendJSON(ctx, http.MethodGet, "/user/stats/summary", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type exportResponse struct {
	Message string           `json:"message"`
	Job     domain.ExportJob `json:"job"`
}

// TriggerExport starts a server-side CSV export of the booking history. When
// an export is already pending the server returns that job instead of
// starting another.
func (c *Client) TriggerExport(ctx context.Context) (*domain.ExportJob, error) {
	var out exportResponse
	if err := c.d.SendJSON(ctx, http.MethodPost, "/user/export", nil, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) ExportStatus(ctx context.Context, jobID int) (*domain.ExportJob, error) {
	var job domain.ExportJob
	if err := c.d.SendJSON(ctx, http.MethodGet, fmt.Sprintf("/user/export/%d", jobID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DownloadExport fetches the finished export as raw bytes.
func (c *Client) DownloadExport(ctx context.Context, jobID int) ([]byte, string, error) {
	return c.d.Download(ctx, fmt.Sprintf("/user/export/%d/download", jobID))
}
