package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
)

func (c *Client) Dashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	var dash domain.AdminDashboard
	if err := c.d.SendJSON(ctx, http.MethodGet, "/admin/dashboard", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (c *Client) Users(ctx context.Context) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	if err := c.d.SendJSON(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.d.SendJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", userID), nil, nil)
}

func (c *Client) Lots(ctx context.Context) ([]domain.ParkingLot, error) {
	var lots []domain.ParkingLot
	if err := c.d.SendJSON(ctx, http.MethodGet, "/admin/parking-lots", nil, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

func (c *Client) CreateLot(ctx context.Context, input ports.LotInput) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	if err := c.d.SendJSON(ctx, http.MethodPost, "/admin/parking-lots", input, &lot); err != nil {
		return nil, err
	}
	return &lot, nil
}

func (c *Client) UpdateLot(ctx context.Context, lotID int, input ports.LotInput) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	if err := c.d.SendJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/parking-lots/%d", lotID), input, &lot); err != nil {
		return nil, err
	}
	return &lot, nil
}

// DeleteLot removes a lot. The server refuses while any spot is occupied;
// that refusal surfaces as a RequestError.
func (c *Client) DeleteLot(ctx context.Context, lotID int) error {
	return c.d.SendJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/parking-lots/%d", lotID), nil, nil)
}

func (c *Client) LotSpots(ctx context.Context, lotID int) (*ports.LotSpotsResult, error) {
	var result ports.LotSpotsResult
	if err := c.d.SendJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/parking-lots/%d/spots", lotID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) StatsSummary(ctx context.Context) ([]domain.LotStats, error) {
	var out struct {
		LotStats []domain.LotStats `json:"lot_stats"`
	}
	if err := c.d.SendJSON(ctx, http.MethodGet, "/admin/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return out.LotStats, nil
}
