package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parkwise/parking-client/internal/core/domain"
)

// PublicLots lists all lots with live availability. No credential required;
// a stored token is still attached and simply ignored by the server.
func (c *Client) PublicLots(ctx context.Context) ([]domain.ParkingLot, error) {
	var lots []domain.ParkingLot
	if err := c.d.SendJSON(ctx, http.MethodGet, "/parking-lots", nil, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

func (c *Client) PublicLot(ctx context.Context, lotID int) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	if err := c.d.SendJSON(ctx, http.MethodGet, fmt.Sprintf("/parking-lots/%d", lotID), nil, &lot); err != nil {
		return nil, err
	}
	return &lot, nil
}

func (c *Client) PublicSpots(ctx context.Context) ([]domain.ParkingSpot, error) {
	var spots []domain.ParkingSpot
	if err := c.d.SendJSON(ctx, http.MethodGet, "/parking-spots", nil, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

// Health pings the service.
func (c *Client) Health(ctx context.Context) error {
	return c.d.SendJSON(ctx, http.MethodGet, "/health", nil, nil)
}
