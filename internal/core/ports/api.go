package ports

import (
	"context"

	"github.com/parkwise/parking-client/internal/core/domain"
)

// RegisterInput carries the profile fields accepted by the register endpoint.
// Username and password are mandatory; the rest is optional profile data.
type RegisterInput struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	PinCode       string `json:"pin_code,omitempty"`
}

// ProfileUpdate carries the mutable profile fields for PUT /user/profile.
type ProfileUpdate struct {
	FullName      string `json:"full_name,omitempty"`
	Email         string `json:"email,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	PinCode       string `json:"pin_code,omitempty"`
}

// AuthAPI covers credential acquisition and disposal. Login and Register
// persist the returned credential; Logout clears it regardless of whether
// the server call succeeded.
type AuthAPI interface {
	Login(ctx context.Context, username, password, role string) (domain.Credential, error)
	Register(ctx context.Context, input RegisterInput) (domain.Credential, error)
	Logout(ctx context.Context) error
}

// BookInput identifies the lot to book into. VehicleNumber defaults
// server-side to the profile's vehicle when empty.
type BookInput struct {
	LotID         int    `json:"lot_id"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

// BookResult is the server's response to a successful booking.
type BookResult struct {
	Message string             `json:"message"`
	Booking domain.Booking     `json:"booking"`
	Spot    domain.ParkingSpot `json:"spot"`
}

// ReleaseResult is the server's response to releasing a booking. FinalCost
// is the authoritative charge; any client-side running estimate is discarded
// in its favour.
type ReleaseResult struct {
	Message       string         `json:"message"`
	Booking       domain.Booking `json:"booking"`
	DurationHours float64        `json:"duration_hours"`
	FinalCost     float64        `json:"cost"`
}

// BookingAPI covers the end-user reservation lifecycle.
type BookingAPI interface {
	ActiveBookings(ctx context.Context) ([]domain.Booking, error)
	Book(ctx context.Context, input BookInput) (*BookResult, error)
	Release(ctx context.Context, bookingID int) (*ReleaseResult, error)
	History(ctx context.Context) ([]domain.Booking, error)
}

// ProfileAPI covers the end-user profile and stats views.
type ProfileAPI interface {
	Profile(ctx context.Context) (*domain.UserSummary, error)
	UpdateProfile(ctx context.Context, input ProfileUpdate) (*domain.UserSummary, error)
	Stats(ctx context.Context) (*domain.UserStats, error)
}

// ExportAPI covers the asynchronous booking-history CSV export.
type ExportAPI interface {
	TriggerExport(ctx context.Context) (*domain.ExportJob, error)
	ExportStatus(ctx context.Context, jobID int) (*domain.ExportJob, error)
	// DownloadExport returns the raw file bytes and the suggested filename.
	DownloadExport(ctx context.Context, jobID int) ([]byte, string, error)
}

// LotInput carries the admin create/update payload for a parking lot.
type LotInput struct {
	Name          string  `json:"prime_location_name"`
	PricePerHour  float64 `json:"price"`
	Address       string  `json:"address,omitempty"`
	PinCode       string  `json:"pin_code,omitempty"`
	NumberOfSpots int     `json:"number_of_spots"`
}

// LotSpotsResult pairs a lot with its spots, including live reservation info
// on occupied spots.
type LotSpotsResult struct {
	Lot   domain.ParkingLot    `json:"lot"`
	Spots []domain.ParkingSpot `json:"spots"`
}

// AdminAPI covers the admin-only surface. Every call requires an admin
// session; the server answers 403 otherwise.
type AdminAPI interface {
	Dashboard(ctx context.Context) (*domain.AdminDashboard, error)
	Users(ctx context.Context) ([]domain.UserSummary, error)
	DeleteUser(ctx context.Context, userID int) error
	Lots(ctx context.Context) ([]domain.ParkingLot, error)
	CreateLot(ctx context.Context, input LotInput) (*domain.ParkingLot, error)
	UpdateLot(ctx context.Context, lotID int, input LotInput) (*domain.ParkingLot, error)
	DeleteLot(ctx context.Context, lotID int) error
	LotSpots(ctx context.Context, lotID int) (*LotSpotsResult, error)
	StatsSummary(ctx context.Context) ([]domain.LotStats, error)
}

// PublicAPI covers the endpoints that require no credential.
type PublicAPI interface {
	PublicLots(ctx context.Context) ([]domain.ParkingLot, error)
	PublicLot(ctx context.Context, lotID int) (*domain.ParkingLot, error)
	PublicSpots(ctx context.Context) ([]domain.ParkingSpot, error)
	Health(ctx context.Context) error
}
