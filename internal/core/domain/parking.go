package domain

// SpotStatus is the single-letter occupancy flag used by the server.
type SpotStatus string

const (
	SpotAvailable SpotStatus = "A"
	SpotOccupied  SpotStatus = "O"
)

// ParkingLot is the read-only client view of a lot, including the live
// availability counters the server derives per request.
type ParkingLot struct {
	ID             int      `json:"id"`
	Name           string   `json:"prime_location_name"`
	PricePerHour   float64  `json:"price"`
	Address        string   `json:"address"`
	PinCode        string   `json:"pin_code"`
	NumberOfSpots  int      `json:"number_of_spots"`
	AvailableSpots int      `json:"available_spots"`
	OccupiedSpots  int      `json:"occupied_spots"`
	CreatedAt      *APITime `json:"created_at,omitempty"`
}

// ParkingSpot is a single slot inside a lot. Reservation is populated only on
// the admin lot-spots view, for occupied spots with a live reservation.
type ParkingSpot struct {
	ID            int              `json:"id"`
	LotID         int              `json:"lot_id"`
	Status        SpotStatus       `json:"status"`
	StatusLabel   string           `json:"status_label,omitempty"`
	VehicleNumber string           `json:"vehicle_number,omitempty"`
	Reservation   *SpotReservation `json:"reservation,omitempty"`
}

// SpotReservation identifies who currently occupies a spot.
type SpotReservation struct {
	User          string  `json:"user"`
	VehicleNumber string  `json:"vehicle_number"`
	ParkingSince  APITime `json:"parking_since"`
}
