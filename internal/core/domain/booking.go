package domain

// Booking is the read-only client view of a reservation. The client never
// mutates a booking directly; it is created by a book request and closed by a
// release request.
//
// FinalCost is the server-computed figure set when the booking is released.
// It is authoritative; any locally computed running cost is an estimate and
// lives outside this struct (see the meter service).
type Booking struct {
	ID               int      `json:"id"`
	SpotID           int      `json:"spot_id"`
	LotID            int      `json:"lot_id"`
	LotName          string   `json:"lot_name,omitempty"`
	LotAddress       string   `json:"lot_address,omitempty"`
	UserID           int      `json:"user_id"`
	VehicleNumber    string   `json:"vehicle_number,omitempty"`
	ParkingTimestamp APITime  `json:"parking_timestamp"`
	LeavingTimestamp *APITime `json:"leaving_timestamp"`
	FinalCost        *float64 `json:"parking_cost"`
	Remarks          string   `json:"remarks,omitempty"`
}

// Active reports whether the booking has no recorded end time. The server
// guarantees at most one active booking per user; violation reports from it
// are authoritative and must not be retried around.
func (b Booking) Active() bool {
	return b.LeavingTimestamp == nil
}
