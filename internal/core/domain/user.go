package domain

// UserSummary is the server's view of an account, cached alongside the tokens
// after login or registration. The role is fixed for the life of the session.
type UserSummary struct {
	ID            int      `json:"id"`
	Username      string   `json:"username"`
	FullName      string   `json:"full_name,omitempty"`
	Email         string   `json:"email,omitempty"`
	VehicleNumber string   `json:"vehicle_number,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Address       string   `json:"address,omitempty"`
	PinCode       string   `json:"pin_code,omitempty"`
	Role          string   `json:"role"`
	LastVisit     *APITime `json:"last_visit,omitempty"`
	CreatedAt     *APITime `json:"created_at,omitempty"`
}
