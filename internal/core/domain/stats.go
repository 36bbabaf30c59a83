package domain

// AdminDashboard is the aggregate snapshot behind the admin landing view.
type AdminDashboard struct {
	TotalLots      int     `json:"total_lots"`
	TotalSpots     int     `json:"total_spots"`
	AvailableSpots int     `json:"available_spots"`
	OccupiedSpots  int     `json:"occupied_spots"`
	TotalUsers     int     `json:"total_users"`
	TodayBookings  int     `json:"today_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

// LotStats is one row of the per-lot revenue/occupancy summary.
type LotStats struct {
	Name          string  `json:"name"`
	TotalBookings int     `json:"total_bookings"`
	Revenue       float64 `json:"revenue"`
	Available     int     `json:"available"`
	Occupied      int     `json:"occupied"`
}

// UserStats summarizes a single user's booking history.
type UserStats struct {
	TotalBookings     int            `json:"total_bookings"`
	ActiveBookings    int            `json:"active_bookings"`
	CompletedBookings int            `json:"completed_bookings"`
	TotalSpent        float64        `json:"total_spent"`
	TotalHours        float64        `json:"total_hours"`
	LotUsage          map[string]int `json:"lot_usage"`
}
