package dto

type DashboardResponse struct {
	TotalCars      int     `json:"total_cars"`
	AvailableCars  int     `json:"available_cars"`
	TotalCustomers int     `json:"total_customers"`
	ActiveBookings int     `json:"active_bookings"`
	MonthBookings  int     `json:"month_bookings"`
	MonthRevenue   float64 `json:"month_revenue"`
}
