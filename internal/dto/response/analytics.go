package response

type UserBookingsResponse struct {
	User     UserResponse      `json:"user"`
	Bookings []BookingResponse `json:"bookings"`
}

type PackageStatusResponse struct {
	Completed []PackageResponse `json:"completed"`
	Active    []PackageResponse `json:"active"`
	Upcoming  []PackageResponse `json:"upcoming"`
}

type PackageBookingCountResponse struct {
	PackageID   string `json:"packageId"`
	PackageName string `json:"packageName"`
	Count       int64  `json:"count"`
}
