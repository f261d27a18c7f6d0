package request

// CreateBookingRequest ignores any client-sent totalPrice; the server prices bookings.
// Services outside the price table are kept on the booking and priced at 0.
type CreateBookingRequest struct {
	PackageID        string   `json:"packageId" validate:"required"`
	SelectedServices []string `json:"selectedServices" validate:"omitempty,max=16,dive,max=64"`
}
