package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

// BookingResponse.Package is null once the package has been deleted.
type BookingResponse struct {
	ID               string               `json:"id"`
	UserID           string               `json:"userId"`
	PackageID        string               `json:"packageId"`
	Package          *PackageResponse     `json:"package"`
	SelectedServices []entity.Service     `json:"selectedServices"`
	TotalPrice       float64              `json:"totalPrice"`
	Status           entity.BookingStatus `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

func BookingToResponse(booking *entity.Booking, pkg *entity.TravelPackage) BookingResponse {
	services := booking.SelectedServices
	if services == nil {
		services = []entity.Service{}
	}

	resp := BookingResponse{
		ID:               booking.ID.String(),
		UserID:           booking.UserID.String(),
		PackageID:        booking.PackageID.String(),
		SelectedServices: services,
		TotalPrice:       booking.TotalPrice,
		Status:           booking.Status,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}

	if pkg != nil {
		p := PackageToResponse(pkg)
		resp.Package = &p
	}

	return resp
}

func BookingsToResponse(bookings []*entity.BookingWithPackage) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(&b.Booking, b.Package))
	}
	return out
}
