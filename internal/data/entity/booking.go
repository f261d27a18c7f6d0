package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusAccepted  BookingStatus = "Accepted"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	BaseNoDelete
	UserID           uuid.UUID     `db:"user_id"`
	PackageID        uuid.UUID     `db:"package_id"`
	SelectedServices []Service     `db:"selected_services"`
	TotalPrice       float64       `db:"total_price"`
	Status           BookingStatus `db:"status"`
}

// BookingWithPackage is a booking with its package populated at read time.
// Package is nil when the package has since been deleted.
type BookingWithPackage struct {
	Booking
	Package *TravelPackage
}

// PackageBookingCount is one row of the per-package booking aggregation.
type PackageBookingCount struct {
	PackageID   uuid.UUID
	PackageName string
	Count       int64
}
