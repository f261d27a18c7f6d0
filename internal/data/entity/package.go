package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TravelPackage struct {
	Base
	From             string    `db:"origin"`
	To               string    `db:"destination"`
	StartDate        time.Time `db:"start_date"`
	EndDate          time.Time `db:"end_date"`
	BasePrice        float64   `db:"base_price"`
	IncludedServices []Service `db:"included_services"`
	CreatedBy        uuid.UUID `db:"created_by"`
	Description      *string   `db:"description"`
	ImageURL         *string   `db:"image_url"`
}

// DisplayName is the "origin → destination" label used in analytics.
func (p *TravelPackage) DisplayName() string {
	return fmt.Sprintf("%s → %s", p.From, p.To)
}

type PackageSort string

const (
	SortNewest    PackageSort = ""
	SortPriceAsc  PackageSort = "price-asc"
	SortPriceDesc PackageSort = "price-desc"
)

// PackageFilter narrows a catalog listing. Zero values mean "no constraint".
type PackageFilter struct {
	From      string
	To        string
	Date      *time.Time // package range contains this instant
	StartFrom *time.Time // package starts on or after
	EndBy     *time.Time // package ends on or before
	Sort      PackageSort
}
