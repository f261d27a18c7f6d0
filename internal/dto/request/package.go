package request

// CreatePackageRequest dates accept YYYY-MM-DD or RFC3339.
type CreatePackageRequest struct {
	From             string   `json:"from" validate:"required,max=100"`
	To               string   `json:"to" validate:"required,max=100"`
	StartDate        string   `json:"startDate" validate:"required"`
	EndDate          string   `json:"endDate" validate:"required"`
	BasePrice        *float64 `json:"basePrice" validate:"required,gte=0"`
	IncludedServices []string `json:"includedServices" validate:"omitempty,dive,travel_service"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	ImageURL         *string  `json:"imageUrl" validate:"omitempty,max=2048"`
}

// UpdatePackageRequest is partial: nil fields are left untouched.
type UpdatePackageRequest struct {
	From             *string  `json:"from" validate:"omitempty,min=1,max=100"`
	To               *string  `json:"to" validate:"omitempty,min=1,max=100"`
	StartDate        *string  `json:"startDate"`
	EndDate          *string  `json:"endDate"`
	BasePrice        *float64 `json:"basePrice" validate:"omitempty,gte=0"`
	IncludedServices []string `json:"includedServices" validate:"omitempty,dive,travel_service"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	ImageURL         *string  `json:"imageUrl" validate:"omitempty,max=2048"`
}

// PackageListRequest is filled from the query string of GET /api/packages.
type PackageListRequest struct {
	PaginatedRequest
	From      string `json:"from" validate:"max=100"`
	To        string `json:"to" validate:"max=100"`
	Date      string `json:"date"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Sort      string `json:"sort" validate:"omitempty,oneof=price-asc price-desc"`
}
