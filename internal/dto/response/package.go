package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type PackageResponse struct {
	ID               string           `json:"id"`
	From             string           `json:"from"`
	To               string           `json:"to"`
	StartDate        time.Time        `json:"startDate"`
	EndDate          time.Time        `json:"endDate"`
	BasePrice        float64          `json:"basePrice"`
	IncludedServices []entity.Service `json:"includedServices"`
	CreatedBy        string           `json:"createdBy"`
	Description      *string          `json:"description,omitempty"`
	ImageURL         *string          `json:"imageUrl,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func PackageToResponse(pkg *entity.TravelPackage) PackageResponse {
	services := pkg.IncludedServices
	if services == nil {
		services = []entity.Service{}
	}

	return PackageResponse{
		ID:               pkg.ID.String(),
		From:             pkg.From,
		To:               pkg.To,
		StartDate:        pkg.StartDate,
		EndDate:          pkg.EndDate,
		BasePrice:        pkg.BasePrice,
		IncludedServices: services,
		CreatedBy:        pkg.CreatedBy.String(),
		Description:      pkg.Description,
		ImageURL:         pkg.ImageURL,
		CreatedAt:        pkg.CreatedAt,
		UpdatedAt:        pkg.UpdatedAt,
	}
}

func PackagesToResponse(pkgs []*entity.TravelPackage) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, PackageToResponse(pkg))
	}
	return out
}
