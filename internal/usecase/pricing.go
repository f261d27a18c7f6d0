package usecase

import (
	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"
)

// PriceTable maps an add-on service to its flat booking surcharge.
type PriceTable map[entity.Service]float64

func NewPriceTable(config utils.PricingConfig) PriceTable {
	return PriceTable{
		entity.ServiceFood:           config.Food,
		entity.ServiceAccommodation:  config.Accommodation,
		entity.ServiceTransportation: config.Transportation,
		entity.ServiceGuidedTours:    config.GuidedTours,
	}
}

// Surcharge sums the table entries; a service missing from the table adds 0.
func (t PriceTable) Surcharge(services []entity.Service) float64 {
	var total float64
	for _, s := range services {
		total += t[s]
	}
	return total
}

func (t PriceTable) Total(basePrice float64, services []entity.Service) float64 {
	return basePrice + t.Surcharge(services)
}

// uniqueServices drops repeats, keeping first-seen order.
func uniqueServices(values []string) []entity.Service {
	seen := make(map[entity.Service]struct{}, len(values))
	out := make([]entity.Service, 0, len(values))
	for _, v := range values {
		s := entity.Service(v)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
