package entity

// Service is an add-on that can be included in a package or selected on a booking.
type Service string

const (
	ServiceFood           Service = "Food"
	ServiceAccommodation  Service = "Accommodation"
	ServiceTransportation Service = "Transportation"
	ServiceGuidedTours    Service = "Guided Tours"
)

// AllServices lists the fixed enumeration in display order.
var AllServices = []Service{
	ServiceFood,
	ServiceAccommodation,
	ServiceTransportation,
	ServiceGuidedTours,
}

func (s Service) Valid() bool {
	switch s {
	case ServiceFood, ServiceAccommodation, ServiceTransportation, ServiceGuidedTours:
		return true
	default:
		return false
	}
}

// ServicesToStrings converts services for storage in text[] / string arrays.
func ServicesToStrings(services []Service) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = string(s)
	}
	return out
}

func ServicesFromStrings(values []string) []Service {
	out := make([]Service, len(values))
	for i, v := range values {
		out[i] = Service(v)
	}
	return out
}
