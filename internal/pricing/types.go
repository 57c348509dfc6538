package pricing

import "dopc-calculator/internal/geo"

// DistanceRange describes a pricing range based on distance.
type DistanceRange struct {
	Min int
	Max int // exclusive; 0 means delivery not available for >= Min
	A   int
	B   int // per 10 meters
}

// VenueData holds the venue fields needed to price an order. Amounts are in
// minor currency units.
type VenueData struct {
	Location       geo.Coordinates
	BasePrice      int
	MinimumOrder   int
	DistanceRanges []DistanceRange
}

// Request is a single price calculation input. CartValue is in major units,
// e.g. "10.00".
type Request struct {
	CartValue string
	User      geo.Coordinates
}

// Breakdown is the calculated order price. Money fields are minor units,
// DeliveryDistance is meters.
type Breakdown struct {
	CartValue           int
	DeliveryFee         int
	DeliveryDistance    int
	SmallOrderSurcharge int
	TotalPrice          int
}
