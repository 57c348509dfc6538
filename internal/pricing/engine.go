package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// VenueFetcher retrieves the pricing data of a venue.
type VenueFetcher interface {
	FetchVenue(ctx context.Context, venueSlug string) (VenueData, error)
}

// SelectRange returns the first billable range containing distance. A
// matching cutoff range (Max == 0) or no match at all means delivery is not
// available.
func SelectRange(ranges []DistanceRange, distance int) (DistanceRange, error) {
	for _, r := range ranges {
		if distance < r.Min {
			continue
		}
		if r.Max == 0 {
			return DistanceRange{}, fmt.Errorf("%w: %dm is beyond %dm", ErrDeliveryUnavailable, distance, r.Min)
		}
		if distance < r.Max {
			return r, nil
		}
	}
	return DistanceRange{}, fmt.Errorf("%w: no range covers %dm", ErrDeliveryUnavailable, distance)
}

// SmallOrderSurcharge is the difference between the venue minimum and the
// cart value, never negative.
func SmallOrderSurcharge(minimumOrder, cartValue int) int {
	return max(0, minimumOrder-cartValue)
}

// DeliveryFee = base + a + round(b * distance / 10).
func DeliveryFee(basePrice int, r DistanceRange, distance int) int {
	return basePrice + r.A + int(math.Round(float64(r.B*distance)/10.0))
}

// Calculate prices req against venue.
func Calculate(venue VenueData, req Request) (Breakdown, error) {
	cartValue, err := ParseCartValue(req.CartValue)
	if err != nil {
		return Breakdown{}, err
	}

	dist := req.User.DistanceTo(venue.Location)

	rng, err := SelectRange(venue.DistanceRanges, dist)
	if err != nil {
		return Breakdown{}, err
	}

	surcharge := SmallOrderSurcharge(venue.MinimumOrder, cartValue)
	fee := DeliveryFee(venue.BasePrice, rng, dist)

	return Breakdown{
		CartValue:           cartValue,
		DeliveryFee:         fee,
		DeliveryDistance:    dist,
		SmallOrderSurcharge: surcharge,
		TotalPrice:          cartValue + fee + surcharge,
	}, nil
}

// Quote fetches the venue and prices req against it. The cart value is
// checked before any fetch. Fetch failures are reported as ErrDataUnavailable.
func Quote(ctx context.Context, fetcher VenueFetcher, venueSlug string, req Request) (Breakdown, error) {
	if _, err := ParseCartValue(req.CartValue); err != nil {
		return Breakdown{}, err
	}

	venue, err := fetcher.FetchVenue(ctx, venueSlug)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			return Breakdown{}, err
		}
		return Breakdown{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return Calculate(venue, req)
}
