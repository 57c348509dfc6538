package homeapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"dopc-calculator/internal/geo"
	"dopc-calculator/internal/pricing"
)

// StaticData contains only the fields DOPC needs from the static endpoint.
type StaticData struct {
	Location geo.Coordinates
}

// DynamicData contains only the fields DOPC needs from the dynamic endpoint.
type DynamicData struct {
	OrderMinimumNoSurcharge int
	BasePrice               int
	DistanceRanges          []pricing.DistanceRange
}

type staticResponse struct {
	VenueRaw *struct {
		Location *location `json:"location"`
	} `json:"venue_raw"`
}

type dynamicResponse struct {
	VenueRaw *struct {
		DeliverySpecs *struct {
			OrderMinimumNoSurcharge *int `json:"order_minimum_no_surcharge"`
			DeliveryPricing         *struct {
				BasePrice      *int            `json:"base_price"`
				DistanceRanges []distanceRange `json:"distance_ranges"`
			} `json:"delivery_pricing"`
		} `json:"delivery_specs"`
	} `json:"venue_raw"`
}

type distanceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
	A   int `json:"a"`
	B   int `json:"b"`
}

// location is GeoJSON-like with coordinates [lon, lat], or has a coordinates
// object, or direct lat/lon fields.
type location struct {
	Coordinates json.RawMessage `json:"coordinates"`
	Lat         *float64        `json:"lat"`
	Lon         *float64        `json:"lon"`
}

func (l location) coordinates() (geo.Coordinates, error) {
	if len(l.Coordinates) > 0 {
		var pair []float64
		if err := json.Unmarshal(l.Coordinates, &pair); err == nil {
			return geo.FromLonLat(pair)
		}
		var obj struct {
			Lat *float64 `json:"lat"`
			Lon *float64 `json:"lon"`
		}
		if err := json.Unmarshal(l.Coordinates, &obj); err != nil {
			return geo.Coordinates{}, fmt.Errorf("decode coordinates: %w", err)
		}
		if obj.Lat == nil || obj.Lon == nil {
			return geo.Coordinates{}, errors.New("coordinates: missing lat/lon")
		}
		return geo.Coordinates{Latitude: *obj.Lat, Longitude: *obj.Lon}, nil
	}
	if l.Lat == nil || l.Lon == nil {
		return geo.Coordinates{}, errors.New("location: missing coordinates")
	}
	return geo.Coordinates{Latitude: *l.Lat, Longitude: *l.Lon}, nil
}

func (r staticResponse) toStaticData() (StaticData, error) {
	if r.VenueRaw == nil {
		return StaticData{}, errors.New("missing venue_raw")
	}
	if r.VenueRaw.Location == nil {
		return StaticData{}, errors.New("missing venue_raw.location")
	}
	c, err := r.VenueRaw.Location.coordinates()
	if err != nil {
		return StaticData{}, err
	}
	return StaticData{Location: c}, nil
}

func (r dynamicResponse) toDynamicData() (DynamicData, error) {
	if r.VenueRaw == nil {
		return DynamicData{}, errors.New("missing venue_raw")
	}
	specs := r.VenueRaw.DeliverySpecs
	if specs == nil {
		return DynamicData{}, errors.New("missing venue_raw.delivery_specs")
	}
	if specs.OrderMinimumNoSurcharge == nil {
		return DynamicData{}, errors.New("missing order_minimum_no_surcharge")
	}
	if specs.DeliveryPricing == nil || specs.DeliveryPricing.BasePrice == nil {
		return DynamicData{}, errors.New("missing delivery_pricing.base_price")
	}
	if specs.DeliveryPricing.DistanceRanges == nil {
		return DynamicData{}, errors.New("missing delivery_pricing.distance_ranges")
	}

	ranges := make([]pricing.DistanceRange, 0, len(specs.DeliveryPricing.DistanceRanges))
	for _, r := range specs.DeliveryPricing.DistanceRanges {
		ranges = append(ranges, pricing.DistanceRange{Min: r.Min, Max: r.Max, A: r.A, B: r.B})
	}

	return DynamicData{
		OrderMinimumNoSurcharge: *specs.OrderMinimumNoSurcharge,
		BasePrice:               *specs.DeliveryPricing.BasePrice,
		DistanceRanges:          ranges,
	}, nil
}
