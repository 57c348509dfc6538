package pricing

import "errors"

var (
	ErrInvalidCartValue    = errors.New("invalid cart value")
	ErrDeliveryUnavailable = errors.New("delivery not available for this distance")
	ErrDataUnavailable     = errors.New("venue data unavailable")
)
