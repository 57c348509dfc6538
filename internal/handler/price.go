package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dopc-calculator/internal/geo"
	"dopc-calculator/internal/obs"
	"dopc-calculator/internal/pricing"
)

type priceResponse struct {
	TotalPrice          int          `json:"total_price"`
	SmallOrderSurcharge int          `json:"small_order_surcharge"`
	CartValue           int          `json:"cart_value"`
	Delivery            deliveryPart `json:"delivery"`
}

type deliveryPart struct {
	Fee      int `json:"fee"`
	Distance int `json:"distance"`
}

// PriceHandler returns a handler that calculates delivery order price.
// cart_value is given in major units (e.g. 10.00); the response is in minor units.
func PriceHandler(fetcher pricing.VenueFetcher, timeout time.Duration, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		venue := strings.TrimSpace(q.Get("venue_slug"))
		cartStr := q.Get("cart_value")
		latStr := q.Get("user_lat")
		lonStr := q.Get("user_lon")

		if venue == "" || cartStr == "" || latStr == "" || lonStr == "" {
			writeError(w, r, http.StatusBadRequest, "missing required query parameters")
			return
		}
		userLat, err := strconv.ParseFloat(latStr, 64)
		if err != nil || userLat < -90 || userLat > 90 {
			writeError(w, r, http.StatusBadRequest, "user_lat must be a valid latitude")
			return
		}
		userLon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil || userLon < -180 || userLon > 180 {
			writeError(w, r, http.StatusBadRequest, "user_lon must be a valid longitude")
			return
		}
		user := geo.Coordinates{Latitude: userLat, Longitude: userLon}
		if !user.Valid() {
			writeError(w, r, http.StatusBadRequest, "user coordinates are invalid")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		b, err := quote(ctx, logger, fetcher, venue, pricing.Request{CartValue: cartStr, User: user})
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrInvalidCartValue):
				writeError(w, r, http.StatusBadRequest, "cart_value must be a non-negative decimal amount")
			case errors.Is(err, pricing.ErrDeliveryUnavailable):
				writeError(w, r, http.StatusBadRequest, "delivery not available for this distance")
			case errors.Is(err, context.DeadlineExceeded):
				writeError(w, r, http.StatusGatewayTimeout, "upstream timeout")
			case errors.Is(err, pricing.ErrDataUnavailable):
				writeError(w, r, http.StatusBadGateway, "failed to fetch venue info")
			default:
				logger.ErrorContext(ctx, "price calculation failed", "req_id", obs.RequestID(ctx), "err", err)
				writeError(w, r, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, r, http.StatusOK, priceResponse{
			TotalPrice:          b.TotalPrice,
			SmallOrderSurcharge: b.SmallOrderSurcharge,
			CartValue:           b.CartValue,
			Delivery:            deliveryPart{Fee: b.DeliveryFee, Distance: b.DeliveryDistance},
		})
	})
}

func quote(ctx context.Context, logger *slog.Logger, fetcher pricing.VenueFetcher, venue string, req pricing.Request) (b pricing.Breakdown, err error) {
	defer obs.Time(ctx, logger, "quote")(&err)
	return pricing.Quote(ctx, fetcher, venue, req)
}
