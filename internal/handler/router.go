package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/rs/cors"

	"dopc-calculator/internal/pricing"
)

// Options configures NewRouter.
type Options struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter wires the HTTP handlers with their dependencies.
func NewRouter(fetcher pricing.VenueFetcher, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	standard := alice.New(requestID, recoverPanic(logger), logRequest(logger))

	mux := pat.New()
	mux.Get("/health", http.HandlerFunc(Health))
	mux.Get("/api/v1/delivery-order-price", PriceHandler(fetcher, timeout, logger))

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	return c.Handler(standard.Then(mux))
}
