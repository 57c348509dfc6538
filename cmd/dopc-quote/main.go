// Command dopc-quote fetches a venue, prices one order and prints the breakdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"dopc-calculator/internal/config"
	"dopc-calculator/internal/display"
	"dopc-calculator/internal/geo"
	"dopc-calculator/internal/homeapi"
	"dopc-calculator/internal/obs"
	"dopc-calculator/internal/pricing"
)

func main() {
	_ = godotenv.Load()

	venue := flag.String("venue", "home-assignment-venue-helsinki", "venue slug")
	cart := flag.String("cart", "10", "cart value in EUR")
	lat := flag.Float64("lat", 60.17094, "user latitude")
	lon := flag.Float64("lon", 24.93087, "user longitude")
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := obs.NewLogger(os.Stderr, "dopc-quote", level)

	user := geo.Coordinates{Latitude: *lat, Longitude: *lon}
	if !user.Valid() {
		fmt.Fprintln(os.Stderr, "invalid user coordinates")
		os.Exit(2)
	}

	api := homeapi.New(homeapi.Config{
		BaseURL:     cfg.HomeAPI.BaseURL,
		MaxAttempts: cfg.HomeAPI.MaxAttempts,
		Backoff:     cfg.HomeAPI.Backoff,
	}, &http.Client{Timeout: cfg.HomeAPI.Timeout}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	defer cancel()

	b, err := pricing.Quote(ctx, api, *venue, pricing.Request{CartValue: *cart, User: user})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := display.Render(os.Stdout, b); err != nil {
		log.Fatal(err)
	}
}
