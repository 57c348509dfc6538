package homeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dopc-calculator/internal/obs"
	"dopc-calculator/internal/pricing"
)

// Config is injected by the caller; the client never reads the environment.
type Config struct {
	BaseURL     string
	MaxAttempts int
	Backoff     time.Duration
}

// Client fetches venue information from the home assignment API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

func (c *Client) GetStatic(ctx context.Context, venueSlug string) (data StaticData, err error) {
	defer obs.Time(ctx, c.logger, "venue_static")(&err)

	var raw staticResponse
	if err := c.getJSON(ctx, c.venueURL(venueSlug, "static"), &raw); err != nil {
		return StaticData{}, fmt.Errorf("static endpoint: %w", err)
	}
	data, err = raw.toStaticData()
	if err != nil {
		return StaticData{}, fmt.Errorf("static endpoint: %w", err)
	}
	return data, nil
}

func (c *Client) GetDynamic(ctx context.Context, venueSlug string) (data DynamicData, err error) {
	defer obs.Time(ctx, c.logger, "venue_dynamic")(&err)

	var raw dynamicResponse
	if err := c.getJSON(ctx, c.venueURL(venueSlug, "dynamic"), &raw); err != nil {
		return DynamicData{}, fmt.Errorf("dynamic endpoint: %w", err)
	}
	data, err = raw.toDynamicData()
	if err != nil {
		return DynamicData{}, fmt.Errorf("dynamic endpoint: %w", err)
	}
	return data, nil
}

// FetchVenue fetches static and dynamic data in parallel and merges them.
// Every failure is reported as pricing.ErrDataUnavailable.
func (c *Client) FetchVenue(ctx context.Context, venueSlug string) (pricing.VenueData, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type staticRes struct {
		s   StaticData
		err error
	}
	type dynamicRes struct {
		d   DynamicData
		err error
	}
	chStatic := make(chan staticRes, 1)
	chDynamic := make(chan dynamicRes, 1)

	go func() {
		s, e := c.GetStatic(ctx, venueSlug)
		chStatic <- staticRes{s: s, err: e}
	}()
	go func() {
		d, e := c.GetDynamic(ctx, venueSlug)
		chDynamic <- dynamicRes{d: d, err: e}
	}()

	var sdata StaticData
	var ddata DynamicData
	for i := 0; i < 2; i++ {
		select {
		case sr := <-chStatic:
			if sr.err != nil {
				return pricing.VenueData{}, fmt.Errorf("%w: %w", pricing.ErrDataUnavailable, sr.err)
			}
			sdata = sr.s
		case dr := <-chDynamic:
			if dr.err != nil {
				return pricing.VenueData{}, fmt.Errorf("%w: %w", pricing.ErrDataUnavailable, dr.err)
			}
			ddata = dr.d
		case <-ctx.Done():
			return pricing.VenueData{}, fmt.Errorf("%w: %w", pricing.ErrDataUnavailable, ctx.Err())
		}
	}

	return pricing.VenueData{
		Location:       sdata.Location,
		BasePrice:      ddata.BasePrice,
		MinimumOrder:   ddata.OrderMinimumNoSurcharge,
		DistanceRanges: ddata.DistanceRanges,
	}, nil
}

func (c *Client) venueURL(venueSlug, kind string) string {
	return fmt.Sprintf("%s/home-assignment-api/v1/venues/%s/%s", c.cfg.BaseURL, url.PathEscape(venueSlug), kind)
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
