// ABOUTME: Apify Google Maps scraper client for local business discovery
// ABOUTME: Starts a run, polls its dataset, maps loosely-typed items to Business
package lookup

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/harper/tap-coach/internal/util"
)

const (
	// DefaultApifyBaseURL is the public Apify API root
	DefaultApifyBaseURL = "https://api.apify.com/v2"
	// GoogleMapsActor is the scraper actor id
	GoogleMapsActor = "compass~google-maps-scraper"

	DefaultPollInterval = 10 * time.Second
	DefaultMaxPolls     = 30

	costPerResult = 0.01
	maxSearchCost = 1.00
)

// BusinessQuery is a free-text search near a location
type BusinessQuery struct {
	Query      string `json:"query"`
	Location   string `json:"location"`
	MaxResults int    `json:"maxResults"`
}

// Coordinates is a map position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Business is one local business record
type Business struct {
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	ReviewCount int          `json:"reviewCount,omitempty"`
	Category    string       `json:"category,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// EstimateCost is the rough dollar cost of a search: one cent per result,
// capped at one dollar
func EstimateCost(maxResults int) float64 {
	if maxResults <= 0 {
		return 0
	}
	return math.Min(float64(maxResults)*costPerResult, maxSearchCost)
}

type runRequest struct {
	SearchStringsArray        []string `json:"searchStringsArray"`
	MaxCrawledPlacesPerSearch int      `json:"maxCrawledPlacesPerSearch"`
	Language                  string   `json:"language"`
	CountryCode               string   `json:"countryCode"`
}

type runResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ApifyClient runs the Google Maps scraper
type ApifyClient struct {
	client       *resty.Client
	token        string
	pollInterval time.Duration
	maxPolls     int
}

// ApifyOption customizes an ApifyClient
type ApifyOption func(*ApifyClient)

// WithPolling overrides the poll interval and attempt limit
func WithPolling(interval time.Duration, maxPolls int) ApifyOption {
	return func(c *ApifyClient) {
		c.pollInterval = interval
		c.maxPolls = maxPolls
	}
}

// NewApifyClient creates a client; an empty baseURL uses the public API
func NewApifyClient(token, baseURL string, timeout time.Duration, opts ...ApifyOption) *ApifyClient {
	if baseURL == "" {
		baseURL = DefaultApifyBaseURL
	}
	c := &ApifyClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json"),
		token:        token,
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindBusinesses starts a scraper run and waits for its first results
func (a *ApifyClient) FindBusinesses(ctx context.Context, q BusinessQuery) ([]Business, error) {
	if a.token == "" {
		return nil, fmt.Errorf("apify: %w", ErrMissingAPIKey)
	}
	if strings.TrimSpace(q.Query) == "" || strings.TrimSpace(q.Location) == "" {
		return nil, errors.New("query and location are required")
	}
	if q.MaxResults <= 0 {
		q.MaxResults = 20
	}

	runID, err := a.startRun(ctx, q)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < a.maxPolls; attempt++ {
		if err := util.Sleep(ctx, a.pollInterval); err != nil {
			return nil, err
		}

		var items []map[string]interface{}
		resp, err := a.client.R().
			SetContext(ctx).
			SetResult(&items).
			Get("/acts/" + GoogleMapsActor + "/runs/" + runID + "/dataset/items")
		if err != nil || resp.IsError() {
			continue
		}
		if len(items) > 0 {
			businesses := make([]Business, len(items))
			for i, item := range items {
				businesses[i] = toBusiness(item)
			}
			return businesses, nil
		}
	}
	return nil, ErrTimeout
}

func (a *ApifyClient) startRun(ctx context.Context, q BusinessQuery) (string, error) {
	var run runResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(runRequest{
			SearchStringsArray:        []string{q.Query + " near " + q.Location},
			MaxCrawledPlacesPerSearch: q.MaxResults,
			Language:                  "en",
			CountryCode:               "US",
		}).
		SetResult(&run).
		Post("/acts/" + GoogleMapsActor + "/runs")
	if err != nil {
		return "", fmt.Errorf("apify request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("apify API error: %s", resp.Status())
	}
	if run.Data.ID == "" {
		return "", errors.New("apify returned no run id")
	}
	return run.Data.ID, nil
}

// toBusiness maps a scraped item, taking the first present field of each pair
func toBusiness(item map[string]interface{}) Business {
	b := Business{
		Name:        firstString(item, "title", "name"),
		Address:     firstString(item, "address", "location"),
		Phone:       firstString(item, "phone", "phoneNumber"),
		Website:     firstString(item, "website", "url"),
		Rating:      firstNumber(item, "rating", "stars"),
		ReviewCount: int(firstNumber(item, "reviewsCount", "reviews")),
		Category:    firstString(item, "categoryName", "type"),
	}
	if b.Name == "" {
		b.Name = "Unknown Business"
	}
	if b.Address == "" {
		b.Address = "Address not available"
	}
	if coords, ok := item["coordinates"].(map[string]interface{}); ok {
		b.Coordinates = &Coordinates{
			Lat: firstNumber(coords, "lat"),
			Lng: firstNumber(coords, "lng"),
		}
	}
	return b
}

func firstString(item map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := item[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(item map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		if n, ok := item[k].(float64); ok && n != 0 {
			return n
		}
	}
	return 0
}
