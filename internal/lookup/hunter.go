// ABOUTME: Hunter.io email finder client
// ABOUTME: Resolves a likely address from domain and name with a confidence score
package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultHunterBaseURL is the public Hunter.io API root
const DefaultHunterBaseURL = "https://api.hunter.io/v2"

// EmailQuery identifies the person to look up. Domain is required.
type EmailQuery struct {
	Domain    string `json:"domain"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
}

// Verification is Hunter's deliverability verdict
type Verification struct {
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
}

// EmailResult is a found contact
type EmailResult struct {
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Position     string       `json:"position"`
	Department   string       `json:"department"`
	Confidence   int          `json:"confidence"`
	Type         string       `json:"type"`
	LinkedIn     string       `json:"linkedin"`
	Verification Verification `json:"verification"`
}

type hunterResponse struct {
	Data   *EmailResult `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Details string `json:"details"`
	} `json:"errors"`
}

// HunterClient calls the email-finder endpoint
type HunterClient struct {
	client *resty.Client
	apiKey string
}

// NewHunterClient creates a client; an empty baseURL uses the public API
func NewHunterClient(apiKey, baseURL string, timeout time.Duration) *HunterClient {
	if baseURL == "" {
		baseURL = DefaultHunterBaseURL
	}
	return &HunterClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		apiKey: apiKey,
	}
}

// FindEmail looks up the most likely address for the query
func (h *HunterClient) FindEmail(ctx context.Context, q EmailQuery) (*EmailResult, error) {
	if h.apiKey == "" {
		return nil, fmt.Errorf("hunter: %w", ErrMissingAPIKey)
	}
	if strings.TrimSpace(q.Domain) == "" {
		return nil, errors.New("domain is required")
	}

	params := map[string]string{
		"domain":  strings.TrimSpace(q.Domain),
		"api_key": h.apiKey,
	}
	if q.FirstName != "" {
		params["first_name"] = q.FirstName
	}
	if q.LastName != "" {
		params["last_name"] = q.LastName
	}
	if q.Company != "" {
		params["company"] = q.Company
	}

	var body hunterResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		SetError(&body).
		Get("/email-finder")
	if err != nil {
		return nil, fmt.Errorf("hunter request failed: %w", err)
	}
	if resp.IsError() {
		detail := resp.Status()
		if len(body.Errors) > 0 {
			detail = body.Errors[0].Details
		}
		return nil, fmt.Errorf("hunter API error (%d): %s", resp.StatusCode(), detail)
	}
	if body.Data == nil || body.Data.Email == "" {
		return nil, ErrNotFound
	}
	return body.Data, nil
}
