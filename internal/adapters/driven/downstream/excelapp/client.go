// Package excelapp implements the downstream-consumer port against
// the spreadsheet application's HTTP intake API. Items are submitted
// one per request with bearer authentication and a client-side
// token-bucket throttle.
package excelapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
)

// Default client-side throttle. Kept below the intake API's published
// limit so a full batch send never trips server-side throttling.
const (
	defaultRequestsPerSecond = 5.0
	defaultBurstSize         = 10
)

// Config holds the downstream connection settings.
type Config struct {
	// BaseURL is the intake API root, e.g. https://intake.example.com.
	BaseURL string

	// Token is the bearer token for the intake API.
	Token string

	// RequestsPerSecond overrides the default throttle when positive.
	RequestsPerSecond float64

	// BurstSize overrides the default burst when positive.
	BurstSize int
}

// Client submits items to the intake API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ driven.DownstreamConsumer = (*Client)(nil)

// NewClient creates a new intake client. The bearer token rides on an
// oauth2 static token source so every request carries it.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: downstream base URL is required", domain.ErrInvalidInput)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = defaultBurstSize
	}

	httpClient := http.DefaultClient
	if cfg.Token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// submitPayload is the intake API's item shape.
type submitPayload struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	QualityScore float64  `json:"quality_score"`
	Source       string   `json:"source"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// submitResponse is the intake API's per-item verdict.
type submitResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// SubmitItem delivers one item. Throttled by the client-side token
// bucket; a non-2xx status or accepted=false is a per-item failure.
func (c *Client) SubmitItem(ctx context.Context, item domain.Item) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	body, err := json.Marshal(submitPayload{
		ID:           item.ID,
		Question:     item.Question,
		Answer:       item.Answer,
		QualityScore: item.QualityScore,
		Source:       item.Source,
		Difficulty:   item.Difficulty,
		Tags:         item.Tags,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshalling item: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/items", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmitError{ItemID: item.ID, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SubmitError{ItemID: item.ID, StatusCode: resp.StatusCode}
	}

	var verdict submitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&verdict); err != nil {
		return &SubmitError{ItemID: item.ID, StatusCode: resp.StatusCode, Reason: "unreadable response"}
	}
	if !verdict.Accepted {
		return &SubmitError{ItemID: item.ID, StatusCode: resp.StatusCode, Reason: verdict.Reason}
	}

	return nil
}

// Ping checks intake availability without submitting data.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinging downstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downstream unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
