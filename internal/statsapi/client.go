package statsapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recorder receives one observation per upstream call.
type Recorder interface {
	RecordUpstreamCall(endpoint string, duration time.Duration, err error)
}

// Config controls how the client reaches the stats API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    Recorder
}

// Client fetches typed records from the NHL stats API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    Recorder
}

// NewClient constructs a stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// get issues one GET against path and decodes the body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if c.metrics != nil {
			c.metrics.RecordUpstreamCall(endpoint, elapsed, err)
		}
		if err != nil {
			logging.Warn(c.logger, "statsapi request failed",
				logging.FieldEndpoint, endpoint,
				logging.FieldDurationMS, elapsed.Milliseconds(),
				logging.FieldError, err,
			)
			return
		}
		logging.Debug(c.logger, "statsapi request",
			logging.FieldEndpoint, endpoint,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("statsapi %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("statsapi %s: decode: %w", endpoint, err)
	}
	return nil
}
