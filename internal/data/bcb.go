package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"investeasy/internal/model"

	"github.com/rs/zerolog"
)

// DefaultBCBBaseURL is the public host of the Banco Central SGS API.
const DefaultBCBBaseURL = "https://api.bcb.gov.br"

// BCBClient fetches time-series observations from the BCB SGS API.
type BCBClient struct {
	BaseURL string
	Client  *http.Client
	log     zerolog.Logger
}

// NewBCBClient creates a new SGS client.
// If baseURL is empty, defaults to DefaultBCBBaseURL. A non-positive timeout
// defaults to 5 seconds.
func NewBCBClient(baseURL string, timeout time.Duration, log zerolog.Logger) *BCBClient {
	if baseURL == "" {
		baseURL = DefaultBCBBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BCBClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "bcb-sgs").Logger(),
	}
}

// SeriesQuery selects the series and how many trailing observations of each to fetch.
type SeriesQuery struct {
	SeriesIDs []int // e.g. 11 (Selic), 12 (CDI)
	Last      int   // most recent N observations per series
}

// BCBError represents a non-success response from the SGS API.
type BCBError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *BCBError) Error() string {
	return e.Message
}

// FetchLatest returns the trailing observations of the requested series, in the
// order the API sent them.
func (c *BCBClient) FetchLatest(ctx context.Context, q SeriesQuery) ([]model.Observation, error) {
	if len(q.SeriesIDs) == 0 {
		return nil, fmt.Errorf("at least one series id is required")
	}
	if q.Last <= 0 {
		return nil, fmt.Errorf("last must be > 0")
	}

	ids := make([]string, len(q.SeriesIDs))
	for i, id := range q.SeriesIDs {
		ids[i] = strconv.Itoa(id)
	}

	// Build URL: /dados/serie/bcdata.sgs.{ids}/dados/ultimos/{n}
	path := fmt.Sprintf("/dados/serie/bcdata.sgs.%s/dados/ultimos/%d", strings.Join(ids, ","), q.Last)
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	query := u.Query()
	query.Set("formato", "json")
	u.RawQuery = query.Encode()

	log := c.log.With().Str("path", u.Path).Logger()
	log.Debug().Msg("Request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Warn().Err(err).Dur("duration", duration).Msg("Request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("Response")

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &BCBError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusNotFound:
		return nil, &BCBError{
			StatusCode: resp.StatusCode,
			Code:       "SERIES_NOT_FOUND",
			Message:    fmt.Sprintf("series %s not found", strings.Join(ids, ",")),
		}
	default:
		return nil, &BCBError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result []model.Observation
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Warn().Err(err).Msg("Error decoding response")
		return nil, parseErrorf("decode response: %v", err)
	}

	log.Debug().Int("observations", len(result)).Msg("Success")
	return result, nil
}
