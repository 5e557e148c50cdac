package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tapright/waitlist-api/pkg/models"
)

// Postgres unique_violation, surfaced by PostgREST in the error body
const uniqueViolationCode = "23505"

// ErrInvalidCount is returned when the content-range header carries no usable total
var ErrInvalidCount = errors.New("unable to parse waitlist count")

// APIError is a non-success response from the PostgREST API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("supabase request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("supabase request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the waitlist table through the Supabase REST API
type Client interface {
	Configured() bool
	InsertSignup(ctx context.Context, record models.SignupRecord) error
	CountSignups(ctx context.Context) (int, error)
}

type clientImpl struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
}

// NewClient creates a new Supabase client. Any empty argument leaves the
// client unconfigured.
func NewClient(baseURL, apiKey, table string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		table:      table,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) Configured() bool {
	return c.baseURL != "" && c.apiKey != "" && c.table != ""
}

func (c *clientImpl) tableURL() string {
	return fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(c.table))
}

func (c *clientImpl) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *clientImpl) InsertSignup(ctx context.Context, record models.SignupRecord) error {
	jsonPayload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(), bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error inserting signup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	if isUniqueViolation(body) {
		return fmt.Errorf("%w: %w", models.ErrDuplicateSignup, apiErr)
	}
	return apiErr
}

func (c *clientImpl) CountSignups(ctx context.Context) (int, error) {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL()+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("error creating request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error counting signups: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return 0, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return ParseContentRangeTotal(resp.Header.Get("Content-Range"))
}

// ParseContentRangeTotal extracts the total from a PostgREST content-range
// header such as "0-24/42" or "*/42".
func ParseContentRangeTotal(header string) (int, error) {
	_, total, found := strings.Cut(header, "/")
	if !found {
		return 0, fmt.Errorf("%w from content-range header %q", ErrInvalidCount, header)
	}
	n, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w from content-range header %q", ErrInvalidCount, header)
	}
	return n, nil
}

// isUniqueViolation checks the structured PostgREST error code first and
// falls back to the message markers older deployments return.
func isUniqueViolation(body []byte) bool {
	var pgErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &pgErr); err == nil && pgErr.Code == uniqueViolationCode {
		return true
	}
	text := string(body)
	return strings.Contains(text, "duplicate key") || strings.Contains(text, "unique constraint")
}
