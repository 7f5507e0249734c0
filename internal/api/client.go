// Package api implements the HTTP client for the holiday-planner backend.
// All methods are context-aware and respect the shared rate limiter. Nothing
// here retries: generation calls are long-running and expensive, and a failed
// call surfaces as a single user-visible error with no partial state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dstrand/wander/internal/trip"
)

const defaultBaseURL = "http://localhost:8000"

// TokenSource supplies the current bearer token, or "" when the user is not
// logged in. The session store implements it; tests use a literal. The token
// is read per request rather than fixed at construction so a login during the
// process lifetime takes effect immediately.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed token. Useful in tests and for
// one-shot calls made before the session store is open.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// User is the authenticated account returned by /auth/me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client is the backend HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     TokenSource
	debug      bool
}

// NewClient creates a Client for the given base URL. tokens may be nil for a
// client that only performs unauthenticated calls.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, ratePerSec float64, debug bool) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		tokens:  tokens,
		debug:   debug,
	}
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

// Login exchanges credentials for a bearer token. The endpoint is
// OAuth2-password-flow shaped: form-encoded username/password.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("login: decoding response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login: no access token in response")
	}
	return out.AccessToken, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	payload := map[string]string{"name": name, "email": email, "password": password}
	if _, err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, payload); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// CurrentUser returns the account for the stored bearer token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("current user: decoding response: %w", err)
	}
	return &u, nil
}

// ─── Generation ───────────────────────────────────────────────────────────────

// CreatePlan asks the backend to generate an itinerary for a destination.
// The raw body is returned untouched; the trip normalizer owns its shape.
func (c *Client) CreatePlan(ctx context.Context, p trip.Params) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/plans", nil, planRequest(p))
	if err != nil {
		return nil, fmt.Errorf("plan generation: %w", err)
	}
	return body, nil
}

// CreateSuggestions asks the backend for destination suggestions from a
// starting location. Same raw-body contract as CreatePlan.
func (c *Client) CreateSuggestions(ctx context.Context, p trip.Params) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/suggestions", nil, suggestRequest(p))
	if err != nil {
		return nil, fmt.Errorf("suggestion generation: %w", err)
	}
	return body, nil
}

// planRequest builds the wire shape for /api/plans (snake_case group_type).
func planRequest(p trip.Params) map[string]any {
	return map[string]any{
		"destination": p.Destination,
		"budget":      p.Budget,
		"people":      p.People,
		"days":        p.Days,
		"group_type":  string(p.GroupType),
	}
}

func suggestRequest(p trip.Params) map[string]any {
	return map[string]any{
		"location":   p.Location,
		"budget":     p.Budget,
		"people":     p.People,
		"days":       p.Days,
		"group_type": string(p.GroupType),
	}
}

// ─── Weather & Places ─────────────────────────────────────────────────────────

// WeatherReport is the non-throwing result of a weather fetch. Failures are
// captured in Err so a missing forecast never blocks the primary result.
type WeatherReport struct {
	Days []trip.WeatherDay `json:"days"`
	Err  string            `json:"error,omitempty"`
}

// Failed reports whether the fetch produced no usable forecast.
func (r WeatherReport) Failed() bool { return r.Err != "" }

// PlacesReport is the non-throwing result of a places fetch.
type PlacesReport struct {
	Result trip.PlacesResult `json:"result"`
	Err    string            `json:"error,omitempty"`
}

// Failed reports whether the fetch produced no usable places.
func (r PlacesReport) Failed() bool { return r.Err != "" }

// FetchWeather retrieves the forecast for a city. It never returns an error:
// any failure is reduced to a sentinel message in the report.
func (c *Client) FetchWeather(ctx context.Context, city string, days int) WeatherReport {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))

	body, err := c.do(ctx, http.MethodGet, "/weather/"+url.PathEscape(city), q, nil, "")
	if err != nil {
		slog.Debug("weather fetch failed", "city", city, "err", err)
		return WeatherReport{Err: "Could not load weather data"}
	}
	forecast, err := trip.NormalizeForecast(body)
	if err != nil {
		slog.Debug("weather normalize failed", "city", city, "err", err)
		return WeatherReport{Err: "Could not load weather data"}
	}
	return WeatherReport{Days: forecast}
}

// FetchPlaces retrieves restaurants and hotels for a city. Same non-throwing
// contract as FetchWeather.
func (c *Client) FetchPlaces(ctx context.Context, city string, limit int) PlacesReport {
	q := url.Values{}
	q.Set("section", "all")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.do(ctx, http.MethodGet, "/places/"+url.PathEscape(city), q, nil, "")
	if err != nil {
		slog.Debug("places fetch failed", "city", city, "err", err)
		return PlacesReport{Err: "Could not load places data"}
	}
	result, err := trip.NormalizePlaces(body)
	if err != nil {
		slog.Debug("places normalize failed", "city", city, "err", err)
		return PlacesReport{Err: "Could not load places data"}
	}
	return PlacesReport{Result: result}
}

// ─── Trips ────────────────────────────────────────────────────────────────────

// ListTrips returns all saved trips for the authenticated user.
func (c *Client) ListTrips(ctx context.Context) ([]trip.RawTripRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/trips", nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	var records []trip.RawTripRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("listing trips: decoding response: %w", err)
	}
	return records, nil
}

// FetchTrip returns a single saved trip by id.
func (c *Client) FetchTrip(ctx context.Context, id string) (*trip.RawTripRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/trips/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetching trip %s: %w", id, err)
	}
	var record trip.RawTripRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("fetching trip %s: decoding response: %w", id, err)
	}
	return &record, nil
}

// DeleteTrip removes a saved trip.
func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/trips/"+url.PathEscape(id), nil, nil, ""); err != nil {
		return fmt.Errorf("deleting trip %s: %w", id, err)
	}
	return nil
}

// SaveTrip persists a generation result so it shows up in the trip list.
// data is the cached session entry (form params plus raw payload).
func (c *Client) SaveTrip(ctx context.Context, kind trip.Kind, p trip.Params, data any) error {
	payload := map[string]any{
		"trip_type":  string(kind),
		"budget":     p.Budget,
		"people":     p.People,
		"days":       p.Days,
		"group_type": string(p.GroupType),
		"data":       data,
	}
	if p.Destination != "" {
		payload["destination"] = p.Destination
	}
	if p.Location != "" {
		payload["location"] = p.Location
	}
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/trips/save", nil, payload); err != nil {
		return fmt.Errorf("saving trip: %w", err)
	}
	return nil
}

// ─── Low-level HTTP ───────────────────────────────────────────────────────────

// doJSON marshals payload and performs a JSON-bodied request.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	return c.do(ctx, method, path, query, bytes.NewReader(data), "application/json")
}

// do performs a single request, attaching the bearer token when present and
// mapping the response status onto the error taxonomy. The body is returned
// raw; callers decode it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "wander-cli/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if c.debug {
		slog.Debug("backend request", "method", method, "url", reqURL,
			"request_id", req.Header.Get("X-Request-ID"))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if c.debug {
		slog.Debug("backend response", "status", resp.StatusCode, "bytes", len(respBody))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &AuthError{Message: apiMessage(respBody)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Message: apiMessage(respBody)}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &ValidationError{Status: resp.StatusCode, Message: apiMessage(respBody)}
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}
