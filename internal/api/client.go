package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Config holds the backend connection parameters.
type Config struct {
	BaseURL   string // base URL including the /api prefix, no trailing slash
	TimeoutMs int    // per-request timeout
}

// Client issues authenticated requests against the receipts backend. It
// attaches the bearer token when one is set and normalizes failures into the
// sentinel errors in errors.go. Safe for use from concurrent tea.Cmd
// goroutines.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client for the given backend.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 15000
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// SetToken arms the client with a bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorResponse is the backend's failure body shape.
type errorResponse struct {
	Error string `json:"error"`
}

// do performs one request/response round trip. body and out may be nil.
// Non-2xx responses become *APIError carrying the backend's message; 401
// additionally wraps ErrUnauthorized so callers can detect expired tokens.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, endpoint, query, body, out)
	latency := time.Since(start).Milliseconds()

	status := 0
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	} else if err == nil {
		status = http.StatusOK
	}
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Endpoint:  endpoint,
		Status:    status,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.cfg.BaseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		if isConnectionError(err) {
			return ErrUnavailable
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		apiErr := &APIError{Status: resp.StatusCode, Message: errResp.Error}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// Login authenticates against POST /login. A 401 is reported as
// ErrInvalidCredentials. The returned token is NOT armed automatically;
// session lifecycle is the auth service's concern.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{Username: username, Password: password}, &result)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &result, nil
}

// UpdatePassword changes the logged-in user's password via POST
// /update-password. All validation happens server-side.
func (c *Client) UpdatePassword(ctx context.Context, current, newPassword, confirm string) error {
	body := updatePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	}
	return c.do(ctx, http.MethodPost, "/update-password", nil, body, &messageResponse{})
}

// LaborRate fetches the current per-kilogram labor rate.
func (c *Client) LaborRate(ctx context.Context) (*LaborRate, error) {
	var rate LaborRate
	if err := c.do(ctx, http.MethodGet, "/labor-rate", nil, nil, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// SetLaborRate pushes a new per-kilogram labor rate via PUT /labor-rate.
func (c *Client) SetLaborRate(ctx context.Context, ratePerKg float64) error {
	return c.do(ctx, http.MethodPut, "/labor-rate", nil, LaborRate{RatePerKg: ratePerKg}, &messageResponse{})
}

// Receipts fetches receipts matching the query from GET /receipts.
func (c *Client) Receipts(ctx context.Context, q ReceiptQuery) ([]Receipt, error) {
	var receipts []Receipt
	if err := c.do(ctx, http.MethodGet, "/receipts", q.Values(), nil, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// CreateReceipt submits a new receipt via POST /receipts. The backend stamps
// the date/time and computes all totals.
func (c *Client) CreateReceipt(ctx context.Context, r NewReceipt) (*CreateReceiptResult, error) {
	var result CreateReceiptResult
	if err := c.do(ctx, http.MethodPost, "/receipts", nil, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteReceipt removes a receipt by id via DELETE /receipts/{id}.
func (c *Client) DeleteReceipt(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/receipts/%d", id), nil, nil, &messageResponse{})
}

// Summary fetches the aggregate for one date from GET /summary. An empty
// date means "today" (server-side clock).
func (c *Client) Summary(ctx context.Context, date string) (*DailySummary, error) {
	var query url.Values
	if date != "" {
		query = url.Values{"date": {date}}
	}
	var summary DailySummary
	if err := c.do(ctx, http.MethodGet, "/summary", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// MonthlySummary fetches the month aggregate and daily breakdown from
// GET /monthly-summary.
func (c *Client) MonthlySummary(ctx context.Context, year, month int) (*MonthlySummary, error) {
	query := url.Values{
		"year":  {fmt.Sprintf("%d", year)},
		"month": {fmt.Sprintf("%d", month)},
	}
	var summary MonthlySummary
	if err := c.do(ctx, http.MethodGet, "/monthly-summary", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Export requests a CSV export from GET /export with the same filter
// parameters as Receipts. The backend produces the final CSV bytes and the
// suggested filename.
func (c *Client) Export(ctx context.Context, q ReceiptQuery) (*ExportResult, error) {
	var result ExportResult
	if err := c.do(ctx, http.MethodGet, "/export", q.Values(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportAll requests a CSV export of every receipt, with no filter
// parameters at all.
func (c *Client) ExportAll(ctx context.Context) (*ExportResult, error) {
	var result ExportResult
	if err := c.do(ctx, http.MethodGet, "/export", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks backend availability via GET /health (unauthenticated).
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	var result HealthResult
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Available reports whether the backend answers its health check.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.Health(ctx)
	return err == nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
