package ticket

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
	"time"
)

// Client is the Vetiver ticket API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new ticket API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://tickets.example.com")
//   - token: The admin bearer token; leave empty for read-only access
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create stores a new ticket and returns it with its assigned id and
// version token.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Ticket, error) {
	url := fmt.Sprintf("%s/tickets", c.baseURL)

	var created Ticket
	if err := c.doRequest(ctx, http.MethodPost, url, req, &created); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &created, nil
}

// Get retrieves a single ticket by id, including trashed ones.
func (c *Client) Get(ctx context.Context, id uint) (*Ticket, error) {
	url := fmt.Sprintf("%s/tickets/%d", c.baseURL, id)

	var t Ticket
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &t); err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// List retrieves one page of tickets.
func (c *Client) List(ctx context.Context, opts ListOptions) (*TicketPage, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.Trash {
		query.Set("trash", "true")
	}
	if opts.From != "" {
		query.Set("from", opts.From)
	}
	if opts.To != "" {
		query.Set("to", opts.To)
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.Search != "" {
		query.Set("q", opts.Search)
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.Direction != "" {
		query.Set("direction", opts.Direction)
	}

	endpoint := fmt.Sprintf("%s/tickets", c.baseURL)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var page TicketPage
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return &page, nil
}

// Update replaces a ticket's data fields. A version mismatch returns an
// *APIError of type "conflict"; use ConflictData to read the server's copy
// and rebase.
func (c *Client) Update(ctx context.Context, id uint, req UpdateRequest) (*Ticket, error) {
	url := fmt.Sprintf("%s/tickets/%d", c.baseURL, id)

	var updated Ticket
	if err := c.doRequest(ctx, http.MethodPut, url, req, &updated); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return &updated, nil
}

// Delete moves a ticket to the trash. Deleting an already trashed ticket
// succeeds with Already set.
func (c *Client) Delete(ctx context.Context, id uint) (*LifecycleResult, error) {
	url := fmt.Sprintf("%s/tickets/%d", c.baseURL, id)

	var result LifecycleResult
	if err := c.doRequest(ctx, http.MethodDelete, url, nil, &result); err != nil {
		return nil, fmt.Errorf("delete ticket: %w", err)
	}
	return &result, nil
}

// Restore moves a trashed ticket back to the active set. Restoring an
// active ticket succeeds with Already set.
func (c *Client) Restore(ctx context.Context, id uint) (*LifecycleResult, error) {
	url := fmt.Sprintf("%s/tickets/%d/restore", c.baseURL, id)

	var result LifecycleResult
	if err := c.doRequest(ctx, http.MethodPost, url, nil, &result); err != nil {
		return nil, fmt.Errorf("restore ticket: %w", err)
	}
	return &result, nil
}

// Purge permanently removes a ticket. The record is gone afterwards; there
// is no undo.
func (c *Client) Purge(ctx context.Context, id uint) error {
	url := fmt.Sprintf("%s/tickets/%d/purge", c.baseURL, id)

	if err := c.doRequest(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("purge ticket: %w", err)
	}
	return nil
}

// Import merges records into the store and returns the per-class counts.
func (c *Client) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	url := fmt.Sprintf("%s/tickets/import", c.baseURL)

	var result ImportResult
	if err := c.doRequest(ctx, http.MethodPost, url, req, &result); err != nil {
		return nil, fmt.Errorf("import tickets: %w", err)
	}
	return &result, nil
}

// Stats retrieves the aggregate statistics report.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	url := fmt.Sprintf("%s/tickets/stats", c.baseURL)

	var stats Stats
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &stats); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &stats, nil
}

// History retrieves the audit trail of a ticket, newest first. A limit of 0
// uses the server default.
func (c *Client) History(ctx context.Context, id uint, limit int) ([]Event, error) {
	url := fmt.Sprintf("%s/tickets/%d/history", c.baseURL, id)
	if limit > 0 {
		url += "?limit=" + strconv.Itoa(limit)
	}

	var events []Event
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &events); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return events, nil
}

// APIError is a structured error returned by the server.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Details    string
	Data       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d type=%s message=%s", e.StatusCode, e.Type, e.Message)
}

// IsConflict reports whether err is a version-conflict API error.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == "conflict"
}

// IsNotFound reports whether err is a not-found API error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == "not_found"
}

// IsDeleted reports whether err says the record is in the trash and must be
// restored before the attempted write.
func IsDeleted(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == "deleted"
}

// ConflictPayload extracts the conflict payload from a version-conflict
// error. It returns nil when err is not a conflict or carries no payload.
func ConflictPayload(err error) *ConflictData {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Type != "conflict" || len(apiErr.Data) == 0 {
		return nil
	}
	var data ConflictData
	if jsonErr := json.Unmarshal(apiErr.Data, &data); jsonErr != nil {
		return nil
	}
	return &data
}

// doRequest performs an HTTP request and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFromBody(resp.StatusCode, respBody)
	}

	if result == nil {
		return nil
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}

	if apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

// apiErrorFromBody builds an *APIError from a non-2xx response. Bodies that
// do not carry the standard error envelope fall back to the raw text.
func apiErrorFromBody(status int, body []byte) error {
	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil || apiResp.Error == nil {
		return &APIError{StatusCode: status, Type: "error", Message: string(body)}
	}
	return &APIError{
		StatusCode: status,
		Type:       apiResp.Error.Type,
		Message:    apiResp.Error.Message,
		Details:    apiResp.Error.Details,
		Data:       apiResp.Error.Data,
	}
}
