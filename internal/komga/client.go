package komga

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	seriesPageSize = 2000
	booksPageSize  = 1000

	// Connection-level retry budget, matching the original collaborator's
	// transport adapter. HTTP error statuses are never retried.
	maxAttempts = 3

	defaultTimeout = 30 * time.Second
	userAgent      = "shelfsync/1.0"
)

// ErrAuthentication marks a failed session login. It is the only error
// class callers treat as fatal to a whole run.
var ErrAuthentication = errors.New("komga authentication failed")

// Client is an authenticated Komga API client. Construct it once, call
// Login once, then reuse it for every request; the session cookie lives
// in the client's cookie jar.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. A cookie jar is
// installed if the supplied client lacks one, since the session depends
// on it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a client rooted at the server's /api prefix.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("komga base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		client.httpClient.Jar = jar
	}
	return client, nil
}

// Login establishes the session cookie using basic auth. The server
// answers 204 on success; anything else is an authentication failure.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/login/set-cookie", nil)
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: status %d", ErrAuthentication, resp.StatusCode)
	}
	return nil
}

// ListSeries returns every non-deleted series in the library, fetching
// pages until one comes back shorter than the page size. A mid-listing
// failure returns the pages already fetched alongside the error so the
// caller can continue with partial results.
func (c *Client) ListSeries(ctx context.Context, libraryID string) ([]Series, error) {
	var all []Series
	for page := 0; ; page++ {
		var result struct {
			Content []Series `json:"content"`
		}
		condition := listCondition("libraryId", libraryID)
		if err := c.postJSON(ctx, "/v1/series/list", page, seriesPageSize, condition, &result); err != nil {
			return all, fmt.Errorf("list series in library %s (page %d): %w", libraryID, page, err)
		}
		all = append(all, result.Content...)
		if len(result.Content) < seriesPageSize {
			return all, nil
		}
	}
}

// ListBooks returns every non-deleted book of a series, with the same
// pagination and partial-result semantics as ListSeries.
func (c *Client) ListBooks(ctx context.Context, seriesID string) ([]Book, error) {
	var all []Book
	for page := 0; ; page++ {
		var result struct {
			Content []Book `json:"content"`
		}
		condition := listCondition("seriesId", seriesID)
		if err := c.postJSON(ctx, "/v1/books/list", page, booksPageSize, condition, &result); err != nil {
			return all, fmt.Errorf("list books in series %s (page %d): %w", seriesID, page, err)
		}
		all = append(all, result.Content...)
		if len(result.Content) < booksPageSize {
			return all, nil
		}
	}
}

// GetSeries fetches a single series by identifier.
func (c *Client) GetSeries(ctx context.Context, seriesID string) (*Series, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/series/"+url.PathEscape(seriesID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", seriesID, err)
	}
	var series Series
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return nil, fmt.Errorf("decode series %s: %w", seriesID, err)
	}
	return &series, nil
}

// UpdateSeriesMetadata applies a sparse metadata patch to a series.
func (c *Client) UpdateSeriesMetadata(ctx context.Context, seriesID string, update SeriesMetadataUpdate) error {
	if err := c.patchJSON(ctx, "/v1/series/"+url.PathEscape(seriesID)+"/metadata", update); err != nil {
		return fmt.Errorf("update series %s metadata: %w", seriesID, err)
	}
	return nil
}

// UpdateBookMetadata applies a sparse metadata patch to a book.
func (c *Client) UpdateBookMetadata(ctx context.Context, bookID string, update BookMetadataUpdate) error {
	if err := c.patchJSON(ctx, "/v1/books/"+url.PathEscape(bookID)+"/metadata", update); err != nil {
		return fmt.Errorf("update book %s metadata: %w", bookID, err)
	}
	return nil
}

// DownloadThumbnail fetches the series poster image bytes.
func (c *Client) DownloadThumbnail(ctx context.Context, seriesID string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/series/"+url.PathEscape(seriesID)+"/thumbnail", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail for series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("fetch thumbnail for series %s: %w", seriesID, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read thumbnail for series %s: %w", seriesID, err)
	}
	return data, nil
}

// listCondition builds the search body shared by the list endpoints:
// match on one identifier field and exclude deleted records.
func listCondition(field, value string) map[string]any {
	return map[string]any{
		"condition": map[string]any{
			"allOf": []any{
				map[string]any{field: map[string]any{"operator": "is", "value": value}},
				map[string]any{"deleted": map[string]any{"operator": "isFalse"}},
			},
		},
	}
}

func (c *Client) postJSON(ctx context.Context, path string, page, size int, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	query := url.Values{}
	query.Set("size", strconv.Itoa(size))
	query.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = query.Encode()

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) patchJSON(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPatch, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes a request, retrying connection-level failures. Responses
// with error statuses are returned as-is for the caller to classify.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		attemptReq := req
		if attempt > 0 {
			attemptReq = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewind request body: %w", err)
				}
				attemptReq.Body = body
			}
		}
		resp, err := c.httpClient.Do(attemptReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", ErrAuthentication, resp.StatusCode)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail != "" {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}
