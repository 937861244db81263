package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Backend endpoint paths.
const (
	PathRegistry = "/api/registry"
	PathStatus   = "/api/status"
	PathUp       = "/api/up"
	PathStore    = "/api/store/"
	PathVersion  = "/api/version"
)

// Client is a thin read-only HTTP client for the store registry backend.
// It never retries and applies no timeout of its own; callers bound each
// call through the context.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL (e.g. http://host:8080).
// A nil httpClient uses a fresh http.Client without a timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Registry fetches the list of known stores.
func (c *Client) Registry(ctx context.Context) (Registry, error) {
	var resp Registry
	err := c.FetchJSON(ctx, PathRegistry, &resp)
	return resp, err
}

// Status fetches the backend status snapshot.
func (c *Client) Status(ctx context.Context) (StatusSnapshot, error) {
	var resp StatusSnapshot
	err := c.FetchJSON(ctx, PathStatus, &resp)
	return resp, err
}

// Up fetches the stores currently reported up.
func (c *Client) Up(ctx context.Context) (UpSnapshot, error) {
	var resp UpSnapshot
	err := c.FetchJSON(ctx, PathUp, &resp)
	return resp, err
}

// Store fetches the detail payload for one store.
func (c *Client) Store(ctx context.Context, name string) (StoreDetail, error) {
	var resp StoreDetail
	err := c.FetchJSON(ctx, StorePath(name), &resp)
	return resp, err
}

// Version fetches the backend version.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var resp VersionInfo
	err := c.FetchJSON(ctx, PathVersion, &resp)
	return resp, err
}

// StorePath returns the detail path for a store with the name escaped as a
// single path segment.
func StorePath(name string) string {
	return PathStore + url.PathEscape(name)
}

// FetchJSON performs one GET of path and decodes the body into out.
func (c *Client) FetchJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Kind: KindRequestFailed, Path: path, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindRequestFailed, Path: path, Message: err.Error(), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return &Error{
			Kind:    KindRequestFailed,
			Path:    path,
			Status:  res.StatusCode,
			Message: statusText(res),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &Error{Kind: KindRequestFailed, Path: path, Status: res.StatusCode, Message: err.Error(), Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindParseError, Path: path, Status: res.StatusCode, Message: err.Error(), Err: err}
	}
	return nil
}

// statusText mirrors what a browser exposes as statusText: the reason
// phrase without the numeric code.
func statusText(res *http.Response) string {
	if _, reason, ok := strings.Cut(res.Status, " "); ok && strings.TrimSpace(reason) != "" {
		return strings.TrimSpace(reason)
	}
	if text := http.StatusText(res.StatusCode); text != "" {
		return text
	}
	return res.Status
}
