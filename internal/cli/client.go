package cli

import (
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

	service "github.com/okian/rankview/internal/app"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/internal/domain/types"
)

// ErrRemote reports a non-2xx answer from a rankview server.
var ErrRemote = errors.New("remote request failed")

// Client talks to a running rankview server.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Query fetches one page of the server's view.
func (c *Client) Query(ctx context.Context, view query.ViewState, pageSize int) (types.Result, error) {
	params := url.Values{}
	if view.Search != "" {
		params.Set("q", view.Search)
	}
	params.Set("sort", string(view.Column))
	params.Set("dir", string(view.Direction))
	params.Set("page", strconv.Itoa(view.Page))
	if pageSize > 0 {
		params.Set("size", strconv.Itoa(pageSize))
	}

	var res types.Result
	err := c.do(ctx, http.MethodGet, "/api/query?"+params.Encode(), &res)
	return res, err
}

// Reload asks the server to re-read its dataset.
func (c *Client) Reload(ctx context.Context) (service.LoadReport, error) {
	var report service.LoadReport
	err := c.do(ctx, http.MethodPost, "/api/reload", &report)
	return report, err
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %d %s: %s", ErrRemote, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%w: status %d", ErrRemote, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}
