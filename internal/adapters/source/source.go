// Package source reads the raw dataset text from a file or an HTTP endpoint.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// maxBodyBytes caps a single fetch; the dataset is held in memory.
const maxBodyBytes = 64 << 20

// Source yields the full dataset text.
type Source interface {
	Fetch(ctx context.Context) (string, error)
	// Describe names the source for logs and dataset metadata.
	Describe() string
}

// New picks a Source for location: http(s) URLs use HTTPSource, anything
// else is treated as a file path.
func New(location string, timeout time.Duration) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return NewFileSource(location)
}

// FileSource reads a local file.
type FileSource struct {
	path string
}

// NewFileSource constructs a FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the whole file.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	b, err := io.ReadAll(io.LimitReader(f, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrUnavailable, s.path, err)
	}
	return string(b), nil
}

// Describe returns the file path.
func (s *FileSource) Describe() string { return s.path }

// HTTPSource fetches the dataset with a GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource constructs an HTTPSource with a per-request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs the GET and returns the body on a 2xx response.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: GET %s: status %d", ErrUnavailable, s.url, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	return string(b), nil
}

// Describe returns the URL.
func (s *HTTPSource) Describe() string { return s.url }

// Static serves fixed text. Used by the CLI for stdin and by tests.
type Static struct {
	Name string
	Text string
}

// Fetch returns the fixed text.
func (s Static) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return s.Text, nil
}

// Describe returns the configured name.
func (s Static) Describe() string { return s.Name }
