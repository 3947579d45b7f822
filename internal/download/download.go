// Package download fetches package artifacts and catalogs over HTTP.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	terrors "github.com/ravendevteam/toolbox/internal/errors"
)

const (
	// DefaultTimeout bounds a whole transfer, body included
	DefaultTimeout = 30 * time.Minute
	// MaxCatalogSize caps catalog documents read into memory
	MaxCatalogSize = 16 << 20
)

// ProgressFunc receives the bytes written so far and the expected total.
// total is -1 when the server did not announce a length.
type ProgressFunc func(written, total int64)

// Error describes a failed transfer. It matches both ErrDownloadFailed and the cause.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{terrors.ErrDownloadFailed, e.Err}
}

// Client performs single-attempt downloads
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a client identifying itself as userAgent
func New(userAgent string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) open(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &Error{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return resp, nil
}

// Fetch streams url into destPath, calling progress as bytes arrive.
// The file only appears at destPath once the body was fully received.
func (c *Client) Fetch(ctx context.Context, url, destPath string, progress ProgressFunc) error {
	resp, err := c.open(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return &Error{URL: url, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	tmpPath := destPath + ".part"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return &Error{URL: url, Err: fmt.Errorf("create temp file: %w", err)}
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	var dst io.Writer = tmpFile
	if progress != nil {
		dst = &progressWriter{w: tmpFile, total: resp.ContentLength, fn: progress}
		progress(0, resp.ContentLength)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return &Error{URL: url, Err: err}
	}

	if err := tmpFile.Close(); err != nil {
		return &Error{URL: url, Err: fmt.Errorf("close temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return &Error{URL: url, Err: fmt.Errorf("rename temp file: %w", err)}
	}

	cleanupNeeded = false
	return nil
}

// Get reads a small document such as the package catalog into memory
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxCatalogSize+1))
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	if len(data) > MaxCatalogSize {
		return nil, &Error{URL: url, Err: fmt.Errorf("document larger than %d bytes", MaxCatalogSize)}
	}
	return data, nil
}

type progressWriter struct {
	w       io.Writer
	written int64
	total   int64
	fn      ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.fn(p.written, p.total)
	return n, err
}
