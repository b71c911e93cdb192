// Package download fetches the MeSH RDF dump over HTTP.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultURL is the NLM location of the MeSH N-Triples dump.
	DefaultURL = "https://nlmpubs.nlm.nih.gov/projects/mesh/rdf/2025/mesh2025.nt.gz"

	// DefaultTimeout bounds a single download attempt.
	DefaultTimeout = 30 * time.Minute

	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 3
)

// ErrHTTPStatus wraps a non-2xx response.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Result describes what Fetch or Gunzip did.
type Result struct {
	Path     string `json:"path"`
	Bytes    int64  `json:"bytes"`
	Skipped  bool   `json:"skipped"` // Destination already existed
	Attempts int    `json:"attempts,omitempty"`
}

// Client downloads files with retry.
type Client struct {
	httpClient *http.Client
	retries    uint64
	initial    time.Duration
	log        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetries sets how many times a failed download is retried.
func WithRetries(n uint64) ClientOption {
	return func(c *Client) {
		c.retries = n
	}
}

// WithInitialInterval sets the first backoff delay (for testing).
func WithInitialInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.initial = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a download client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		retries:    DefaultRetries,
		initial:    2 * time.Second,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads url to dest unless dest already exists. The body is
// written to a temporary file next to dest and renamed on success.
func (c *Client) Fetch(ctx context.Context, url, dest string) (Result, error) {
	if info, err := os.Stat(dest); err == nil {
		c.log.Info("file exists, skipping download", slog.String("path", dest))
		return Result{Path: dest, Bytes: info.Size(), Skipped: true}, nil
	}
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, fmt.Errorf("creating destination directory: %w", err)
		}
	}

	res := Result{Path: dest}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initial
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.retries), ctx)

	err := backoff.RetryNotify(func() error {
		res.Attempts++
		n, err := c.fetchOnce(ctx, url, dest)
		res.Bytes = n
		return err
	}, policy, func(err error, wait time.Duration) {
		c.log.Warn("download failed, retrying",
			slog.String("url", url),
			slog.String("error", err.Error()),
			slog.Duration("wait", wait))
	})
	if err != nil {
		return res, fmt.Errorf("downloading %s: %w", url, err)
	}

	c.log.Info("downloaded", slog.String("path", dest), slog.Int64("bytes", res.Bytes))
	return res, nil
}

func (c *Client) fetchOnce(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
		// Client errors will not change on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return 0, backoff.Permanent(err)
		}
		return 0, err
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("creating %s: %w", tmp, err))
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return n, fmt.Errorf("writing body: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return n, backoff.Permanent(fmt.Errorf("renaming %s: %w", tmp, err))
	}
	return n, nil
}

// Gunzip decompresses src into dest unless dest already exists.
func Gunzip(src, dest string) (Result, error) {
	if info, err := os.Stat(dest); err == nil {
		return Result{Path: dest, Bytes: info.Size(), Skipped: true}, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return Result{}, fmt.Errorf("reading gzip header: %w", err)
	}
	defer gz.Close()

	out, err := os.Create(dest)
	if err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", dest, err)
	}
	n, err := io.Copy(out, gz)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return Result{}, fmt.Errorf("decompressing %s: %w", src, err)
	}
	return Result{Path: dest, Bytes: n}, nil
}
