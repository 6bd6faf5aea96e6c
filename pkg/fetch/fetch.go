// Package fetch retrieves documents and binaries from external sources.
// Redirects are followed manually so relative locations resolve against the previous
// request and the number of hops stays bounded.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
)

// DefaultUserAgent is a desktop browser identifier
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

var (
	// ErrFetch is wrapped by every FetchError
	ErrFetch = errors.New("fetch failed")
	// ErrTooManyRedirects is returned when the redirect chain exceeds the configured bound
	ErrTooManyRedirects = errors.New("too many redirects")
)

// FetchError describes a failed fetch of a single URL
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap exposes both ErrFetch and the underlying cause
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

// Result is a fetched body with the URL it was finally served from
type Result struct {
	Body        []byte
	FinalURL    string
	ContentType string
}

// Config holds transport settings, zero values get defaults
type Config struct {
	DocumentTimeout time.Duration
	BinaryTimeout   time.Duration
	MaxRedirects    int
	UserAgent       string
	MaxDocumentSize int64
	MaxBinarySize   int64
}

// Client fetches URLs with browser-like headers and bounded redirects
type Client struct {
	client *http.Client
	cfg    Config
}

// New makes a Client
func New(cfg Config) *Client {
	if cfg.DocumentTimeout == 0 {
		cfg.DocumentTimeout = 30 * time.Second
	}
	if cfg.BinaryTimeout == 0 {
		cfg.BinaryTimeout = 15 * time.Second
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = 5
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxDocumentSize == 0 {
		cfg.MaxDocumentSize = 10 << 20
	}
	if cfg.MaxBinarySize == 0 {
		cfg.MaxBinarySize = 5 << 20
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			// redirects are handled by do to resolve locations and count hops
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// FetchDocument retrieves an HTML/XML document. Any failure is returned as *FetchError.
func (c *Client) FetchDocument(ctx context.Context, rawURL string) (*Result, error) {
	return c.do(ctx, rawURL, c.cfg.DocumentTimeout, acceptDocument, c.cfg.MaxDocumentSize)
}

// FetchBinary retrieves an image or other binary payload.
// It fails soft: nil means the caller should skip whatever needed the payload.
func (c *Client) FetchBinary(ctx context.Context, rawURL string) []byte {
	res, err := c.do(ctx, rawURL, c.cfg.BinaryTimeout, acceptBinary, c.cfg.MaxBinarySize)
	if err != nil {
		lgr.Printf("[WARN] binary fetch failed, %v", err)
		return nil
	}
	if len(res.Body) == 0 {
		lgr.Printf("[WARN] binary fetch returned empty body for %s", rawURL)
		return nil
	}
	if !isImage(res.ContentType, res.Body) {
		lgr.Printf("[WARN] binary fetch of %s returned %q, not an image", rawURL, res.ContentType)
		return nil
	}
	return res.Body
}

// isImage accepts a body sniffed as an image, or one the server declares as an image
// when sniffing can't tell (svg, avif)
func isImage(contentType string, body []byte) bool {
	sniffed := http.DetectContentType(body)
	if strings.HasPrefix(sniffed, "image/") {
		return true
	}
	if !strings.HasPrefix(sniffed, "application/octet-stream") && !strings.HasPrefix(sniffed, "text/xml") &&
		!strings.HasPrefix(sniffed, "text/plain") {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.HasPrefix(mediaType, "image/")
}

func (c *Client) do(ctx context.Context, rawURL string, timeout time.Duration, accept string, maxSize int64) (*Result, error) {
	current, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("parse url: %w", err)}
	}
	if (current.Scheme != "http" && current.Scheme != "https") || current.Host == "" {
		return nil, &FetchError{URL: rawURL, Err: errors.New("invalid url")}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for hop := 0; ; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current.String(), http.NoBody)
		if err != nil {
			return nil, &FetchError{URL: current.String(), Err: fmt.Errorf("create request: %w", err)}
		}
		addBrowserHeaders(req, c.cfg.UserAgent, accept)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, &FetchError{URL: current.String(), Err: err}
		}

		if isRedirect(resp.StatusCode) {
			location := resp.Header.Get("Location")
			drainAndClose(resp.Body)
			if location == "" {
				return nil, &FetchError{URL: current.String(), Err: fmt.Errorf("redirect %d without location", resp.StatusCode)}
			}
			if hop >= c.cfg.MaxRedirects {
				return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("%w: more than %d hops", ErrTooManyRedirects, c.cfg.MaxRedirects)}
			}
			next, err := current.Parse(location)
			if err != nil {
				return nil, &FetchError{URL: current.String(), Err: fmt.Errorf("resolve location %q: %w", location, err)}
			}
			lgr.Printf("[DEBUG] redirect %s -> %s", current, next)
			current = next
			continue
		}

		if resp.StatusCode != http.StatusOK {
			drainAndClose(resp.Body)
			return nil, &FetchError{URL: current.String(), StatusCode: resp.StatusCode}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
		_ = resp.Body.Close()
		if err != nil {
			return nil, &FetchError{URL: current.String(), Err: fmt.Errorf("read body: %w", err)}
		}
		if int64(len(body)) > maxSize {
			return nil, &FetchError{URL: current.String(), Err: fmt.Errorf("response exceeds %d bytes", maxSize)}
		}

		return &Result{Body: body, FinalURL: current.String(), ContentType: resp.Header.Get("Content-Type")}, nil
	}
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
