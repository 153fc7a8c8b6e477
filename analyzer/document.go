package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent is sent with every fetch to avoid being blocked by some websites.
const DefaultUserAgent = "SEOAnalyzer/1.0"

// Document is a read-only view of one fetched page. Extractors share a single
// Document and must never modify it or the goquery tree it wraps.
type Document struct {
	URL          string
	Base         *url.URL
	Body         []byte
	StatusCode   int
	ResponseTime float64 // seconds from request start to response headers
	FetchedAt    time.Time

	doc  *goquery.Document
	text string
}

// NewDocument parses body as HTML for the page at pageURL.
func NewDocument(pageURL string, body []byte, statusCode int, responseTime time.Duration) (*Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, WrapError(EINVALID, err, "Invalid URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(EANALYSIS, err, "Failed to parse HTML: %v", err)
	}
	doc.Url = base

	// The clone keeps the shared tree intact while non-visible elements are dropped.
	visible := doc.Selection.Clone()
	visible.Find("script, style, noscript, template").Remove()

	return &Document{
		URL:          pageURL,
		Base:         base,
		Body:         body,
		StatusCode:   statusCode,
		ResponseTime: responseTime.Seconds(),
		FetchedAt:    time.Now(),
		doc:          doc,
		text:         visible.Text(),
	}, nil
}

// Find runs a CSS selector against the parsed page.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Text returns the visible text of the page.
func (d *Document) Text() string {
	return d.text
}

// ContentLength is the raw response size in bytes.
func (d *Document) ContentLength() int {
	return len(d.Body)
}

// Fetcher retrieves a page over HTTP and builds its Document.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Document, error)
}

// Ensure HTTPFetcher implements Fetcher at compile time.
var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches pages with a single GET request. There are no retries.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithFetchTimeout sets the overall request timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithHTTPClient replaces the client; its Timeout is left untouched.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
		f.client = &http.Client{
			Timeout:   f.timeout,
			Transport: transport,
		}
	}

	return f
}

// Fetch downloads pageURL. Non-200 responses and transport failures are
// returned as *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()
	responseTime := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	return NewDocument(pageURL, body, resp.StatusCode, responseTime)
}
