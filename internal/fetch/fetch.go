// Package fetch retrieves job posting pages over HTTP, with optional
// headless-browser fallback for JavaScript-rendered job boards and a small
// in-memory cache to avoid refetching the same posting within a run batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the tool to job boards.
	DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeOptimizer/1.0)"
)

// Result holds the raw and processed content of one fetched page.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
	Rendered    bool // true when the HTML came from the headless browser
}

// Error represents a failure while fetching a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	Timeout        time.Duration
	UserAgent      string
	Headers        map[string]string
	AllowedDomains []string // empty allows every domain
	BrowserEnabled bool     // allow headless-browser fallback for thin pages
	BrowserTimeout time.Duration
	Verbose        bool
}

// DefaultOptions returns sensible defaults for fetching job postings.
func DefaultOptions() *Options {
	return &Options{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		BrowserEnabled: true,
		BrowserTimeout: DefaultBrowserTimeout,
	}
}

// Get retrieves a URL over plain HTTP. The returned Result carries the raw
// HTML; text extraction is the caller's concern.
func Get(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if !hostAllowed(parsed.Host, opts.AllowedDomains) {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("domain %q is not in the allowed list", parsed.Host)}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return result, nil
}

// JobPage fetches a job posting URL and extracts its main text using
// platform-aware selectors. When the plain-HTTP text is too short to be a
// real posting and the browser fallback is enabled, the page is re-rendered
// in a headless browser before extraction.
func JobPage(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	result, err := Get(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	text, err := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	result.Text = text

	if opts.BrowserEnabled && ShouldUseBrowser(text) {
		html, browserErr := RenderPage(ctx, urlStr, opts.BrowserTimeout, opts.Verbose)
		if browserErr != nil {
			// Keep the thin HTTP result rather than failing the fetch.
			return result, nil
		}
		rendered, extractErr := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
		if extractErr == nil && len(rendered) > len(text) {
			result.HTML = html
			result.Text = rendered
			result.Rendered = true
		}
	}

	return result, nil
}

// hostAllowed reports whether host matches one of the allowed domains,
// including subdomains. An empty allowlist permits everything.
func hostAllowed(host string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, domain := range allowed {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
