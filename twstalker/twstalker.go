// Package twstalker scrapes public Twitter profile mirror pages for bio
// and location data using fixed structural heuristics.
package twstalker

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/codeGROOVE-dev/namecard/cache"
	"github.com/codeGROOVE-dev/namecard/htmlutil"
	"github.com/codeGROOVE-dev/namecard/identity"
	"golang.org/x/net/html"
)

const baseURL = "https://twstalker.com/"

var handleRe = regexp.MustCompile(`https?://twitter\.com/([^/?]+)`)

// ExtractHandle pulls the username segment immediately after
// "twitter.com/", stopping at "/", "?", or end of string. Returns ""
// when the URL does not match, which callers must treat as "cannot
// scrape this source".
func ExtractHandle(rawURL string) string {
	if m := handleRe.FindStringSubmatch(rawURL); len(m) > 1 {
		return m[1]
	}
	return ""
}

// Client scrapes profile mirror pages.
type Client struct {
	httpClient *http.Client
	cache      cache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	httpClient *http.Client
	cache      cache.Cacher
	logger     *slog.Logger
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(cacher cache.Cacher) Option {
	return func(c *config) { c.cache = cacher }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates a scraper client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// Bio scrapes the handle's profile page for a short description (text
// of the first span following the first h1) and a thumbnail (src of the
// first image with a "thumbnail" class marker). Only the fetch itself
// can fail; missing structure yields absent fields.
func (c *Client) Bio(ctx context.Context, handle string) (*identity.Bio, error) {
	doc, err := c.fetchProfile(ctx, handle)
	if err != nil {
		return nil, err
	}

	bio := &identity.Bio{}
	if h1 := htmlutil.FirstElement(doc, "h1"); h1 != nil {
		if span := htmlutil.NextSiblingElement(h1, "span"); span != nil {
			bio.Description = htmlutil.Text(span)
		}
	}

	htmlutil.EachElement(doc, "img", func(n *html.Node) bool {
		if !htmlutil.HasClassContaining(n, "thumbnail") {
			return true
		}
		if src := htmlutil.Attr(n, "src"); src != "" {
			bio.Thumbnail = &identity.Thumbnail{Source: src}
		}
		return false
	})

	return bio, nil
}

// Location scrapes the same page for the location line: the third span
// in the sibling chain following the first h1. An empty string is a
// valid result when the structure doesn't match.
func (c *Client) Location(ctx context.Context, handle string) (string, error) {
	doc, err := c.fetchProfile(ctx, handle)
	if err != nil {
		return "", err
	}

	n := htmlutil.FirstElement(doc, "h1")
	if n == nil {
		return "", nil
	}
	for range 3 {
		if n = htmlutil.NextSiblingElement(n, "span"); n == nil {
			return "", nil
		}
	}
	return htmlutil.Text(n), nil
}

func (c *Client) fetchProfile(ctx context.Context, handle string) (*html.Node, error) {
	c.logger.InfoContext(ctx, "fetching profile page", "handle", handle)
	return htmlutil.FetchDocument(ctx, c.httpClient, c.cache, baseURL+url.PathEscape(handle), c.logger)
}
