// Package wikipedia looks up short page summaries from the Wikipedia
// REST API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/namecard/cache"
	"github.com/codeGROOVE-dev/namecard/htmlutil"
	"github.com/codeGROOVE-dev/namecard/identity"
)

const summaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

// disambiguationSentinel is the description Wikipedia uses for
// disambiguation pages. Such pages carry no usable biography and are
// treated as absent.
const disambiguationSentinel = "Topics referred to by the same term"

// Client fetches page summaries.
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

// New creates a summary client.
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

// Summary returns the short bio for a page title, or (nil, nil) when no
// usable entry exists: missing page, undecodable body, empty
// description, or a disambiguation page. A summary without a thumbnail
// is returned as a valid partial result. Transport failures propagate.
func (c *Client) Summary(ctx context.Context, title string) (*identity.Bio, error) {
	c.logger.InfoContext(ctx, "fetching page summary", "title", title)

	body, err := htmlutil.Fetch(ctx, c.httpClient, c.cache, summaryURL+url.PathEscape(title), c.logger)
	if err != nil {
		return nil, fmt.Errorf("summary fetch failed: %w", err)
	}

	var summary struct {
		Description string `json:"description"`
		Thumbnail   *struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		c.logger.DebugContext(ctx, "undecodable summary response", "title", title, "error", err)
		return nil, nil //nolint:nilnil // no usable entry is not an error
	}

	if summary.Description == "" || summary.Description == disambiguationSentinel {
		return nil, nil //nolint:nilnil // missing or disambiguation entry is not an error
	}

	bio := &identity.Bio{Description: summary.Description}
	if summary.Thumbnail != nil && summary.Thumbnail.Source != "" {
		bio.Thumbnail = &identity.Thumbnail{Source: summary.Thumbnail.Source}
	}
	return bio, nil
}
