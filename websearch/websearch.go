// Package websearch extracts candidate profile links for a name from a
// web search results page.
package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/namecard/cache"
	"github.com/codeGROOVE-dev/namecard/htmlutil"
	"github.com/codeGROOVE-dev/namecard/identity"
	"golang.org/x/net/html"
)

const searchURL = "https://www.google.com/search?q="

// Profile URL shapes, one per category. Each allows an optional
// trailing slash and query string.
var (
	linkedinRe  = regexp.MustCompile(`https?://[a-zA-Z]{2,3}\.linkedin\.com/in/[a-zA-Z0-9_-]+/?(\?.*)?$`)
	twitterRe   = regexp.MustCompile(`https?://twitter\.com/[a-zA-Z0-9_]+/?(\?.*)?$`)
	facebookRe  = regexp.MustCompile(`https?://[a-zA-Z]{2,3}\.facebook\.com/[a-zA-Z0-9_.-]+/?(\?.*)?$`)
	instagramRe = regexp.MustCompile(`https?://[a-zA-Z]{2,3}\.instagram\.com/[a-zA-Z0-9_.-]+/?(\?.*)?$`)
)

// Client fetches search results and classifies outbound links.
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

// New creates a search client.
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

// Links searches for the raw query string and classifies every outbound
// link on the results page. An empty result is a valid "no socials
// found" outcome, not an error; only the fetch itself can fail.
func (c *Client) Links(ctx context.Context, query string) (identity.Links, error) {
	c.logger.InfoContext(ctx, "fetching search results", "query", query)

	doc, err := htmlutil.FetchDocument(ctx, c.httpClient, c.cache, searchURL+url.QueryEscape(query), c.logger)
	if err != nil {
		return identity.Links{}, fmt.Errorf("search fetch failed: %w", err)
	}

	return c.classify(ctx, doc, query), nil
}

// classify walks every anchor in document order. Per category the first
// matching link wins; later matches for a filled category are dropped.
func (c *Client) classify(ctx context.Context, doc *html.Node, query string) identity.Links {
	var links identity.Links
	first, last := nameTokens(query)

	classifiers := []struct {
		re  *regexp.Regexp
		dst *string
	}{
		{linkedinRe, &links.LinkedIn},
		{twitterRe, &links.Twitter},
		{facebookRe, &links.Facebook},
		{instagramRe, &links.Instagram},
	}

	htmlutil.EachElement(doc, "a", func(n *html.Node) bool {
		href := htmlutil.Attr(n, "href")
		if !strings.Contains(href, "http") {
			return true
		}

		for _, cl := range classifiers {
			if *cl.dst == "" && cl.re.MatchString(href) {
				*cl.dst = href
				break
			}
		}

		// Incidental substring check; the link need not be a real
		// encyclopedia article.
		if !links.WikipediaSeen && strings.Contains(href, "wikipedia") {
			links.WikipediaSeen = true
		}

		if links.Personal == "" {
			if u, err := url.Parse(href); err != nil {
				c.logger.DebugContext(ctx, "skipping malformed link", "href", href, "error", err)
			} else if hostMatchesName(u.Hostname(), first, last) {
				links.Personal = href
			}
		}

		return true
	})

	return links
}

// hostMatchesName guesses a personal site: the hostname contains the
// lowercased first or last name token. Known-imprecise, kept for parity.
func hostMatchesName(hostname, first, last string) bool {
	host := strings.ToLower(hostname)
	if first != "" && strings.Contains(host, first) {
		return true
	}
	return last != "" && strings.Contains(host, last)
}

// nameTokens splits the query into assumed first and last name. A
// single-token query has no last name, which simply never matches.
func nameTokens(query string) (first, last string) {
	parts := strings.Fields(query)
	if len(parts) > 0 {
		first = strings.ToLower(parts[0])
	}
	if len(parts) > 1 {
		last = strings.ToLower(parts[1])
	}
	return first, last
}
