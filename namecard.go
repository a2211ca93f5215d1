// Package namecard enriches a person's name into a compact identity
// card: social profile links, a short biography with thumbnail, and a
// geographic location, reconciled from several unreliable web sources.
//
// Basic usage:
//
//	record, err := namecard.Resolve(ctx, "Marie Curie")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(record.Title, record.Links.Twitter)
//
// Sources degrade independently: only a failure of the initial search
// stage fails the whole request; a misbehaving bio or location source
// leaves that field absent in an otherwise complete record.
package namecard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/codeGROOVE-dev/namecard/cache"
	"github.com/codeGROOVE-dev/namecard/identity"
	"github.com/codeGROOVE-dev/namecard/normalize"
	"github.com/codeGROOVE-dev/namecard/twstalker"
	"github.com/codeGROOVE-dev/namecard/websearch"
	"github.com/codeGROOVE-dev/namecard/wikipedia"
)

type (
	// Record re-exports identity.Record for convenience.
	Record = identity.Record
	// Links re-exports identity.Links for convenience.
	Links = identity.Links
)

// Option configures a Resolve call.
type Option func(*config)

type config struct {
	httpClient *http.Client
	cache      cache.Cacher
	logger     *slog.Logger
}

// WithHTTPClient sets the HTTP client used by all sources.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithHTTPCache sets the HTTP cache for responses. The default is no
// caching.
func WithHTTPCache(cacher cache.Cacher) Option {
	return func(c *config) { c.cache = cacher }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Resolve produces the identity record for a raw name query.
//
// The stages run sequentially: normalize, search-link extraction, bio
// resolution, location resolution. All intermediate state is local to
// the call, so concurrent resolves never share or leak partial results.
func Resolve(ctx context.Context, rawQuery string, opts ...Option) (*identity.Record, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	query := normalize.String(rawQuery)

	search, err := websearch.New(ctx, websearch.WithHTTPClient(cfg.httpClient),
		websearch.WithHTTPCache(cfg.cache), websearch.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	links, err := search.Links(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", identity.ErrSearchFailed, err)
	}

	scraper, err := twstalker.New(ctx, twstalker.WithHTTPClient(cfg.httpClient),
		twstalker.WithHTTPCache(cfg.cache), twstalker.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	handle := twstalker.ExtractHandle(links.Twitter)

	record := &identity.Record{
		Title: query,
		Links: links,
	}
	record.Bio = cfg.resolveBio(ctx, query, links, handle, scraper)
	record.Location = cfg.resolveLocation(ctx, handle, scraper)

	return record, nil
}

// resolveBio picks the bio source. Three mutually exclusive branches in
// priority order: encyclopedia (when a Wikipedia link was seen), direct
// profile scrape (when a Twitter link was found), or nothing. Every
// failure here is non-fatal and yields an absent bio.
func (cfg *config) resolveBio(ctx context.Context, query string, links identity.Links, handle string, scraper *twstalker.Client) *identity.Bio {
	if !links.WikipediaSeen {
		if links.Twitter == "" {
			return nil
		}
		return cfg.scrapeBio(ctx, handle, scraper)
	}

	wiki, err := wikipedia.New(ctx, wikipedia.WithHTTPClient(cfg.httpClient),
		wikipedia.WithHTTPCache(cfg.cache), wikipedia.WithLogger(cfg.logger))
	if err != nil {
		return nil
	}

	bio, err := wiki.Summary(ctx, query)
	if err != nil {
		cfg.logger.WarnContext(ctx, "summary lookup failed", "query", query, "error", err)
		bio = nil
	}
	if bio != nil && bio.Thumbnail != nil {
		return bio
	}

	// Missing entry or missing thumbnail: pull the image from the
	// profile page, but keep the encyclopedic description when one was
	// obtained.
	var priorDescription string
	if bio != nil {
		priorDescription = bio.Description
	}

	scraped := cfg.scrapeBio(ctx, handle, scraper)
	if scraped == nil {
		return nil
	}
	if priorDescription != "" {
		scraped.Description = priorDescription
	}
	return scraped
}

func (cfg *config) scrapeBio(ctx context.Context, handle string, scraper *twstalker.Client) *identity.Bio {
	if handle == "" {
		cfg.logger.DebugContext(ctx, "no profile handle, skipping bio scrape")
		return nil
	}
	bio, err := scraper.Bio(ctx, handle)
	if err != nil {
		cfg.logger.WarnContext(ctx, "profile bio scrape failed", "handle", handle, "error", err)
		return nil
	}
	return bio
}

// resolveLocation runs independently of the bio branch: location comes
// only from the profile page, so no Twitter link means no location.
func (cfg *config) resolveLocation(ctx context.Context, handle string, scraper *twstalker.Client) *string {
	if handle == "" {
		return nil
	}
	location, err := scraper.Location(ctx, handle)
	if err != nil {
		cfg.logger.WarnContext(ctx, "location scrape failed", "handle", handle, "error", err)
		return nil
	}
	return &location
}

// Handle services one identity-query request, mapping a pipeline
// failure to the error response shape. Every call is stateless and
// request-scoped; concurrent calls are safe.
func Handle(ctx context.Context, req identity.Request, opts ...Option) identity.Response {
	record, err := Resolve(ctx, req.Text, opts...)
	if err != nil {
		return identity.Response{
			Type:  identity.ResponseType,
			Title: normalize.String(req.Text),
			Error: err.Error(),
		}
	}

	return identity.Response{
		Type:        identity.ResponseType,
		Title:       record.Title,
		Description: &record.Links,
		Bio:         record.Bio,
		Location:    record.Location,
	}
}
