// Package htmlutil fetches URLs and provides query helpers over parsed
// HTML node trees. It is the single fetch path for every scraper in the
// pipeline.
package htmlutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/codeGROOVE-dev/namecard/cache"
	"golang.org/x/net/html"
)

// UserAgent is the standard browser User-Agent string for all fetchers.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0"

const maxBodySize = 1 << 20

// Fetch retrieves a URL and returns the response body.
//
// Non-2xx responses are returned as a body with nil error: the target
// sites serve soft-error pages, so callers must handle empty extraction
// results instead of relying on a fetch-level signal. Only 200 bodies
// are cached. A nil cacher disables caching. No retries at this layer;
// retries, if any, are a policy decision of the caller.
func Fetch(ctx context.Context, client *http.Client, cacher cache.Cacher, rawURL string, logger *slog.Logger) ([]byte, error) {
	if cacher == nil {
		body, _, err := doFetch(ctx, client, rawURL, logger)
		return body, err
	}

	data, err := cacher.GetSet(ctx, cache.URLToKey(rawURL), func(ctx context.Context) ([]byte, error) {
		body, status, fetchErr := doFetch(ctx, client, rawURL, logger)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if status != http.StatusOK {
			// Return the body without caching it.
			return nil, &uncachedBody{data: body}
		}
		return body, nil
	}, cacher.TTL())

	var ub *uncachedBody
	if errors.As(err, &ub) {
		return ub.data, nil
	}
	return data, err
}

// FetchDocument retrieves a URL and parses it into an HTML node tree.
func FetchDocument(ctx context.Context, client *http.Client, cacher cache.Cacher, rawURL string, logger *slog.Logger) (*html.Node, error) {
	body, err := Fetch(ctx, client, cacher, rawURL, logger)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	return doc, nil
}

func doFetch(ctx context.Context, client *http.Client, rawURL string, logger *slog.Logger) (body []byte, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // error ignored intentionally

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	if resp.StatusCode != http.StatusOK && logger != nil {
		logger.DebugContext(ctx, "non-200 response", "url", rawURL, "status", resp.StatusCode)
	}

	return body, resp.StatusCode, nil
}

// uncachedBody smuggles a non-cacheable response body out of GetSet.
type uncachedBody struct{ data []byte }

func (*uncachedBody) Error() string { return "response not cacheable" }
