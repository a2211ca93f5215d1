// Command namecard resolves a person's name into an identity card.
//
// Usage:
//
//	namecard "Marie Curie"
//	namecard -cache -retries 2 "Grace Hopper"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/namecard"
	"github.com/codeGROOVE-dev/namecard/cache"
	"github.com/codeGROOVE-dev/namecard/identity"
	"github.com/codeGROOVE-dev/namecard/normalize"
	"github.com/codeGROOVE-dev/retry"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	useCache := flag.Bool("cache", false, "enable HTTP response caching (disabled by default)")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "cache time-to-live")
	timeout := flag.Duration("timeout", 0, "whole-request deadline (0 = none)")
	retries := flag.Int("retries", 0, "extra attempts for the whole lookup (the pipeline itself never retries)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: namecard [options] <name>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	name := strings.Join(flag.Args(), " ")

	logLevel := slog.LevelWarn
	if *debug || *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := []namecard.Option{namecard.WithLogger(logger)}
	if *useCache {
		httpCache, err := cache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := httpCache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			opts = append(opts, namecard.WithHTTPCache(httpCache))
		}
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	req := identity.Request{Type: identity.RequestType, Text: name}

	// Retrying the whole lookup is a caller-level policy; nothing
	// inside the pipeline retries.
	resp, err := retry.DoWithData(
		func() (identity.Response, error) {
			r := namecard.Handle(ctx, req, opts...)
			if r.Error != "" {
				return r, errors.New(r.Error)
			}
			return r, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(*retries)+1), //nolint:gosec // small flag value
		retry.Delay(300*time.Millisecond),
		retry.MaxJitter(150*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying lookup", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		resp = identity.Response{
			Type:  identity.ResponseType,
			Title: normalize.String(name),
			Error: err.Error(),
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encodeErr := enc.Encode(resp); encodeErr != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", encodeErr)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}

	if resp.Error != "" {
		os.Exit(1)
	}
}
