package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// LoaderOptions configures how Load resolves sources. Offline-first: HTTP
// sources are disabled unless a client is supplied or fallback enabled.
type LoaderOptions struct {
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
}

// LoaderOption mutates LoaderOptions prior to loading.
type LoaderOption func(*LoaderOptions)

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using http.DefaultClient and assigns
// an optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// Load fetches the raw document payload for a source.
func Load(ctx context.Context, src Source, options ...LoaderOption) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi: source is required")
	}
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch s := src.(type) {
	case bytesSource:
		if len(s.data) == 0 {
			return nil, fmt.Errorf("openapi: source %s carries no data", s.Location())
		}
		return s.data, nil

	case fileSource:
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", s.path, err)
		}
		return data, nil

	case urlSource:
		client := cfg.HTTPClient
		if client == nil {
			if !cfg.AllowHTTPFallback {
				return nil, fmt.Errorf("openapi: HTTP source %s requires a client (or WithHTTPFallback)", s.raw)
			}
			client = http.DefaultClient
		}
		if cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.raw, nil)
		if err != nil {
			return nil, fmt.Errorf("openapi: request %s: %w", s.raw, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("openapi: fetch %s: %w", s.raw, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("openapi: fetch %s: unexpected status %d", s.raw, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", s.raw, err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("openapi: unsupported source kind %q", src.Kind())
	}
}
