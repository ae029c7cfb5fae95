// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backend is the HTTP client for the content backend's REST API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// Client defaults
const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 20
	DefaultBurst     = 10
	MaxResponseLen   = 10 << 20 // 10MB
	UserAgent        = "jvadmin/1.0"
)

// ErrInvalidJSON is returned when a response body is not valid JSON.
var ErrInvalidJSON = errors.New("backend returned invalid JSON")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s: HTTP error! status: %d", e.URL, e.StatusCode)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // requests per second; zero uses DefaultRateLimit
	Burst      int
	HTTPClient *http.Client
}

// Client fetches JSON from the content backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// New creates a Client. BaseURL must be an absolute http(s) URL.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute http or https", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		base:    base,
		http:    cfg.HTTPClient,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL joins path to the base URL.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.base.String(), "/") + path
}

// FetchList GETs path and returns the items of its "data" array.
// A body without a data array yields no records.
func (c *Client) FetchList(ctx context.Context, path string) ([]Record, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, nil
	}

	items := data.Array()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, NewRecord(item.Raw))
	}
	return records, nil
}

// HeroText is the hero title and subtitle for one language.
type HeroText struct {
	Title    string
	Subtitle string
}

// FetchHero GETs the hero content and returns it keyed by language code.
// Languages without an object value are skipped.
func (c *Client) FetchHero(ctx context.Context, path string) (map[string]HeroText, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	hero := make(map[string]HeroText)
	gjson.GetBytes(body, "all_languages").ForEach(func(lang, v gjson.Result) bool {
		if v.IsObject() {
			hero[lang.String()] = HeroText{
				Title:    v.Get("title").String(),
				Subtitle: v.Get("subtitle").String(),
			}
		}
		return true
	})
	return hero, nil
}

// Ping checks that the backend answers HTTP at all. Any status counts.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.URL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w", target, ErrInvalidJSON)
	}
	return body, nil
}
