// Package client sends parse requests to a backend through a Transport and
// wraps the replies in result contexts.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/bblfsh/uastclient/internal/ratelimit"
	"github.com/bblfsh/uastclient/uast"
)

var (
	ErrNonUTF8Content = errors.New("content must be UTF-8, ASCII or Base64 encoded")
	ErrClosed         = errors.New("client is closed")
	ErrInvalidMode    = errors.New("invalid mode")
	ErrNoTransport    = errors.New("nil transport")
)

// Client is safe for concurrent use.
type Client struct {
	transport Transport
	timeout   time.Duration
	rps       float64
	burst     int
	limiter   *ratelimit.Limiter
	logger    *slog.Logger

	mu     sync.RWMutex
	closed bool
}

func New(t Transport, opts ...Option) (*Client, error) {
	if t == nil {
		return nil, ErrNoTransport
	}
	c := &Client{
		transport: t,
		timeout:   DefaultTimeout,
		burst:     1,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.limiter = ratelimit.New(c.rps, c.burst)
	return c, nil
}

// Parse sends filename to the backend. The file is read from disk unless
// WithContents is given; only its base name is transmitted.
func (c *Client) Parse(ctx context.Context, filename string, opts ...ParseOption) (*uast.ResultContext, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasTimeout {
		o.timeout = c.timeout
	}
	if !o.mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(o.mode))
	}

	content := o.contents
	if !o.hasContents {
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filename, err)
		}
		content = b
	}
	if err := validUTF8(content); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := &ParseRequest{
		RequestID: uuid.New().String(),
		Filename:  filepath.Base(filename),
		Language:  NormalizeLanguage(o.language),
		Content:   string(content),
		Mode:      o.mode,
	}
	c.logger.Debug("parse request",
		"id", req.RequestID,
		"filename", req.Filename,
		"language", req.Language,
		"mode", req.Mode.String(),
		"bytes", len(content))

	resp, err := c.transport.Parse(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.Filename, err)
	}
	return uast.NewResultContext(resp)
}

// SupportedLanguages lists the driver manifests known to the backend.
func (c *Client) SupportedLanguages(ctx context.Context) ([]Manifest, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}
	return c.transport.SupportedLanguages(ctx)
}

// Languages returns the language names only.
func (c *Client) Languages(ctx context.Context) ([]string, error) {
	manifests, err := c.SupportedLanguages(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(manifests))
	for i, m := range manifests {
		names[i] = m.Language
	}
	return names, nil
}

func (c *Client) Version(ctx context.Context) (*Version, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}
	return c.transport.Version(ctx)
}

// SetRateLimit changes the request rate of a live client. Zero or negative
// values remove the limit.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	c.limiter.SetLimit(requestsPerSecond)
	c.logger.Debug("rate limit changed", "rps", requestsPerSecond, "burst", c.limiter.Burst())
}

// RateLimit reports the current rate, 0 meaning unlimited, and the burst size.
func (c *Client) RateLimit() (float64, int) {
	return c.limiter.Limit(), c.limiter.Burst()
}

// Close releases the transport. Closing twice is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.transport.Close()
}

var languageReplacer = strings.NewReplacer(" ", "-", "+", "p", "#", "sharp")

// NormalizeLanguage maps display names such as "C++" or "C#" to driver
// identifiers ("cpp", "csharp").
func NormalizeLanguage(lang string) string {
	if lang == "" {
		return ""
	}
	return languageReplacer.Replace(cases.Lower(language.Und).String(lang))
}

func validUTF8(b []byte) error {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
		return ErrNonUTF8Content
	}
	return nil
}
