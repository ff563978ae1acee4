package client

import (
	"log/slog"
	"time"
)

// DefaultTimeout bounds a parse request unless overridden.
const DefaultTimeout = 60 * time.Second

type Option func(*Client)

// WithTimeout sets the default parse timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps outbound parse requests per second.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.rps = requestsPerSecond
		c.burst = burst
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

type parseOptions struct {
	language    string
	contents    []byte
	hasContents bool
	mode        Mode
	timeout     time.Duration
	hasTimeout  bool
}

type ParseOption func(*parseOptions)

// WithLanguage skips autodetection.
func WithLanguage(lang string) ParseOption {
	return func(o *parseOptions) {
		o.language = lang
	}
}

// WithContents sends b instead of reading the file.
func WithContents(b []byte) ParseOption {
	return func(o *parseOptions) {
		o.contents = b
		o.hasContents = true
	}
}

func WithMode(m Mode) ParseOption {
	return func(o *parseOptions) {
		o.mode = m
	}
}

// WithParseTimeout overrides the client timeout for one request.
func WithParseTimeout(d time.Duration) ParseOption {
	return func(o *parseOptions) {
		o.timeout = d
		o.hasTimeout = true
	}
}
