package client

import (
	"context"
	"time"

	"github.com/bblfsh/uastclient/uast"
)

// ParseRequest is what a Transport sends to the backend.
type ParseRequest struct {
	RequestID string
	Filename  string
	Language  string // empty means autodetect
	Content   string
	Mode      Mode
}

// Manifest describes one language driver.
type Manifest struct {
	Name     string
	Language string
	Version  string
	Status   string
	Aliases  []string
	Features []string
}

// Version is the backend version and build time.
type Version struct {
	Version string
	Build   time.Time
}

// Transport is the connection to a parsing backend. Implementations must
// honour ctx deadlines.
type Transport interface {
	Parse(ctx context.Context, req *ParseRequest) (*uast.Response, error)
	SupportedLanguages(ctx context.Context) ([]Manifest, error)
	Version(ctx context.Context) (*Version, error)
	Close() error
}
