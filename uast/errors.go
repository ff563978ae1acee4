package uast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bblfsh/uastclient/engine"
	"github.com/bblfsh/uastclient/value"
)

var (
	// ErrTypeMismatch indicates a realized value of an unexpected kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCardinality indicates a typed query that did not produce exactly
	// one result.
	ErrCardinality = errors.New("typed query must produce exactly one result")

	ErrInvalidOrder = engine.ErrInvalidOrder
	ErrQuery        = engine.ErrQuery

	// ErrInstancing indicates a Node built from both a handle and a value,
	// or from an unusable handle.
	ErrInstancing = errors.New("cannot instance node")

	// ErrNoResponse is returned by response metadata accessors of a
	// standalone context.
	ErrNoResponse = errors.New("context was not built from a response")

	ErrNotNode   = errors.New("last item is not a node")
	ErrExhausted = errors.New("iterator produced no items")
	ErrIndex     = errors.New("index out of range")
)

// ResponseError carries the errors reported by the parsing backend.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return strings.Join(e.Messages, "\n")
}

func mismatch(want, got value.Kind) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want, got)
}
