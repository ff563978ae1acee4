package uast

import (
	"fmt"

	"github.com/bblfsh/uastclient/codec"
	"github.com/bblfsh/uastclient/engine"
	"github.com/bblfsh/uastclient/value"
)

// Response is a parse result as returned by the backend.
type Response struct {
	UAST     []byte // binary encoded tree
	Language string
	Filename string
	Errors   []ParseError
}

// ParseError is one error reported by the backend.
type ParseError struct {
	Text string
}

// ResultContext owns one decoded tree and the metadata of its response.
type ResultContext struct {
	tree     *engine.Tree
	response *Response
}

// NewResultContext decodes resp. A response carrying errors fails with a
// *ResponseError and no context. A nil resp yields a standalone context
// holding an empty node.
func NewResultContext(resp *Response) (*ResultContext, error) {
	if resp == nil {
		return Standalone(nil), nil
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Text
		}
		return nil, &ResponseError{Messages: msgs}
	}

	root, err := codec.Decode(resp.UAST, codec.Binary)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resp.Filename, err)
	}
	logger.Debug("decoded parse response",
		"filename", resp.Filename,
		"language", resp.Language,
		"bytes", len(resp.UAST))

	return &ResultContext{tree: engine.NewTree(root), response: resp}, nil
}

// Standalone wraps a locally built tree. A nil root is an empty node.
func Standalone(root value.Value) *ResultContext {
	if root == nil {
		root = emptyNodeValue()
	}
	return &ResultContext{tree: engine.NewTree(root)}
}

// Decode builds a standalone context from an encoded tree.
func Decode(data []byte, f codec.Format) (*ResultContext, error) {
	root, err := codec.Decode(data, f)
	if err != nil {
		return nil, err
	}
	return &ResultContext{tree: engine.NewTree(root)}, nil
}

// Root returns the unrealized root node.
func (c *ResultContext) Root() *Node {
	return FromHandle(c.tree.Root())
}

// UAST is Root.
func (c *ResultContext) UAST() *Node {
	return c.Root()
}

// AST is Root.
func (c *ResultContext) AST() *Node {
	return c.Root()
}

// GetAll returns the whole tree.
func (c *ResultContext) GetAll() value.Value {
	return c.tree.Root().Load()
}

func (c *ResultContext) Iterate(order Order) (*Iterator, error) {
	return c.Root().Iterate(order)
}

func (c *ResultContext) Filter(query string) (*Iterator, error) {
	return c.Root().Filter(query)
}

// Encode serializes v, or the whole tree when v is nil.
func (c *ResultContext) Encode(v value.Value, f codec.Format) ([]byte, error) {
	if v == nil {
		v = c.GetAll()
	}
	return codec.Encode(v, f)
}

// Language is the language reported by the backend.
func (c *ResultContext) Language() (string, error) {
	if c.response == nil {
		return "", ErrNoResponse
	}
	return c.response.Language, nil
}

// Filename is the filename reported by the backend.
func (c *ResultContext) Filename() (string, error) {
	if c.response == nil {
		return "", ErrNoResponse
	}
	return c.response.Filename, nil
}

func (c *ResultContext) String() string {
	return c.Root().String()
}
