// Package codec serializes tree values.
//
// Three formats are supported: a compact binary encoding (the default, used
// for parse responses), YAML and JSON. Every format preserves map key order
// and the distinction between integers and floats, so that
//
//	Decode(Encode(v, f), f)
//
// is deeply equal to v for any value v.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bblfsh/uastclient/value"
)

var (
	// ErrMalformed indicates empty or corrupt input.
	ErrMalformed = errors.New("codec: malformed input")

	// ErrUnknownFormat indicates a Format value outside the defined set.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrUnsupported indicates a value that cannot be represented in a format.
	ErrUnsupported = errors.New("codec: unsupported value")
)

// Format identifies a serialization.
type Format uint8

const (
	Binary Format = iota
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat accepts a format name as returned by Format.String.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binary", "bin", "":
		return Binary, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode serializes v.
func Encode(v value.Value, f Format) ([]byte, error) {
	switch f {
	case Binary:
		return encodeBinary(v)
	case YAML:
		return encodeYAML(v)
	case JSON:
		return encodeJSON(v)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
}

// Decode parses data. No partial value is returned on error.
func Decode(data []byte, f Format) (value.Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	var (
		v   value.Value
		err error
	)
	switch f {
	case Binary:
		v, err = decodeBinary(data)
	case YAML:
		v, err = decodeYAML(data)
	case JSON:
		v, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
