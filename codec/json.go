package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bblfsh/uastclient/internal/number"
	"github.com/bblfsh/uastclient/value"
)

func encodeJSON(v value.Value) ([]byte, error) {
	var b bytes.Buffer
	if err := writeJSON(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeJSON(b *bytes.Buffer, v value.Value) error {
	switch x := v.(type) {
	case value.Bool:
		b.WriteString(strconv.FormatBool(bool(x)))
	case value.Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case value.Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v in JSON", ErrUnsupported, f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			// keep the float kind across a round trip
			s += ".0"
		}
		b.WriteString(s)
	case value.String:
		writeJSONString(b, string(x))
	case value.Sequence:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *value.Map:
		if x == nil {
			b.WriteString("null")
			return nil
		}
		b.WriteByte('{')
		i := 0
		for k, item := range x.All() {
			if i > 0 {
				b.WriteByte(',')
			}
			i++
			writeJSONString(b, k)
			b.WriteByte(':')
			if err := writeJSON(b, item); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
	return nil
}

func writeJSONString(b *bytes.Buffer, s string) {
	// json.Marshal never fails for strings
	out, _ := json.Marshal(s)
	b.Write(out)
}

// decodeJSON reads the token stream so that object key order is preserved.
func decodeJSON(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v, err := decodeJSONToken(dec, tok, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("trailing data after JSON value")
	}
	return v, nil
}

func decodeJSONToken(dec *json.Decoder, tok json.Token, depth int) (value.Value, error) {
	if depth > maxDepth {
		return nil, malformed("nesting deeper than %d", maxDepth)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec, depth)
		case '[':
			return decodeJSONArray(dec, depth)
		}
		return nil, malformed("unexpected delimiter %q", t)
	case json.Number:
		return jsonNumber(t)
	case string:
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null{}, nil
	}
	return nil, malformed("unexpected token %v", tok)
}

func decodeJSONObject(dec *json.Decoder, depth int) (value.Value, error) {
	m := value.NewMap(0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return m, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, malformed("object key %v is not a string", tok)
		}
		valueTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		v, err := decodeJSONToken(dec, valueTok, depth+1)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
}

func decodeJSONArray(dec *json.Decoder, depth int) (value.Value, error) {
	seq := make(value.Sequence, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return seq, nil
		}
		v, err := decodeJSONToken(dec, tok, depth+1)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
}

func jsonNumber(n json.Number) (value.Value, error) {
	if i, ok := number.ToInt64(n); ok {
		return value.Int(i), nil
	}
	if !number.IsFloatLiteral(n.String()) {
		return nil, fmt.Errorf("%w: integer %s overflows int64", ErrUnsupported, n.String())
	}
	f, ok := number.ToFloat64(n)
	if !ok {
		return nil, malformed("number %q", n.String())
	}
	return value.Float(f), nil
}
