package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/bblfsh/uastclient/value"
)

// encodeYAML writes block-style YAML. Scalars are emitted here rather than by
// goccy's marshaller because the decoder must read every scalar back with
// its original kind: floats always carry a fraction or exponent mantissa with
// a dot, and strings that could read as anything else are double-quoted.
func encodeYAML(v value.Value) ([]byte, error) {
	var b bytes.Buffer
	writeYAML(&b, v, 0, "")
	return b.Bytes(), nil
}

// writeYAML emits v at indent. A non-empty prefix replaces the first line's
// indentation, which is how block items inside a sequence start with "- ".
func writeYAML(b *bytes.Buffer, v value.Value, indent int, prefix string) {
	pad := strings.Repeat(" ", indent)
	lead := func(first bool) {
		if first && prefix != "" {
			b.WriteString(prefix)
			return
		}
		b.WriteString(pad)
	}

	switch x := v.(type) {
	case *value.Map:
		if !isYAMLBlock(x) {
			lead(true)
			b.WriteString("{}\n")
			return
		}
		first := true
		for k, item := range x.All() {
			lead(first)
			first = false
			b.WriteString(yamlString(k, true))
			b.WriteByte(':')
			if isYAMLBlock(item) {
				b.WriteByte('\n')
				writeYAML(b, item, indent+2, "")
				continue
			}
			b.WriteByte(' ')
			b.WriteString(yamlScalar(item))
			b.WriteByte('\n')
		}
	case value.Sequence:
		if len(x) == 0 {
			lead(true)
			b.WriteString("[]\n")
			return
		}
		for i, item := range x {
			itemPrefix := pad + "- "
			if i == 0 && prefix != "" {
				itemPrefix = prefix + "- "
			}
			if isYAMLBlock(item) {
				writeYAML(b, item, indent+2, itemPrefix)
				continue
			}
			b.WriteString(itemPrefix)
			b.WriteString(yamlScalar(item))
			b.WriteByte('\n')
		}
	default:
		lead(true)
		b.WriteString(yamlScalar(v))
		b.WriteByte('\n')
	}
}

func isYAMLBlock(v value.Value) bool {
	switch x := v.(type) {
	case *value.Map:
		return x != nil && x.Len() > 0
	case value.Sequence:
		return len(x) > 0
	}
	return false
}

func yamlScalar(v value.Value) string {
	switch x := v.(type) {
	case value.Bool:
		return strconv.FormatBool(bool(x))
	case value.Int:
		return strconv.FormatInt(int64(x), 10)
	case value.Float:
		return yamlFloat(float64(x))
	case value.String:
		return yamlString(string(x), false)
	case *value.Map:
		return "{}"
	case value.Sequence:
		return "[]"
	}
	return "null"
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

// yamlKeywords are plain scalars that YAML 1.1 or 1.2 resolve to a non-string.
var yamlKeywords = map[string]bool{
	"null": true, "true": true, "false": true,
	"yes": true, "no": true, "on": true, "off": true, "y": true, "n": true,
	"inf": true, "nan": true,
}

// yamlString leaves s plain only when it is an identifier-like word that no
// resolver could read as another kind; everything else is double-quoted.
func yamlString(s string, key bool) string {
	if plainYAML(s, key) {
		return s
	}
	return quoteYAML(s)
}

func plainYAML(s string, key bool) bool {
	if yamlKeywords[strings.ToLower(s)] || token.IsNeedQuoted(s) {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i == 0:
			return false
		case r >= '0' && r <= '9', r == '-', r == '.', r == '/':
		case r == ':' && !key:
		default:
			return false
		}
	}
	return !strings.HasSuffix(s, ":")
}

func quoteYAML(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || (r >= 0x7f && r <= 0x9f) || r == 0x2028 || r == 0x2029 || r == 0xfeff {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// decodeYAML walks the goccy AST instead of unmarshalling into Go maps so that
// key order and the int/float distinction of the document are kept.
func decodeYAML(data []byte) (value.Value, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(file.Docs) != 1 || file.Docs[0].Body == nil {
		return nil, malformed("expected a single YAML document, got %d", len(file.Docs))
	}
	return fromYAMLNode(file.Docs[0].Body, 0)
}

func fromYAMLNode(node ast.Node, depth int) (value.Value, error) {
	if depth > maxDepth {
		return nil, malformed("nesting deeper than %d", maxDepth)
	}

	switch n := node.(type) {
	case *ast.NullNode:
		return value.Null{}, nil
	case *ast.BoolNode:
		return value.Bool(n.Value), nil
	case *ast.IntegerNode:
		return yamlInteger(n)
	case *ast.FloatNode:
		return value.Float(n.Value), nil
	case *ast.InfinityNode:
		return value.Float(n.Value), nil
	case *ast.NanNode:
		return value.Float(math.NaN()), nil
	case *ast.StringNode:
		return value.String(n.Value), nil
	case *ast.LiteralNode:
		return value.String(n.Value.Value), nil
	case *ast.TagNode:
		return fromYAMLNode(n.Value, depth+1)
	case *ast.AnchorNode:
		return fromYAMLNode(n.Value, depth+1)
	case *ast.SequenceNode:
		seq := make(value.Sequence, 0, len(n.Values))
		for _, item := range n.Values {
			v, err := fromYAMLNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case *ast.MappingNode:
		m := value.NewMap(len(n.Values))
		for _, mv := range n.Values {
			if err := setYAMLEntry(m, mv, depth); err != nil {
				return nil, err
			}
		}
		return m, nil
	case *ast.MappingValueNode:
		m := value.NewMap(1)
		if err := setYAMLEntry(m, n, depth); err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: YAML node %s", ErrUnsupported, node.Type())
}

func setYAMLEntry(m *value.Map, mv *ast.MappingValueNode, depth int) error {
	key := yamlKey(mv.Key)
	v, err := fromYAMLNode(mv.Value, depth+1)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	m.Set(key, v)
	return nil
}

func yamlKey(key ast.MapKeyNode) string {
	if s, ok := key.(*ast.StringNode); ok {
		return s.Value
	}
	return key.GetToken().Value
}

func yamlInteger(n *ast.IntegerNode) (value.Value, error) {
	switch i := n.Value.(type) {
	case int64:
		return value.Int(i), nil
	case uint64:
		if i > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d overflows int64", ErrUnsupported, i)
		}
		return value.Int(int64(i)), nil
	}
	return nil, malformed("integer %q", n.GetToken().Value)
}
