package codec

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/bblfsh/uastclient/value"
)

const (
	binaryMagic   = "UAST"
	binaryVersion = 1

	maxDepth = 10000
)

const (
	tagNull byte = iota
	tagFalse
	tagTrue
	tagInt
	tagFloat
	tagString
	tagSequence
	tagMap
)

func encodeBinary(v value.Value) ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, binaryMagic...)
	buf = append(buf, binaryVersion)
	return appendBinary(buf, v), nil
}

func appendBinary(buf []byte, v value.Value) []byte {
	switch x := v.(type) {
	case value.Bool:
		if x {
			return append(buf, tagTrue)
		}
		return append(buf, tagFalse)
	case value.Int:
		buf = append(buf, tagInt)
		return binary.AppendVarint(buf, int64(x))
	case value.Float:
		buf = append(buf, tagFloat)
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(x)))
	case value.String:
		buf = append(buf, tagString)
		return appendString(buf, string(x))
	case value.Sequence:
		buf = append(buf, tagSequence)
		buf = binary.AppendUvarint(buf, uint64(len(x)))
		for _, item := range x {
			buf = appendBinary(buf, item)
		}
		return buf
	case *value.Map:
		if x == nil {
			return append(buf, tagNull)
		}
		buf = append(buf, tagMap)
		buf = binary.AppendUvarint(buf, uint64(x.Len()))
		for k, item := range x.All() {
			buf = appendString(buf, k)
			buf = appendBinary(buf, item)
		}
		return buf
	}
	return append(buf, tagNull)
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

type binaryDecoder struct {
	data []byte
	pos  int
}

func decodeBinary(data []byte) (value.Value, error) {
	if !bytes.HasPrefix(data, []byte(binaryMagic)) || len(data) < len(binaryMagic)+1 {
		return nil, malformed("missing binary header")
	}
	if v := data[len(binaryMagic)]; v != binaryVersion {
		return nil, malformed("unsupported binary version %d", v)
	}
	d := &binaryDecoder{data: data, pos: len(binaryMagic) + 1}
	v, err := d.value(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, malformed("%d trailing bytes", len(d.data)-d.pos)
	}
	return v, nil
}

func (d *binaryDecoder) value(depth int) (value.Value, error) {
	if depth > maxDepth {
		return nil, malformed("nesting deeper than %d", maxDepth)
	}
	if d.pos >= len(d.data) {
		return nil, malformed("unexpected end of input at %d", d.pos)
	}
	tag := d.data[d.pos]
	d.pos++

	switch tag {
	case tagNull:
		return value.Null{}, nil
	case tagFalse:
		return value.Bool(false), nil
	case tagTrue:
		return value.Bool(true), nil
	case tagInt:
		i, n := binary.Varint(d.data[d.pos:])
		if n <= 0 {
			return nil, malformed("bad integer at %d", d.pos)
		}
		d.pos += n
		return value.Int(i), nil
	case tagFloat:
		if len(d.data)-d.pos < 8 {
			return nil, malformed("short float at %d", d.pos)
		}
		bits := binary.LittleEndian.Uint64(d.data[d.pos:])
		d.pos += 8
		return value.Float(math.Float64frombits(bits)), nil
	case tagString:
		s, err := d.string()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case tagSequence:
		n, err := d.length()
		if err != nil {
			return nil, err
		}
		seq := make(value.Sequence, 0, n)
		for range n {
			item, err := d.value(depth + 1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, item)
		}
		return seq, nil
	case tagMap:
		n, err := d.length()
		if err != nil {
			return nil, err
		}
		m := value.NewMap(n)
		for range n {
			k, err := d.string()
			if err != nil {
				return nil, err
			}
			item, err := d.value(depth + 1)
			if err != nil {
				return nil, err
			}
			m.Set(k, item)
		}
		return m, nil
	}
	return nil, malformed("unknown tag %d at %d", tag, d.pos-1)
}

// length reads a container size, bounded by the remaining input so corrupt
// sizes cannot trigger huge allocations.
func (d *binaryDecoder) length() (int, error) {
	n, w := binary.Uvarint(d.data[d.pos:])
	if w <= 0 {
		return 0, malformed("bad length at %d", d.pos)
	}
	d.pos += w
	if n > uint64(len(d.data)-d.pos) {
		return 0, malformed("length %d exceeds input", n)
	}
	return int(n), nil
}

func (d *binaryDecoder) string() (string, error) {
	n, err := d.length()
	if err != nil {
		return "", err
	}
	s := string(d.data[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}
