package json

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"slices"

	"github.com/arnodel/jsontable/cell"
	"github.com/arnodel/jsontable/token"
)

var (
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(":")
)

// AppendValue appends the compact JSON encoding of v to dst.
//
// Decoded token values are written back as they were read.  Values with a
// cell representation (see cell.FromGo) are written the way the cell
// marshals itself, so dates, durations, UUIDs, URLs and bytes can be read
// back as the same cell kind.  Anything else (maps, slices, structs...) goes
// through encoding/json, without HTML escaping.
func AppendValue(dst []byte, v any) ([]byte, error) {
	if t, ok := v.(token.Value); ok {
		return appendToken(dst, t), nil
	}
	if c, ok := cell.FromGo(v); ok {
		b, err := c.MarshalJSON()
		if err != nil {
			return dst, err
		}
		return append(dst, b...), nil
	}
	var buf bytes.Buffer
	encoder := stdjson.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return dst, err
	}
	// Remove the new line at the end
	return append(dst, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...), nil
}

// AppendObject appends a JSON object whose members are names[i]: values[i],
// in that order.  On error dst is returned unchanged.
func AppendObject(dst []byte, names []string, values []any) ([]byte, error) {
	if len(names) != len(values) {
		return dst, fmt.Errorf("%d names for %d values", len(names), len(values))
	}
	out := append(dst, openObjectBytes...)
	var err error
	for i, name := range names {
		if i > 0 {
			out = append(out, itemSeparatorBytes...)
		}
		out = append(out, token.StringScalar(name).Bytes...)
		out = append(out, keyValueSeparatorBytes...)
		out, err = AppendValue(out, values[i])
		if err != nil {
			return dst[:len(dst):len(dst)], fmt.Errorf("field %q: %w", name, err)
		}
	}
	return append(out, closeObjectBytes...), nil
}

// AppendMap appends a JSON object with the members of m in key order.
func AppendMap(dst []byte, m map[string]any) ([]byte, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	values := make([]any, len(names))
	for i, name := range names {
		values[i] = m[name]
	}
	return AppendObject(dst, names, values)
}

// appendToken writes nil values, typed or not, as null.
func appendToken(dst []byte, v token.Value) []byte {
	switch x := v.(type) {
	case nil:
		return append(dst, nullBytes...)
	case *token.Scalar:
		if x == nil {
			return append(dst, nullBytes...)
		}
		return append(dst, x.Bytes...)
	case *token.Object:
		if x == nil {
			return append(dst, nullBytes...)
		}
		dst = append(dst, openObjectBytes...)
		for i, m := range x.Members {
			if i > 0 {
				dst = append(dst, itemSeparatorBytes...)
			}
			dst = append(dst, token.StringScalar(m.Key).Bytes...)
			dst = append(dst, keyValueSeparatorBytes...)
			dst = appendToken(dst, m.Value)
		}
		return append(dst, closeObjectBytes...)
	case *token.Array:
		if x == nil {
			return append(dst, nullBytes...)
		}
		dst = append(dst, openArrayBytes...)
		for i, item := range x.Items {
			if i > 0 {
				dst = append(dst, itemSeparatorBytes...)
			}
			dst = appendToken(dst, item)
		}
		return append(dst, closeArrayBytes...)
	default:
		panic(fmt.Sprintf("invalid token value: %#v", v))
	}
}
