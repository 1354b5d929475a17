package cell

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arnodel/jsontable/token"
)

// Inference controls which string literals are turned into richer cell
// types.  JSON has no literal for dates, UUIDs, URIs, durations or bytes so
// they travel as strings.
type Inference struct {
	Dates     bool // RFC 3339 date-times, zoneless date-times and dates
	UUIDs     bool // hyphenated 36 character UUIDs
	URIs      bool // absolute URIs without spaces
	Durations bool // Go durations with at least one unit, e.g. "1h30m"
	Bytes     bool // "base64:" followed by standard base64
}

// DefaultInference only recognises dates.
var DefaultInference = Inference{Dates: true}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// FromString converts a JSON string to a cell, trying the enabled
// inferences in the order dates, UUIDs, durations, bytes, URIs.
func (inf Inference) FromString(s string) Value {
	if inf.Dates && looksLikeDate(s) {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return DateTime(t)
			}
		}
	}
	if inf.UUIDs && len(s) == 36 {
		if u, err := uuid.Parse(s); err == nil {
			return UUID(u)
		}
	}
	if inf.Durations && looksLikeDuration(s) {
		if d, err := time.ParseDuration(s); err == nil {
			return Duration(d)
		}
	}
	if inf.Bytes && strings.HasPrefix(s, BytesPrefix) {
		if b, err := base64.StdEncoding.DecodeString(s[len(BytesPrefix):]); err == nil {
			return Bytes(b)
		}
	}
	if inf.URIs && s != "" && !strings.ContainsAny(s, " \t\r\n") {
		if u, err := url.Parse(s); err == nil && u.IsAbs() && (u.Host != "" || u.Opaque != "") {
			return URI(*u)
		}
	}
	return Text(s)
}

func looksLikeDate(s string) bool {
	return len(s) >= 10 && s[4] == '-' && s[7] == '-'
}

func looksLikeDuration(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	if i >= len(s) || !(s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		return false
	}
	// A bare number parses as a duration only when it is 0, but it is not
	// one.
	return strings.ContainsAny(s, "hmsuµn")
}

// FromScalar converts a decoded JSON scalar to a cell.  Integral numbers that
// fit in an int64 become Integer, other numbers become Float.
func FromScalar(s *token.Scalar, inf Inference) Value {
	switch s.Type() {
	case token.Null:
		return Null{}
	case token.Boolean:
		return Bool(s.Bool())
	case token.Number:
		if n, ok := s.Int64(); ok {
			return Integer(n)
		}
		// Out of range literals keep the closest float64 (±Inf or 0).
		x, _ := s.Float64()
		return Float(x)
	case token.String:
		return inf.FromString(s.ToString())
	}
	return nil
}

// FromToken converts a record member to a cell.  Objects and arrays have no
// cell representation and yield nil.
func FromToken(v token.Value, inf Inference) Value {
	if s, ok := v.(*token.Scalar); ok {
		return FromScalar(s, inf)
	}
	return nil
}

// FromGo converts a native Go value to a cell.  The second return value is
// false for types with no cell representation (maps, slices other than
// []byte, structs other than time.Time and url.URL...).
func FromGo(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return Null{}, true
	case Value:
		return x, true
	case int:
		return Integer(x), true
	case int8:
		return Integer(x), true
	case int16:
		return Integer(x), true
	case int32:
		return Integer(x), true
	case int64:
		return Integer(x), true
	case uint:
		return fromUint64(uint64(x)), true
	case uint8:
		return Integer(x), true
	case uint16:
		return Integer(x), true
	case uint32:
		return Integer(x), true
	case uint64:
		return fromUint64(x), true
	case float32:
		return Float(x), true
	case float64:
		return Float(x), true
	case json.Number:
		return FromScalar(token.NewScalar(token.Number, []byte(x.String())), Inference{}), true
	case string:
		return Text(x), true
	case bool:
		return Bool(x), true
	case time.Time:
		return DateTime(x), true
	case []byte:
		if x == nil {
			return Null{}, true
		}
		return Bytes(x), true
	case uuid.UUID:
		return UUID(x), true
	case *url.URL:
		if x == nil {
			return Null{}, true
		}
		return URI(*x), true
	case url.URL:
		return URI(x), true
	case time.Duration:
		return Duration(x), true
	}
	return nil, false
}

func fromUint64(n uint64) Value {
	if n > math.MaxInt64 {
		return Float(n)
	}
	return Integer(n)
}

func quote(s string) []byte {
	return token.StringScalar(s).Bytes
}
