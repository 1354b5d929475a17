// Package cell defines the values held in the cells of a tabular row.
//
// A cell is either nil (the field is absent from the record) or one of the
// concrete types below, which form a closed set:
//
//	Null      JSON null, distinct from an absent field
//	Integer   int64
//	Float     float64
//	Text      string
//	Bool      bool
//	DateTime  time.Time
//	Bytes     []byte
//	UUID      uuid.UUID
//	URI       url.URL
//	Duration  time.Duration
//
// Callers can use a type switch over these types or inspect Kind().
package cell

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a cell value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBool
	KindDateTime
	KindBytes
	KindUUID
	KindURI
	KindDuration

	numKinds = iota
)

// NumKinds is the number of distinct kinds, useful to size lookup tables.
const NumKinds = numKinds

var kindNames = [NumKinds]string{
	KindNull:     "null",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindText:     "text",
	KindBool:     "bool",
	KindDateTime: "datetime",
	KindBytes:    "bytes",
	KindUUID:     "uuid",
	KindURI:      "uri",
	KindDuration: "duration",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Value is the content of a cell.  The interface is sealed: its
// implementations are the types defined in this package.
type Value interface {
	fmt.Stringer
	Kind() Kind
	MarshalJSON() ([]byte, error)
	cell()
}

// BytesPrefix marks a JSON string holding base64 encoded bytes.
const BytesPrefix = "base64:"

// Null is the explicit null marker.
type Null struct{}

func (Null) Kind() Kind                   { return KindNull }
func (Null) String() string               { return "null" }
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
func (Null) cell()                        {}

type Integer int64

func (Integer) Kind() Kind       { return KindInteger }
func (n Integer) String() string { return strconv.FormatInt(int64(n), 10) }
func (n Integer) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(n), 10), nil
}
func (Integer) cell() {}

type Float float64

func (Float) Kind() Kind       { return KindFloat }
func (x Float) String() string { return strconv.FormatFloat(float64(x), 'g', -1, 64) }

// MarshalJSON always includes a fraction or an exponent so the value reads
// back as a Float rather than an Integer.
func (x Float) MarshalJSON() ([]byte, error) {
	f := float64(x)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("cell: unsupported float value %s", x)
	}
	b := strconv.AppendFloat(nil, f, 'g', -1, 64)
	for _, c := range b {
		if c == '.' || c == 'e' {
			return b, nil
		}
	}
	return append(b, ".0"...), nil
}
func (Float) cell() {}

type Text string

func (Text) Kind() Kind       { return KindText }
func (s Text) String() string { return string(s) }
func (s Text) MarshalJSON() ([]byte, error) {
	return quote(string(s)), nil
}
func (Text) cell() {}

type Bool bool

func (Bool) Kind() Kind       { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) MarshalJSON() ([]byte, error) {
	return strconv.AppendBool(nil, bool(b)), nil
}
func (Bool) cell() {}

type DateTime time.Time

func (DateTime) Kind() Kind        { return KindDateTime }
func (t DateTime) Time() time.Time { return time.Time(t) }
func (t DateTime) String() string  { return time.Time(t).Format(time.RFC3339Nano) }
func (t DateTime) MarshalJSON() ([]byte, error) {
	return quote(t.String()), nil
}
func (DateTime) cell() {}

type Bytes []byte

func (Bytes) Kind() Kind       { return KindBytes }
func (b Bytes) String() string { return BytesPrefix + base64.StdEncoding.EncodeToString(b) }
func (b Bytes) MarshalJSON() ([]byte, error) {
	return quote(b.String()), nil
}
func (Bytes) cell() {}

type UUID uuid.UUID

func (UUID) Kind() Kind        { return KindUUID }
func (u UUID) UUID() uuid.UUID { return uuid.UUID(u) }
func (u UUID) String() string  { return uuid.UUID(u).String() }
func (u UUID) MarshalJSON() ([]byte, error) {
	return quote(u.String()), nil
}
func (UUID) cell() {}

type URI url.URL

func (URI) Kind() Kind { return KindURI }

// URL returns a copy of the underlying URL.
func (u URI) URL() *url.URL {
	v := url.URL(u)
	return &v
}
func (u URI) String() string { return u.URL().String() }
func (u URI) MarshalJSON() ([]byte, error) {
	return quote(u.String()), nil
}
func (URI) cell() {}

type Duration time.Duration

func (Duration) Kind() Kind                { return KindDuration }
func (d Duration) Duration() time.Duration { return time.Duration(d) }
func (d Duration) String() string          { return time.Duration(d).String() }
func (d Duration) MarshalJSON() ([]byte, error) {
	return quote(d.String()), nil
}
func (Duration) cell() {}

// IsNull reports whether v is absent or the null marker.
func IsNull(v Value) bool {
	return v == nil || v.Kind() == KindNull
}

// KindOf returns the kind of v, with absent values reported as KindNull.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

// ErrTypeMismatch is matched by every *TypeMismatchError.
var ErrTypeMismatch = errors.New("cell type mismatch")

// A TypeMismatchError is returned when a cell is read as a type it does not
// hold.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cell type mismatch: want %s, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func mismatch(want Kind, v Value) error {
	return &TypeMismatchError{Want: want, Got: KindOf(v)}
}

func AsInt64(v Value) (int64, error) {
	if n, ok := v.(Integer); ok {
		return int64(n), nil
	}
	return 0, mismatch(KindInteger, v)
}

// AsFloat64 accepts Float and Integer cells.
func AsFloat64(v Value) (float64, error) {
	switch x := v.(type) {
	case Float:
		return float64(x), nil
	case Integer:
		return float64(x), nil
	}
	return 0, mismatch(KindFloat, v)
}

func AsString(v Value) (string, error) {
	if s, ok := v.(Text); ok {
		return string(s), nil
	}
	return "", mismatch(KindText, v)
}

func AsBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, mismatch(KindBool, v)
}

func AsTime(v Value) (time.Time, error) {
	if t, ok := v.(DateTime); ok {
		return time.Time(t), nil
	}
	return time.Time{}, mismatch(KindDateTime, v)
}

func AsBytes(v Value) ([]byte, error) {
	if b, ok := v.(Bytes); ok {
		return []byte(b), nil
	}
	return nil, mismatch(KindBytes, v)
}

func AsUUID(v Value) (uuid.UUID, error) {
	if u, ok := v.(UUID); ok {
		return uuid.UUID(u), nil
	}
	return uuid.Nil, mismatch(KindUUID, v)
}

func AsURL(v Value) (*url.URL, error) {
	if u, ok := v.(URI); ok {
		return u.URL(), nil
	}
	return nil, mismatch(KindURI, v)
}

func AsDuration(v Value) (time.Duration, error) {
	if d, ok := v.(Duration); ok {
		return time.Duration(d), nil
	}
	return 0, mismatch(KindDuration, v)
}
