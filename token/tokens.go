package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// A Value is a node of a decoded JSON document.  It is one of *Scalar,
// *Object or *Array.
//
// For example, the JSON value
//
//	{"id": 123, "tags": ["important", "new"]}
//
// is represented as (in pseudocode for clarity):
//
//	Object{
//	    Member{"id", Scalar(123, Number)},
//	    Member{"tags", Array{Scalar("important", String), Scalar("new", String)}},
//	}
//
// Object members are kept in the order they appear in the input.
type Value interface {
	fmt.Stringer
	value()
}

// Object represents a JSON object.  Duplicate keys are kept as they appear.
type Object struct {
	Members []Member
}

var _ Value = &Object{}

func (o *Object) value() {}

func (o *Object) String() string {
	return fmt.Sprintf("Object(%d members)", len(o.Members))
}

// Keys returns the member keys in input order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// A Member is a key-value pair inside an Object.
type Member struct {
	Key   string
	Value Value
}

// Array represents a JSON array.
type Array struct {
	Items []Value
}

var _ Value = &Array{}

func (a *Array) value() {}

func (a *Array) String() string {
	return fmt.Sprintf("Array(%d items)", len(a.Items))
}

// Scalar is the type used to represent all scalar JSON values, i.e.
// - strings
// - numbers
// - booleans (to values)
// - null (a single value)
//
// The type is encoded in the Type field, while the Bytes fields contains the
// literal representation of the value as found in the input.
type Scalar struct {

	// Literal representation of the value, e.g.
	// - the string "foo" is represented as []byte("\"foo\"")
	// - the number 123.5 is represented as []byte("132.5")
	// - the boolean true is represented as []byte("true")
	Bytes []byte

	// Type of the value
	TypeAndFlags uint8
}

var _ Value = &Scalar{}

func (s *Scalar) value() {}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func (s *Scalar) Type() ScalarType {
	return (ScalarType(s.TypeAndFlags & TypeMask))
}

func (s *Scalar) IsUnescaped() bool {
	return UnescapedMask&s.TypeAndFlags != 0
}

// IsIntegral reports whether a Number literal has neither a fraction nor an
// exponent part.
func (s *Scalar) IsIntegral() bool {
	return s.Type() == Number && bytes.IndexAny(s.Bytes, ".eE") < 0
}

func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// ToString returns the Go string encoded by a String scalar.  It panics if
// the scalar is not a well-formed string literal.
func (s *Scalar) ToString() string {
	if s.Type() != String {
		panic(fmt.Sprintf("ToString called on a %s scalar", s.Type()))
	}
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	var str string
	if err := json.Unmarshal(s.Bytes, &str); err != nil {
		panic(err)
	}
	return str
}

// Int64 returns the value of an integral Number scalar.  The second return
// value is false if the literal is not integral or does not fit in an int64.
func (s *Scalar) Int64() (int64, bool) {
	if !s.IsIntegral() {
		return 0, false
	}
	n, err := strconv.ParseInt(string(s.Bytes), 10, 64)
	return n, err == nil
}

// Float64 returns the value of a Number scalar.  Literals out of the float64
// range yield ±Inf (or 0) together with a *strconv.NumError.
func (s *Scalar) Float64() (float64, error) {
	return strconv.ParseFloat(string(s.Bytes), 64)
}

// Bool returns the value of a Boolean scalar.
func (s *Scalar) Bool() bool {
	return s.Type() == Boolean && s.Bytes[0] == 't'
}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null    ScalarType = 0x0 // the type of JSON null
	Boolean ScalarType = 0x1 // a JSON boolean
	Number  ScalarType = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

func (t ScalarType) String() string {
	switch t {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "ScalarType(" + strconv.Itoa(int(t)) + ")"
	}
}

const (
	TypeMask      = 0b00011
	UnescapedMask = 0b10000
)

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)

var (
	TrueScalar  = NewScalar(Boolean, trueBytes)
	FalseScalar = NewScalar(Boolean, falseBytes)
	NullScalar  = NewScalar(Null, nullBytes)
)

func StringScalar(s string) *Scalar {
	var b strings.Builder
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		panic(err)
	}
	// Remove the new line at the end
	encoded := strings.TrimSuffix(b.String(), "\n")
	return NewScalar(String, []byte(encoded))
}
