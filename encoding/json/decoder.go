package json

import (
	"fmt"

	"github.com/arnodel/jsontable/internal/scanner"
	"github.com/arnodel/jsontable/token"
)

// maxDepth bounds the nesting of arrays and objects.
const maxDepth = 10000

// A SyntaxError describes malformed JSON input.  Line and Col are 1-based
// and point at the offending byte.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d: %s", e.Line, e.Col, e.Msg)
}

// A Decoder parses a JSON document held in memory into token values.
type Decoder struct {
	scanr *scanner.Scanner
}

// NewDecoder sets up a new Decoder instance to read the given document.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{scanr: scanner.NewScanner(data)}
}

// DecodeRecords parses a document consisting of an array of objects and
// returns the objects.  A document made of whitespace only has no records.
// Any other shape is reported as a *SyntaxError pointing at the first byte
// that breaks it.
func (d *Decoder) DecodeRecords() ([]*token.Object, error) {
	b := d.scanr.SkipSpaceAndPeek()
	if b == scanner.EOF && d.scanr.Done() {
		return nil, nil
	}
	if b != '[' {
		return nil, UnexpectedByte(d.scanr, "expected an array of objects, got")
	}
	d.scanr.Read()
	var records []*token.Object
	b = d.scanr.SkipSpaceAndPeek()
	if b == ']' {
		d.scanr.Read()
		return records, d.expectEnd()
	}
	for {
		if d.scanr.SkipSpaceAndPeek() != '{' {
			return nil, UnexpectedByte(d.scanr, "expected object, got")
		}
		obj, err := d.parseObject(1)
		if err != nil {
			return nil, err
		}
		records = append(records, obj)
		switch d.scanr.SkipSpaceAndPeek() {
		case ']':
			d.scanr.Read()
			return records, d.expectEnd()
		case ',':
			d.scanr.Read()
		default:
			return nil, UnexpectedByte(d.scanr, "expected ']' or ',', got")
		}
	}
}

func (d *Decoder) expectEnd() error {
	if d.scanr.SkipSpaceAndPeek() != scanner.EOF || !d.scanr.Done() {
		return UnexpectedByte(d.scanr, "unexpected content after end of document")
	}
	return nil
}

func (d *Decoder) parseValue(depth int) (token.Value, error) {
	b := d.scanr.SkipSpaceAndPeek()
	switch b {
	case '"':
		return ParseString(d.scanr)
	case '[':
		return d.parseArray(depth + 1)
	case '{':
		return d.parseObject(depth + 1)
	case 't':
		return literal(d.scanr, trueBytes, token.TrueScalar)
	case 'f':
		return literal(d.scanr, falseBytes, token.FalseScalar)
	case 'n':
		return literal(d.scanr, nullBytes, token.NullScalar)
	default:
		if b == '-' || scanner.IsDigit(b) {
			return ParseNumber(d.scanr)
		}
		return nil, UnexpectedByte(d.scanr, "unexpected")
	}
}

func (d *Decoder) parseArray(depth int) (*token.Array, error) {
	if depth > maxDepth {
		return nil, UnexpectedByte(d.scanr, "maximum nesting depth exceeded at")
	}
	if err := ExpectByte(d.scanr, '['); err != nil {
		return nil, err
	}
	arr := &token.Array{}
	if d.scanr.SkipSpaceAndPeek() == ']' {
		d.scanr.Read()
		return arr, nil
	}
	for {
		v, err := d.parseValue(depth)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, v)
		switch d.scanr.SkipSpaceAndPeek() {
		case ']':
			d.scanr.Read()
			return arr, nil
		case ',':
			d.scanr.Read()
		default:
			return nil, UnexpectedByte(d.scanr, "expected ']' or ',', got")
		}
	}
}

func (d *Decoder) parseObject(depth int) (*token.Object, error) {
	if depth > maxDepth {
		return nil, UnexpectedByte(d.scanr, "maximum nesting depth exceeded at")
	}
	if err := ExpectByte(d.scanr, '{'); err != nil {
		return nil, err
	}
	obj := &token.Object{}
	if d.scanr.SkipSpaceAndPeek() == '}' {
		d.scanr.Read()
		return obj, nil
	}
	for {
		key, err := ParseString(d.scanr)
		if err != nil {
			return nil, err
		}
		if d.scanr.SkipSpaceAndPeek() != ':' {
			return nil, UnexpectedByte(d.scanr, "expected ':', got")
		}
		d.scanr.Read()
		v, err := d.parseValue(depth)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, token.Member{Key: key.ToString(), Value: v})
		switch d.scanr.SkipSpaceAndPeek() {
		case '}':
			d.scanr.Read()
			return obj, nil
		case ',':
			d.scanr.Read()
			d.scanr.SkipSpaceAndPeek()
		default:
			return nil, UnexpectedByte(d.scanr, "expected '}' or ',' got")
		}
	}
}

func ExpectByte(scanr *scanner.Scanner, xb byte) error {
	b := scanr.Read()
	if b != xb {
		scanr.Back()
		return UnexpectedByte(scanr, "expected %q, got", xb)
	}
	return nil
}

func UnexpectedByte(scanr *scanner.Scanner, expected string, args ...interface{}) error {
	pos := scanr.CurrentPos()
	b := scanr.Read()
	err := &SyntaxError{Line: pos.Line + 1, Col: pos.Col + 1}
	if b == scanner.EOF && scanr.Done() {
		err.Msg = fmt.Sprintf("%s: <EOF>", fmt.Sprintf(expected, args...))
	} else {
		err.Msg = fmt.Sprintf("%s: %q", fmt.Sprintf(expected, args...), b)
	}
	return err
}

func ParseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	if err := ExpectByte(scanr, '"'); err != nil {
		return nil, err
	}
	isUnescaped := true
	for {
		b := scanr.Read()
		switch b {
		case '\\':
			isUnescaped = false
			switch x := scanr.Read(); x {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				continue
			case 'u':
				for i := 0; i < 4; i++ {
					if !scanner.IsHex(scanr.Read()) {
						scanr.Back()
						return nil, UnexpectedByte(scanr, "expected hex, got")
					}
				}
			default:
				scanr.Back()
				return nil, UnexpectedByte(scanr, "invalid escape character")
			}
		case '"':
			scalar := token.NewScalar(token.String, scanr.EndToken())
			if isUnescaped {
				scalar.TypeAndFlags |= token.UnescapedMask
			}
			return scalar, nil
		case scanner.EOF:
			scanr.Back()
			return nil, UnexpectedByte(scanr, "unterminated string")
		default:
			if scanner.IsCtrl(b) {
				scanr.Back()
				return nil, UnexpectedByte(scanr, "invalid control character in string")
			}
		}
	}
}

// ParseNumber parses a JSON number from the scanner.
func ParseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	var n int
	b := scanr.Read()

	// Sign part
	if b == '-' {
		b = scanr.Read()
	}

	// Integer part
	if b == '0' {
		b = scanr.Read()
	} else if b >= '1' && b <= '9' {
		b, _ = ReadDigits(scanr)
	} else {
		scanr.Back()
		return nil, UnexpectedByte(scanr, "expected digit, got")
	}

	// Fraction part
	if b == '.' {
		b, n = ReadDigits(scanr)
		if n == 0 {
			scanr.Back()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		b = scanr.Peek()
		if b == '-' || b == '+' {
			scanr.Read()
		}
		_, n = ReadDigits(scanr)
		if n == 0 {
			scanr.Back()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}
	scanr.Back()
	return token.NewScalar(token.Number, scanr.EndToken()), nil
}

// ReadDigits consumes a run of decimal digits.  It returns the first byte
// after the run (which has been read) and the number of digits.
func ReadDigits(scanr *scanner.Scanner) (byte, int) {
	var n int
	for {
		b := scanr.Read()
		if !scanner.IsDigit(b) {
			return b, n
		}
		n++
	}
}

func literal(scanr *scanner.Scanner, expected []byte, scalar *token.Scalar) (*token.Scalar, error) {
	for _, xb := range expected {
		if err := ExpectByte(scanr, xb); err != nil {
			return nil, err
		}
	}
	return scalar, nil
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
