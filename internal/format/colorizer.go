package format

import (
	"github.com/arnodel/jsontable/cell"
	"github.com/arnodel/jsontable/token"
)

// A Colorizer surrounds keys and cells with terminal color codes.  A nil
// *Colorizer prints without colors.
type Colorizer struct {
	KeyColorCode   []byte
	KindColorCodes [cell.NumKinds][]byte
	ResetCode      []byte
}

func (c *Colorizer) PrintKey(p Printer, key string) {
	if c != nil {
		p.PrintBytes(c.KeyColorCode)
	}
	p.PrintBytes(token.StringScalar(key).Bytes)
	if c != nil {
		p.PrintBytes(c.ResetCode)
	}
}

// PrintCell prints the JSON representation of v.  Values that have none
// (infinite floats) are printed as strings.
func (c *Colorizer) PrintCell(p Printer, v cell.Value) {
	if c != nil {
		p.PrintBytes(c.KindColorCodes[cell.KindOf(v)])
	}
	p.PrintBytes(cellBytes(v))
	if c != nil {
		p.PrintBytes(c.ResetCode)
	}
}

func cellBytes(v cell.Value) []byte {
	if v == nil {
		return nullBytes
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return token.StringScalar(v.String()).Bytes
	}
	return b
}

var nullBytes = []byte("null")
