package main

import (
	"github.com/arnodel/jsontable/cell"
	"github.com/arnodel/jsontable/internal/format"
)

// Some color ANSI codes
var (
	Reset = []byte("\033[0m")

	Green   = []byte("\033[32m")
	Yellow  = []byte("\033[33m")
	Blue    = []byte("\033[34m")
	Magenta = []byte("\033[35m")
	Cyan    = []byte("\033[36m")
	White   = []byte("\033[37m")

	DimWhite = []byte("\033[37;2m")

	BrightBlue = []byte("\033[34;1m")
)

var defaultColorizer = format.Colorizer{
	KindColorCodes: [cell.NumKinds][]byte{
		cell.KindNull:     DimWhite,
		cell.KindInteger:  White,
		cell.KindFloat:    White,
		cell.KindText:     Green,
		cell.KindBool:     Yellow,
		cell.KindDateTime: Cyan,
		cell.KindBytes:    Magenta,
		cell.KindUUID:     Blue,
		cell.KindURI:      Blue,
		cell.KindDuration: Cyan,
	},
	KeyColorCode: BrightBlue,
	ResetCode:    Reset,
}
