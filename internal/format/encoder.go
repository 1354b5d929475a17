package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arnodel/jsontable/cell"
)

// A RowEncoder outputs the rows of a table.  Header is called once before the
// rows and Close once after them.
type RowEncoder interface {
	Header(names []string) error
	Row(values []cell.Value) error
	Close() error
}

// JSONEncoder prints each row as a JSON object, on one line or indented when
// Pretty is set.  Absent cells are left out of the object.
type JSONEncoder struct {
	Printer   Printer
	Colorizer *Colorizer
	Pretty    bool

	names []string
}

var _ RowEncoder = &JSONEncoder{}

func (e *JSONEncoder) Header(names []string) error {
	e.names = names
	return nil
}

func (e *JSONEncoder) Row(values []cell.Value) (err error) {
	defer CatchPrinterError(&err)
	if len(values) != len(e.names) {
		return fmt.Errorf("row has %d values for %d columns", len(values), len(e.names))
	}
	p := e.Printer
	p.PrintBytes(openObjectBytes)
	first := true
	for i, v := range values {
		if v == nil {
			continue
		}
		if first {
			if e.Pretty {
				p.Indent()
			}
			first = false
		} else {
			p.PrintBytes(commaBytes)
			if e.Pretty {
				p.NewLine()
			}
		}
		e.Colorizer.PrintKey(p, e.names[i])
		if e.Pretty {
			p.PrintBytes(colonSpaceBytes)
		} else {
			p.PrintBytes(colonBytes)
		}
		e.Colorizer.PrintCell(p, v)
	}
	if e.Pretty && !first {
		p.Dedent()
	}
	p.PrintBytes(closeObjectBytes)
	p.NewLine()
	return nil
}

func (e *JSONEncoder) Close() error {
	return nil
}

var (
	openObjectBytes  = []byte("{")
	closeObjectBytes = []byte("}")
	commaBytes       = []byte(",")
	colonBytes       = []byte(":")
	colonSpaceBytes  = []byte(": ")
)

// TableEncoder prints rows as aligned columns under a header line.  Absent
// cells are blank and null cells read NULL.
type TableEncoder struct {
	tw *tabwriter.Writer
}

var _ RowEncoder = &TableEncoder{}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{tw: tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)}
}

func (e *TableEncoder) Header(names []string) error {
	return e.line(names)
}

func (e *TableEncoder) Row(values []cell.Value) error {
	fields := make([]string, len(values))
	for i, v := range values {
		switch {
		case v == nil:
		case v.Kind() == cell.KindNull:
			fields[i] = "NULL"
		default:
			fields[i] = v.String()
		}
	}
	return e.line(fields)
}

// Close writes out the buffered rows, the column widths being only known
// when all the rows have been seen.
func (e *TableEncoder) Close() error {
	return e.tw.Flush()
}

func (e *TableEncoder) line(fields []string) error {
	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = blanker.Replace(f)
	}
	_, err := io.WriteString(e.tw, strings.Join(cells, "\t")+"\n")
	return err
}

var blanker = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// CSVEncoder prints rows as CSV records after a header record.  Absent and
// null cells are empty fields.
type CSVEncoder struct {
	w *csv.Writer
}

var _ RowEncoder = &CSVEncoder{}

func NewCSVEncoder(w io.Writer) *CSVEncoder {
	return &CSVEncoder{w: csv.NewWriter(w)}
}

func (e *CSVEncoder) Header(names []string) error {
	return e.w.Write(names)
}

func (e *CSVEncoder) Row(values []cell.Value) error {
	record := make([]string, len(values))
	for i, v := range values {
		if v != nil && v.Kind() != cell.KindNull {
			record[i] = v.String()
		}
	}
	return e.w.Write(record)
}

func (e *CSVEncoder) Close() error {
	e.w.Flush()
	return e.w.Error()
}
