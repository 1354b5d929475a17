package jsontable

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/arnodel/jsontable/cell"
	"github.com/arnodel/jsontable/encoding/json"
	"github.com/arnodel/jsontable/token"
)

// A Reader gives forward-only, row by row access to a JSON array of objects.
//
// The whole document is parsed when the Reader is created.  The column
// headers are the keys of the first object, in order.  Fields of later
// objects that are not headers are ignored and headers missing from an
// object give a nil cell.
//
// Typical use:
//
//	r, err := jsontable.Open("people.json")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	name := r.Ordinal("name")
//	for r.Read() {
//	    v, _ := r.Value(name)
//	    fmt.Println(v)
//	}
//	return r.Err()
type Reader struct {
	opts    options
	closer  io.Closer // set when the Reader opened the file itself
	records []*token.Object
	headers []string
	exact   map[string]int // header name -> ordinal of its first occurrence
	row     []cell.Value
	next    int
	rows    int64
	err     error
	closed  bool
}

// Open opens the file at path and returns a Reader over its contents.  The
// file is closed by Close.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := newReader(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader returns a Reader over the contents of src.  Close does not close
// src.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	return newReader(src, opts)
}

func newReader(src io.Reader, opts []Option) (*Reader, error) {
	r := &Reader{opts: buildOptions(opts)}
	data, err := readAll(src, r.opts.encoding)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	r.records, err = decodeRecords(data)
	if err != nil {
		return nil, err
	}
	r.exact = map[string]int{}
	if len(r.records) > 0 {
		for _, key := range r.records[0].Keys() {
			if _, ok := r.exact[key]; !ok {
				r.exact[key] = len(r.headers)
				r.headers = append(r.headers, key)
			}
		}
	}
	return r, nil
}

// readAll reads the whole of src, decoding it to UTF-8.  A byte order mark
// takes precedence over enc.  Invalid UTF-8 sequences become U+FFFD, so the
// decoder never sees a 0xFF byte.
func readAll(src io.Reader, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		enc = unicode.UTF8
	}
	dec := transform.Chain(unicode.BOMOverride(enc.NewDecoder()), unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(src, dec))
}

func decodeRecords(data []byte) ([]*token.Object, error) {
	records, err := json.NewDecoder(data).DecodeRecords()
	if err != nil {
		var synErr *json.SyntaxError
		if errors.As(err, &synErr) {
			return nil, &ParseError{Line: synErr.Line, Col: synErr.Col, Msg: synErr.Msg, Err: synErr}
		}
		return nil, err
	}
	return records, nil
}

// Read advances to the next row.  It returns false when there are no more
// rows, when the Reader is closed or when a progress callback returned an
// error (see Err).  After Read returns false the current row is left as it
// was.
func (r *Reader) Read() bool {
	if r.closed || r.err != nil || r.next >= len(r.records) {
		return false
	}
	record := r.records[r.next]
	r.next++
	r.row = r.convert(record)
	r.rows++
	if err := r.opts.notify(r.rows); err != nil {
		r.err = err
		return false
	}
	return true
}

// Err returns the error that stopped Read, if any.
func (r *Reader) Err() error {
	return r.err
}

// convert lays out the members of record according to the headers.
func (r *Reader) convert(record *token.Object) []cell.Value {
	row := make([]cell.Value, len(r.headers))
	for _, m := range record.Members {
		i := r.ordinal(m.Key)
		if i < 0 {
			continue
		}
		row[i] = cell.FromToken(m.Value, r.opts.inference)
	}
	return row
}

// ordinal prefers an exact match so headers that only differ by case each
// get their own values.
func (r *Reader) ordinal(name string) int {
	if i, ok := r.exact[name]; ok {
		return i
	}
	for i, h := range r.headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// Ordinal returns the index of the column called name, compared without
// regard to case, or -1 if there is none.  Blank names always give -1, so a
// column with a blank header is only reachable by index.
func (r *Reader) Ordinal(name string) int {
	if strings.TrimSpace(name) == "" {
		return -1
	}
	return r.ordinal(name)
}

// Headers returns a copy of the column names.
func (r *Reader) Headers() []string {
	return slices.Clone(r.headers)
}

// FieldCount returns the number of columns.
func (r *Reader) FieldCount() int {
	return len(r.headers)
}

// Name returns the name of column i.
func (r *Reader) Name(i int) (string, error) {
	if i < 0 || i >= len(r.headers) {
		return "", &IndexError{Index: i, Count: len(r.headers)}
	}
	return r.headers[i], nil
}

// Value returns cell i of the current row.  The cell is nil if the field was
// absent from the record and cell.Null{} if it was null.  Before the first
// call to Read every index is out of range.
func (r *Reader) Value(i int) (cell.Value, error) {
	if i < 0 || i >= len(r.row) {
		return nil, &IndexError{Index: i, Count: len(r.row)}
	}
	return r.row[i], nil
}

// ValueByName returns the cell of the current row in the column called name
// (see Ordinal), or nil if there is no such column.
func (r *Reader) ValueByName(name string) cell.Value {
	i := r.Ordinal(name)
	if i < 0 || i >= len(r.row) {
		return nil
	}
	return r.row[i]
}

// IsNull reports whether cell i is absent or null.  Out of range indices are
// reported as null.
func (r *Reader) IsNull(i int) bool {
	if i < 0 || i >= len(r.row) {
		return true
	}
	return cell.IsNull(r.row[i])
}

// Kind returns the kind of cell i, absent cells being reported as
// cell.KindNull.
func (r *Reader) Kind(i int) (cell.Kind, error) {
	v, err := r.Value(i)
	if err != nil {
		return cell.KindNull, err
	}
	return cell.KindOf(v), nil
}

// Values copies the cells of the current row into dst and returns the number
// of cells copied.
func (r *Reader) Values(dst []cell.Value) int {
	return copy(dst, r.row)
}

// Rows returns the number of rows read so far.
func (r *Reader) Rows() int64 {
	return r.rows
}

// Close releases the Reader.  The underlying file is closed if the Reader was
// created by Open.  Calling Close more than once is allowed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.records = nil
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func getAs[T any](r *Reader, i int, as func(cell.Value) (T, error)) (T, error) {
	v, err := r.Value(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return as(v)
}

func (r *Reader) Int64(i int) (int64, error)            { return getAs(r, i, cell.AsInt64) }
func (r *Reader) Float64(i int) (float64, error)        { return getAs(r, i, cell.AsFloat64) }
func (r *Reader) String(i int) (string, error)          { return getAs(r, i, cell.AsString) }
func (r *Reader) Bool(i int) (bool, error)              { return getAs(r, i, cell.AsBool) }
func (r *Reader) Time(i int) (time.Time, error)         { return getAs(r, i, cell.AsTime) }
func (r *Reader) Bytes(i int) ([]byte, error)           { return getAs(r, i, cell.AsBytes) }
func (r *Reader) UUID(i int) (uuid.UUID, error)         { return getAs(r, i, cell.AsUUID) }
func (r *Reader) URL(i int) (*url.URL, error)           { return getAs(r, i, cell.AsURL) }
func (r *Reader) Duration(i int) (time.Duration, error) { return getAs(r, i, cell.AsDuration) }
