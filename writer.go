package jsontable

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/transform"

	"github.com/arnodel/jsontable/encoding/json"
)

var rowSeparator = []byte(",\n")

// A Writer accumulates rows as JSON objects and writes them out when it is
// closed.  A single row is written as a bare object, more rows are wrapped in
// a JSON array and no rows at all give an empty output.
//
// A Reader only accepts an array, so the output of a Writer that received
// exactly one row cannot be read back as it is.
type Writer struct {
	opts   options
	dst    io.Writer
	enc    *transform.Writer // set when an encoding was requested
	file   *os.File          // set when the Writer created the file itself
	buf    []byte
	rows   int64
	closed bool
}

// Create creates (or truncates) the file at path and returns a Writer to it.
// The file is closed by Close.
func Create(path string, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := NewWriter(bufio.NewWriter(f), opts...)
	w.file = f
	return w, nil
}

// NewWriter returns a Writer to dst.  Close flushes dst if it has a
// Flush() error method but never closes it.
func NewWriter(dst io.Writer, opts ...Option) *Writer {
	w := &Writer{opts: buildOptions(opts), dst: dst}
	if w.opts.encoding != nil {
		w.enc = transform.NewWriter(dst, w.opts.encoding.NewEncoder())
	}
	return w
}

// WriteRow adds a row made of the given fields, in key order.  Values are
// encoded as described for encoding/json.AppendValue.
//
// If a value cannot be encoded the row is not added.  If the progress
// callback fails the row is added and its error is returned.
func (w *Writer) WriteRow(fields map[string]any) error {
	if w.closed {
		return ErrClosed
	}
	buf, err := json.AppendMap(w.delimited(), fields)
	if err != nil {
		return fmt.Errorf("row %d: %w", w.rows+1, err)
	}
	return w.added(buf)
}

// WriteOrderedRow is like WriteRow but keeps the columns in the order of
// names.
func (w *Writer) WriteOrderedRow(names []string, values []any) error {
	if w.closed {
		return ErrClosed
	}
	buf, err := json.AppendObject(w.delimited(), names, values)
	if err != nil {
		return fmt.Errorf("row %d: %w", w.rows+1, err)
	}
	return w.added(buf)
}

func (w *Writer) delimited() []byte {
	if len(w.buf) == 0 {
		return w.buf
	}
	return append(w.buf, rowSeparator...)
}

func (w *Writer) added(buf []byte) error {
	w.buf = buf
	w.rows++
	return w.opts.notify(w.rows)
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int64 {
	return w.rows
}

// Flush flushes the destination if it supports it.  Rows are only written at
// Close so this does not write any of them.
func (w *Writer) Flush() error {
	if w.closed {
		return nil
	}
	return flush(w.dst)
}

// Close writes out all the rows and flushes the destination.  The destination
// is closed only if the Writer was created by Create.  Calling Close more than
// once is allowed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var out io.Writer = w.dst
	if w.enc != nil {
		out = w.enc
	}
	err := w.writeDocument(out)
	w.buf = nil
	if w.enc != nil {
		err = firstError(err, w.enc.Close())
	}
	err = firstError(err, flush(w.dst))
	if w.file != nil {
		err = firstError(err, w.file.Close())
	}
	return err
}

func (w *Writer) writeDocument(out io.Writer) error {
	if len(w.buf) == 0 {
		return nil
	}
	doc := w.buf
	if w.rows > 1 {
		doc = make([]byte, 0, len(w.buf)+2)
		doc = append(doc, '[')
		doc = append(doc, w.buf...)
		doc = append(doc, ']')
	}
	_, err := out.Write(doc)
	return err
}

type flusher interface {
	Flush() error
}

func flush(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func firstError(err, next error) error {
	if err != nil {
		return err
	}
	return next
}
