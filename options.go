package jsontable

import (
	"golang.org/x/text/encoding"

	"github.com/arnodel/jsontable/cell"
)

// DefaultNotifyInterval is the number of rows between two progress
// notifications unless WithNotifyInterval says otherwise.
const DefaultNotifyInterval = 10000

// A ProgressFunc is called in-line by Reader.Read and Writer.WriteRow each
// time the row count reaches a multiple of the notify interval.  A non-nil
// error is returned to the caller of Read or WriteRow.
type ProgressFunc func(rows int64) error

// Progress is the event sent to a channel registered with WithProgressChan.
type Progress struct {
	Rows int64
}

// An Option configures a Reader or a Writer.  Options that make no sense for
// one of them (e.g. parsing options for a Writer) are ignored.
type Option func(*options)

type options struct {
	notifyInterval int
	progress       ProgressFunc
	progressCh     chan<- Progress
	inference      cell.Inference
	encoding       encoding.Encoding
}

func buildOptions(opts []Option) options {
	o := options{
		notifyInterval: DefaultNotifyInterval,
		inference:      cell.DefaultInference,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// notify fires progress notifications if rows is a multiple of the
// interval.  The channel is sent to first and the send blocks.
func (o *options) notify(rows int64) error {
	if o.notifyInterval <= 0 || rows%int64(o.notifyInterval) != 0 {
		return nil
	}
	if o.progressCh != nil {
		o.progressCh <- Progress{Rows: rows}
	}
	if o.progress != nil {
		return o.progress(rows)
	}
	return nil
}

// WithNotifyInterval sets the number of rows between progress notifications.
// A value <= 0 disables them.
func WithNotifyInterval(n int) Option {
	return func(o *options) { o.notifyInterval = n }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithProgressChan registers a channel receiving progress events.  Sends
// block, so the caller must drain the channel while reading or writing.
func WithProgressChan(ch chan<- Progress) Option {
	return func(o *options) { o.progressCh = ch }
}

// WithDateParsing controls whether date strings become cell.DateTime values
// (enabled by default).
func WithDateParsing(enabled bool) Option {
	return func(o *options) { o.inference.Dates = enabled }
}

// WithUUIDParsing controls whether UUID strings become cell.UUID values.
func WithUUIDParsing(enabled bool) Option {
	return func(o *options) { o.inference.UUIDs = enabled }
}

// WithURIParsing controls whether absolute URI strings become cell.URI
// values.
func WithURIParsing(enabled bool) Option {
	return func(o *options) { o.inference.URIs = enabled }
}

// WithDurationParsing controls whether duration strings such as "1h30m"
// become cell.Duration values.
func WithDurationParsing(enabled bool) Option {
	return func(o *options) { o.inference.Durations = enabled }
}

// WithBytesParsing controls whether "base64:..." strings become cell.Bytes
// values.
func WithBytesParsing(enabled bool) Option {
	return func(o *options) { o.inference.Bytes = enabled }
}

// WithInference replaces all the string parsing settings at once.
func WithInference(inf cell.Inference) Option {
	return func(o *options) { o.inference = inf }
}

// WithEncoding sets the text encoding of the input or output.  A Reader still
// honours a byte order mark at the start of its input.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) { o.encoding = enc }
}
