package format

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnodel/jsontable/cell"
)

func TestJSONEncoder(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
		values []cell.Value
		want   string
	}{
		{"compact", false, []cell.Value{cell.Integer(1), nil, cell.Text("x")}, `{"a":1,"c":"x"}` + "\n"},
		{"compact null", false, []cell.Value{cell.Null{}, cell.Bool(true), nil}, `{"a":null,"b":true}` + "\n"},
		{"compact empty", false, []cell.Value{nil, nil, nil}, "{}\n"},
		{"pretty", true, []cell.Value{cell.Integer(1), nil, cell.Text("x")}, "{\n  \"a\": 1,\n  \"c\": \"x\"\n}\n"},
		{"pretty empty", true, []cell.Value{nil, nil, nil}, "{}\n"},
		{"infinite float", false, []cell.Value{cell.Float(math.Inf(1)), nil, nil}, `{"a":"+Inf"}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := &JSONEncoder{Printer: &DefaultPrinter{Writer: &buf, IndentSize: 2}, Pretty: tt.pretty}
			require.NoError(t, e.Header([]string{"a", "b", "c"}))
			require.NoError(t, e.Row(tt.values))
			require.NoError(t, e.Close())
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONEncoderRowLength(t *testing.T) {
	e := &JSONEncoder{Printer: &DefaultPrinter{Writer: &bytes.Buffer{}}}
	require.NoError(t, e.Header([]string{"a"}))
	require.Error(t, e.Row(nil))
}

func TestJSONEncoderColors(t *testing.T) {
	var buf bytes.Buffer
	c := &Colorizer{KeyColorCode: []byte("<k>"), ResetCode: []byte("</>")}
	c.KindColorCodes[cell.KindInteger] = []byte("<i>")
	c.KindColorCodes[cell.KindText] = []byte("<t>")
	e := &JSONEncoder{Printer: &DefaultPrinter{Writer: &buf}, Colorizer: c}
	require.NoError(t, e.Header([]string{"n", "s"}))
	require.NoError(t, e.Row([]cell.Value{cell.Integer(2), cell.Text("v")}))
	require.Equal(t, `{<k>"n"</>:<i>2</>,<k>"s"</>:<t>"v"</>}`+"\n", buf.String())
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestJSONEncoderWriteError(t *testing.T) {
	e := &JSONEncoder{Printer: &DefaultPrinter{Writer: failingWriter{}}}
	require.NoError(t, e.Header([]string{"a"}))
	err := e.Row([]cell.Value{cell.Integer(1)})
	var perr *PrinterError
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, errWrite)
}

func TestTableEncoder(t *testing.T) {
	var buf bytes.Buffer
	e := NewTableEncoder(&buf)
	names := []string{"a", "bb"}
	require.NoError(t, e.Header(names))
	require.NoError(t, e.Row([]cell.Value{cell.Integer(1), cell.Text("x\ty")}))
	require.NoError(t, e.Row([]cell.Value{nil, cell.Null{}}))
	require.Equal(t, 0, buf.Len())
	require.NoError(t, e.Close())
	require.Equal(t, "a  bb\n1  x y\n   NULL\n", buf.String())
	require.Equal(t, []string{"a", "bb"}, names)
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	e := NewCSVEncoder(&buf)
	require.NoError(t, e.Header([]string{"a", "b"}))
	require.NoError(t, e.Row([]cell.Value{cell.Integer(1), cell.Text("x, \"y\"")}))
	require.NoError(t, e.Row([]cell.Value{nil, cell.Null{}}))
	require.NoError(t, e.Close())
	require.Equal(t, "a,b\n1,\"x, \"\"y\"\"\"\n,\n", buf.String())
}
