// Package jsontable reads and writes JSON documents made of a flat array of
// objects as if they were tables.
//
// A Reader parses the whole document up front and then hands out one row at a
// time, forward only.  The columns are the keys of the first object.  Each
// cell is a cell.Value: numbers become cell.Integer or cell.Float, strings
// become cell.Text unless they look like a date (cell.DateTime), and
// optionally a UUID, a URI, a duration or base64 bytes.  A JSON null is
// cell.Null{} whereas a missing field is a nil cell.
//
// A Writer is the symmetric operation: rows are buffered and written when the
// Writer is closed, as a JSON array if there are several rows, as a bare
// object if there is only one and as nothing at all if there are none.
//
// Both Reader and Writer can report progress every N rows (10000 by default)
// through a callback or a channel, and both only close the files they opened
// themselves.
//
// Sub-packages:
//
// - cell: the values held by cells
// - encoding/json: JSON decoder and encoder
// - token: the decoded JSON document model
package jsontable
