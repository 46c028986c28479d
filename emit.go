package wikinode

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
)

// A Sink receives accepted nodes in input order.
type Sink interface {
	Emit(Node) error
}

// Writer is a Sink writing one JSON object per line.
//
// Lines are buffered, but a line is only ever handed to the
// underlying writer whole, so whatever reached it before a failure is
// valid JSON lines.
type Writer struct {
	w   *bufio.Writer
	buf bytes.Buffer
	enc *json.Encoder
}

// NewWriter gets a JSON lines Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	rv := &Writer{w: bufio.NewWriterSize(w, 64*1024)}
	rv.enc = json.NewEncoder(&rv.buf)
	rv.enc.SetEscapeHTML(false)
	return rv
}

// Emit writes a node as a line.
func (w *Writer) Emit(n Node) error {
	w.buf.Reset()
	if err := w.enc.Encode(n); err != nil {
		return err
	}
	if w.buf.Len() > w.w.Available() && w.w.Buffered() > 0 {
		if err := w.w.Flush(); err != nil {
			return err
		}
	}
	_, err := w.w.Write(w.buf.Bytes())
	return err
}

// Flush writes out any buffered lines.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
