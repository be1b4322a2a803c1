package wire

import (
	"bufio"
	"io"
)

// Reader reads envelopes from a byte stream, one line at a time.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader framing envelopes over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next envelope on the stream. It returns io.EOF when the
// stream is exhausted on a line boundary, and a FramingError when it is
// exhausted in the middle of a record. Any other read failure is returned
// as-is.
func (r *Reader) Read() (*Envelope, error) {
	line, err := r.r.ReadBytes('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return nil, io.EOF
		}
		return nil, FramingError{Reason: "stream ended mid-record", Line: string(line)}
	}
	if err != nil {
		return nil, err
	}
	return Decode(line)
}

// Writer writes envelopes to a byte stream, one line per envelope.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer framing envelopes over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write encodes one envelope, writes it as a single line, and flushes it to
// the transport before returning, so the reply is promptly observable by the
// peer.
func (w *Writer) Write(env *Envelope) error {
	buf, err := Encode(env)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(buf); err != nil {
		return err
	}
	return w.w.Flush()
}
