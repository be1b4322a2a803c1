package net

import (
	"io"
	"os"
)

// StdioStreamLayer implements StreamLayer over a reader/writer pair, normally
// the process's standard input and output.
type StdioStreamLayer struct {
	in  io.Reader
	out io.Writer
}

// NewStdioStreamLayer returns a StreamLayer serving the session over stdin
// and stdout.
func NewStdioStreamLayer() *StdioStreamLayer {
	return &StdioStreamLayer{in: os.Stdin, out: os.Stdout}
}

// NewPipeStreamLayer returns a StreamLayer over an arbitrary reader/writer
// pair. It is used in tests to drive a node from in-memory buffers.
func NewPipeStreamLayer(in io.Reader, out io.Writer) *StdioStreamLayer {
	return &StdioStreamLayer{in: in, out: out}
}

// Open implements the StreamLayer interface. The stdio pair is available
// immediately.
func (s *StdioStreamLayer) Open() (Stream, error) {
	return &stdioStream{in: s.in, out: s.out}, nil
}

// Close implements the StreamLayer interface.
func (s *StdioStreamLayer) Close() error {
	return nil
}

type stdioStream struct {
	in  io.Reader
	out io.Writer
}

func (s *stdioStream) Read(p []byte) (int, error) {
	return s.in.Read(p)
}

func (s *stdioStream) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Close is a no-op: the process does not own its standard streams.
func (s *stdioStream) Close() error {
	return nil
}

// Addr implements the Stream interface.
func (s *stdioStream) Addr() string {
	return "stdio"
}
