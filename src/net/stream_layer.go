package net

import "io"

// Stream is one ordered byte-stream session between this node and its peer.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer

	// Addr describes the transport endpoint, for diagnostics.
	Addr() string
}

// StreamLayer is used by the node to obtain the single session stream it
// serves. Implementations must provide ordered reads and ordered writes;
// line framing and flushing are handled above, in the wire package.
type StreamLayer interface {
	// Open blocks until the session stream is available and returns it.
	Open() (Stream, error)

	// Close releases any resources held while waiting for the session, such
	// as a bound listener.
	Close() error
}
