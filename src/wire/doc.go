// Package wire implements the line-delimited JSON message format exchanged
// between nodes.
//
// A message is one Envelope per line: a JSON object with "src", "dest", and
// "body" fields, where the body is a payload object discriminated by its
// "type" field. The payload union is closed; lines carrying an unknown type,
// or a known type with missing or mistyped fields, are rejected whole.
//
// Reader and Writer frame envelopes over a byte stream. A Reader treats
// end-of-input on a line boundary as a clean EOF, and end-of-input in the
// middle of a record as a FramingError. A Writer flushes every envelope
// before returning, so a peer observes each reply promptly.
package wire
