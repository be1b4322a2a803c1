// Package net implements the byte-stream transports over which an echod node
// serves its session.
//
// The protocol core only needs one ordered byte stream with line-buffered
// reads and flushed writes; it does not care which transport provides it.
// This package contains two interchangeable providers behind the StreamLayer
// interface:
//
// - Stdio: the process's standard input and output pair
//
// - TCP: a single connection accepted on a bound local address
//
// Either way, exactly one session is served per process lifetime.
package net
