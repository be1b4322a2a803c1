// Package node implements the reactive component of an echod node.
//
// A Node consumes envelopes from a single byte stream, strictly in arrival
// order, and emits at most one reply per request before considering the next.
// It is a two-state machine: Uninitialized, where the only legal payload is
// the init handshake that assigns the node its identity, and Ready, where the
// only legal payload is an echo request. Anything else is a protocol
// violation and terminates processing; the protocol defines no recovery path
// for a non-conforming peer.
//
// All mutable state (the identity and the outbound message counter) is owned
// by the Node and touched only from the Run loop, so no locking is needed.
package node
