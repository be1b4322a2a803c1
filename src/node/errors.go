package node

import (
	"errors"
	"fmt"

	"github.com/koanlabs/echod/src/wire"
)

// ErrNoHandshake is returned when the input stream ends before a valid init
// handshake was received. The node cannot operate without an identity.
var ErrNoHandshake = errors.New("input closed before init handshake")

// ProtocolViolation reports a syntactically valid envelope whose payload is
// not legal in the node's current state, such as an echo before the
// handshake, or a second init after it.
type ProtocolViolation struct {
	State   State
	Payload wire.Payload
}

// Error implements the error interface.
func (e ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation: unexpected %q payload in state %s", e.Payload.Type(), e.State)
}

// IsProtocolViolation checks whether an error is a ProtocolViolation.
func IsProtocolViolation(err error) bool {
	_, ok := err.(ProtocolViolation)
	return ok
}
