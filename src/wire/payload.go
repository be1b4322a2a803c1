package wire

// Payload is the tagged inner content of an Envelope. The union is closed:
// the only implementations are Init, InitOk, Echo, and EchoOk, and the codec
// rejects any other tag.
type Payload interface {
	// Type returns the wire tag of the payload.
	Type() string
}

// Init is the handshake request that assigns the node its identity.
type Init struct {
	MsgID   uint64
	NodeID  string
	NodeIDs []string
}

// Type implements the Payload interface.
func (Init) Type() string { return "init" }

// InitOk acknowledges an Init request.
type InitOk struct {
	InReplyTo uint64
}

// Type implements the Payload interface.
func (InitOk) Type() string { return "init_ok" }

// Echo is a request to repeat a string back to the sender.
type Echo struct {
	MsgID uint64
	Echo  string
}

// Type implements the Payload interface.
func (Echo) Type() string { return "echo" }

// EchoOk answers an Echo request. MsgID is this node's own outbound counter
// value; InReplyTo carries the MsgID of the request it answers.
type EchoOk struct {
	MsgID     uint64
	InReplyTo uint64
	Echo      string
}

// Type implements the Payload interface.
func (EchoOk) Type() string { return "echo_ok" }
