package node

import (
	"io"

	"github.com/koanlabs/echod/src/wire"
	"github.com/sirupsen/logrus"
)

// Node is one participant in the echo protocol. It reads envelopes from a
// byte stream one at a time, advances its state machine, and writes back
// replies in the order the requests arrived.
type Node struct {
	state State

	// id is assigned exactly once, by the init handshake, and is immutable
	// for the life of the process.
	id string

	// nextMsgID is the outbound message counter. It starts at 0 and advances
	// exactly once per echo_ok reply.
	nextMsgID uint64

	reader *wire.Reader
	writer *wire.Writer

	logger *logrus.Entry
}

// NewNode returns a Node serving the echo protocol over the given stream.
func NewNode(stream io.ReadWriter, logger *logrus.Entry) *Node {
	return &Node{
		state:  Uninitialized,
		reader: wire.NewReader(stream),
		writer: wire.NewWriter(stream),
		logger: logger,
	}
}

// GetState returns the current state of the node.
func (n *Node) GetState() State {
	return n.state
}

// ID returns the node's identity, or "" before the handshake.
func (n *Node) ID() string {
	return n.id
}

// Run drives the node until end-of-input or a fatal error. End-of-input
// before the handshake is an error; end-of-input afterwards is a clean
// shutdown and returns nil. Nothing is retried: decode failures, protocol
// violations, and transport failures all abort the run.
func (n *Node) Run() error {
	for {
		env, err := n.reader.Read()
		if err == io.EOF {
			if n.state != Ready {
				n.logger.Error(ErrNoHandshake)
				return ErrNoHandshake
			}
			n.state = Shutdown
			n.logger.Info("End of input, shutting down")
			return nil
		}
		if err != nil {
			n.logger.Error(err)
			return err
		}

		reply, err := n.handle(env)
		if err != nil {
			n.logger.Error(err)
			return err
		}

		if err := n.writer.Write(reply); err != nil {
			n.logger.Error(err)
			return err
		}
	}
}

// handle advances the state machine with one envelope and returns the reply.
// Every legal envelope produces exactly one reply; an illegal one produces a
// ProtocolViolation.
func (n *Node) handle(env *wire.Envelope) (*wire.Envelope, error) {
	switch n.state {
	case Uninitialized:
		init, ok := env.Body.(wire.Init)
		if !ok {
			return nil, ProtocolViolation{State: n.state, Payload: env.Body}
		}

		n.id = init.NodeID
		n.state = Ready

		n.logger.WithFields(logrus.Fields{
			"node_id":  init.NodeID,
			"node_ids": init.NodeIDs,
		}).Info("Initialized")

		return &wire.Envelope{
			Src:  n.id,
			Dest: env.Src,
			Body: wire.InitOk{InReplyTo: init.MsgID},
		}, nil

	case Ready:
		echo, ok := env.Body.(wire.Echo)
		if !ok {
			return nil, ProtocolViolation{State: n.state, Payload: env.Body}
		}

		// Read-and-increment is a single step on the sequential Run path, so
		// no two replies can carry the same counter value.
		msgID := n.nextMsgID
		n.nextMsgID++

		n.logger.WithFields(logrus.Fields{
			"src":         env.Src,
			"msg_id":      msgID,
			"in_reply_to": echo.MsgID,
		}).Debug("Echo")

		return &wire.Envelope{
			Src:  n.id,
			Dest: env.Src,
			Body: wire.EchoOk{
				MsgID:     msgID,
				InReplyTo: echo.MsgID,
				Echo:      echo.Echo,
			},
		}, nil

	default:
		return nil, ProtocolViolation{State: n.state, Payload: env.Body}
	}
}
