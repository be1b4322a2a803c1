package wire

import (
	"bytes"
	"fmt"

	"github.com/ugorji/go/codec"
)

func jsonHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.Raw = true
	return jh
}

// wireEnvelope is the encode-side shape of an envelope.
type wireEnvelope struct {
	Src  string      `codec:"src"`
	Dest string      `codec:"dest"`
	Body interface{} `codec:"body"`
}

// rawEnvelope is the decode-side shape. Pointer fields distinguish an absent
// field from a zero value, and the body is kept raw until its tag is known.
type rawEnvelope struct {
	Src  *string   `codec:"src"`
	Dest *string   `codec:"dest"`
	Body codec.Raw `codec:"body"`
}

type rawTag struct {
	Type *string `codec:"type"`
}

type wireInit struct {
	Type    string    `codec:"type"`
	MsgID   *uint64   `codec:"msg_id"`
	NodeID  *string   `codec:"node_id"`
	NodeIDs *[]string `codec:"node_ids"`
}

type wireInitOk struct {
	Type      string  `codec:"type"`
	InReplyTo *uint64 `codec:"in_reply_to"`
}

type wireEcho struct {
	Type  string  `codec:"type"`
	MsgID *uint64 `codec:"msg_id"`
	Echo  *string `codec:"echo"`
}

type wireEchoOk struct {
	Type      string  `codec:"type"`
	MsgID     *uint64 `codec:"msg_id"`
	InReplyTo *uint64 `codec:"in_reply_to"`
	Echo      *string `codec:"echo"`
}

// Encode renders an envelope as one JSON line, including the trailing
// newline. Envelopes built from the payload types in this package always
// encode successfully; an error indicates a foreign Payload implementation.
func Encode(env *Envelope) ([]byte, error) {
	body, err := encodeBody(env.Body)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	enc := codec.NewEncoder(buf, jsonHandle())
	if err := enc.Encode(wireEnvelope{Src: env.Src, Dest: env.Dest, Body: body}); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func encodeBody(p Payload) (interface{}, error) {
	switch b := p.(type) {
	case Init:
		return wireInit{Type: b.Type(), MsgID: &b.MsgID, NodeID: &b.NodeID, NodeIDs: &b.NodeIDs}, nil
	case InitOk:
		return wireInitOk{Type: b.Type(), InReplyTo: &b.InReplyTo}, nil
	case Echo:
		return wireEcho{Type: b.Type(), MsgID: &b.MsgID, Echo: &b.Echo}, nil
	case EchoOk:
		return wireEchoOk{Type: b.Type(), MsgID: &b.MsgID, InReplyTo: &b.InReplyTo, Echo: &b.Echo}, nil
	default:
		return nil, fmt.Errorf("unknown payload type %T", p)
	}
}

// Decode parses one line into an Envelope. Decoding is all-or-nothing: a
// line that is not well-formed JSON yields a FramingError, and well-formed
// JSON that does not match the envelope schema or one of the four payload
// variants yields a SchemaError.
func Decode(line []byte) (*Envelope, error) {
	var probe interface{}
	if err := codec.NewDecoderBytes(line, jsonHandle()).Decode(&probe); err != nil {
		return nil, FramingError{Reason: "not well-formed JSON", Line: string(line)}
	}

	var raw rawEnvelope
	if err := codec.NewDecoderBytes(line, jsonHandle()).Decode(&raw); err != nil {
		return nil, SchemaError{Reason: "malformed envelope", Line: string(line)}
	}
	if raw.Src == nil || raw.Dest == nil || len(raw.Body) == 0 {
		return nil, SchemaError{Reason: "envelope missing src, dest or body", Line: string(line)}
	}

	body, err := decodeBody(raw.Body, string(line))
	if err != nil {
		return nil, err
	}

	return &Envelope{Src: *raw.Src, Dest: *raw.Dest, Body: body}, nil
}

func decodeBody(raw []byte, line string) (Payload, error) {
	var tag rawTag
	if err := codec.NewDecoderBytes(raw, jsonHandle()).Decode(&tag); err != nil {
		return nil, SchemaError{Reason: "malformed payload", Line: line}
	}
	if tag.Type == nil {
		return nil, SchemaError{Reason: "payload missing type", Line: line}
	}

	switch *tag.Type {
	case "init":
		var w wireInit
		if err := codec.NewDecoderBytes(raw, jsonHandle()).Decode(&w); err != nil {
			return nil, SchemaError{Reason: "malformed init payload", Line: line}
		}
		if w.MsgID == nil || w.NodeID == nil || w.NodeIDs == nil {
			return nil, SchemaError{Reason: "init payload missing fields", Line: line}
		}
		return Init{MsgID: *w.MsgID, NodeID: *w.NodeID, NodeIDs: *w.NodeIDs}, nil

	case "init_ok":
		var w wireInitOk
		if err := codec.NewDecoderBytes(raw, jsonHandle()).Decode(&w); err != nil {
			return nil, SchemaError{Reason: "malformed init_ok payload", Line: line}
		}
		if w.InReplyTo == nil {
			return nil, SchemaError{Reason: "init_ok payload missing fields", Line: line}
		}
		return InitOk{InReplyTo: *w.InReplyTo}, nil

	case "echo":
		var w wireEcho
		if err := codec.NewDecoderBytes(raw, jsonHandle()).Decode(&w); err != nil {
			return nil, SchemaError{Reason: "malformed echo payload", Line: line}
		}
		if w.MsgID == nil || w.Echo == nil {
			return nil, SchemaError{Reason: "echo payload missing fields", Line: line}
		}
		return Echo{MsgID: *w.MsgID, Echo: *w.Echo}, nil

	case "echo_ok":
		var w wireEchoOk
		if err := codec.NewDecoderBytes(raw, jsonHandle()).Decode(&w); err != nil {
			return nil, SchemaError{Reason: "malformed echo_ok payload", Line: line}
		}
		if w.MsgID == nil || w.InReplyTo == nil || w.Echo == nil {
			return nil, SchemaError{Reason: "echo_ok payload missing fields", Line: line}
		}
		return EchoOk{MsgID: *w.MsgID, InReplyTo: *w.InReplyTo, Echo: *w.Echo}, nil

	default:
		return nil, SchemaError{Reason: fmt.Sprintf("unknown payload type %q", *tag.Type), Line: line}
	}
}
