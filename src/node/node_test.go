package node

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/koanlabs/echod/src/common"
	"github.com/koanlabs/echod/src/wire"
)

type testStream struct {
	io.Reader
	io.Writer
}

// runNode drives a fresh node over the given input and returns the node, its
// raw output, and the Run error.
func runNode(t *testing.T, input string) (*Node, *bytes.Buffer, error) {
	out := new(bytes.Buffer)
	n := NewNode(testStream{strings.NewReader(input), out}, common.NewTestEntry(t, common.TestLogLevel))
	err := n.Run()
	return n, out, err
}

// readReplies decodes every line of output.
func readReplies(t *testing.T, out *bytes.Buffer) []*wire.Envelope {
	var replies []*wire.Envelope
	scanner := bufio.NewScanner(bytes.NewReader(out.Bytes()))
	for scanner.Scan() {
		env, err := wire.Decode(append(scanner.Bytes(), '\n'))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		replies = append(replies, env)
	}
	return replies
}

const initLine = `{"src":"c1","dest":"n1","body":{"type":"init","msg_id":7,"node_id":"n1","node_ids":["n1"]}}` + "\n"

func TestHandshake(t *testing.T) {
	n, out, err := runNode(t, initLine)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if n.GetState() != Shutdown {
		t.Fatalf("bad state: %v", n.GetState())
	}
	if n.ID() != "n1" {
		t.Fatalf("bad id: %q", n.ID())
	}

	replies := readReplies(t, out)
	if len(replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(replies))
	}

	expected := &wire.Envelope{
		Src:  "n1",
		Dest: "c1",
		Body: wire.InitOk{InReplyTo: 7},
	}
	if !reflect.DeepEqual(replies[0], expected) {
		t.Fatalf("bad: %#v", replies[0])
	}
}

func TestEchoBeforeHandshake(t *testing.T) {
	input := `{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":1,"echo":"hi"}}` + "\n"

	_, out, err := runNode(t, input)
	if !IsProtocolViolation(err) {
		t.Fatalf("expected ProtocolViolation, got: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got: %q", out.String())
	}
}

func TestEOFBeforeHandshake(t *testing.T) {
	_, out, err := runNode(t, "")
	if err != ErrNoHandshake {
		t.Fatalf("expected ErrNoHandshake, got: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got: %q", out.String())
	}
}

func TestSecondInit(t *testing.T) {
	n, out, err := runNode(t, initLine+initLine)
	if !IsProtocolViolation(err) {
		t.Fatalf("expected ProtocolViolation, got: %v", err)
	}

	// The first handshake went through before the violation.
	if n.ID() != "n1" {
		t.Fatalf("bad id: %q", n.ID())
	}
	if replies := readReplies(t, out); len(replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(replies))
	}
}

func TestEchoSequence(t *testing.T) {
	payloads := []string{"a", "hello world", "", "repeat after me", "héllo"}

	input := initLine
	for i, p := range payloads {
		input += fmt.Sprintf(`{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":%d,"echo":"%s"}}`, 10+i, p) + "\n"
	}

	_, out, err := runNode(t, input)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	replies := readReplies(t, out)
	if len(replies) != len(payloads)+1 {
		t.Fatalf("expected %d replies, got %d", len(payloads)+1, len(replies))
	}

	// Outbound msg_ids are exactly 0..N-1, in request arrival order, and the
	// echo strings come back verbatim.
	for i, reply := range replies[1:] {
		echoOk, ok := reply.Body.(wire.EchoOk)
		if !ok {
			t.Fatalf("bad reply: %#v", reply.Body)
		}
		if echoOk.MsgID != uint64(i) {
			t.Fatalf("bad msg_id: expected %d, got %d", i, echoOk.MsgID)
		}
		if echoOk.InReplyTo != uint64(10+i) {
			t.Fatalf("bad in_reply_to: expected %d, got %d", 10+i, echoOk.InReplyTo)
		}
		if echoOk.Echo != payloads[i] {
			t.Fatalf("bad echo: expected %q, got %q", payloads[i], echoOk.Echo)
		}
		if reply.Src != "n1" || reply.Dest != "c1" {
			t.Fatalf("bad addressing: %#v", reply)
		}
	}
}

func TestUnknownPayload(t *testing.T) {
	input := initLine +
		`{"src":"c1","dest":"n1","body":{"type":"broadcast","msg_id":2}}` + "\n"

	_, _, err := runNode(t, input)
	if !wire.IsSchema(err) {
		t.Fatalf("expected SchemaError, got: %v", err)
	}
}

func TestMidRecordEOF(t *testing.T) {
	input := initLine + `{"src":"c1","dest":"n1"`

	_, _, err := runNode(t, input)
	if !wire.IsFraming(err) {
		t.Fatalf("expected FramingError, got: %v", err)
	}
}

func TestEndToEnd(t *testing.T) {
	input := `{"src":"c1","dest":"n1","body":{"type":"init","msg_id":1,"node_id":"n1","node_ids":["n1"]}}` + "\n" +
		`{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":2,"echo":"hello"}}` + "\n"

	n, out, err := runNode(t, input)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n.GetState() != Shutdown {
		t.Fatalf("bad state: %v", n.GetState())
	}

	replies := readReplies(t, out)
	if len(replies) != 2 {
		t.Fatalf("expected exactly two replies, got %d", len(replies))
	}

	expected := []*wire.Envelope{
		{Src: "n1", Dest: "c1", Body: wire.InitOk{InReplyTo: 1}},
		{Src: "n1", Dest: "c1", Body: wire.EchoOk{MsgID: 0, InReplyTo: 2, Echo: "hello"}},
	}
	if !reflect.DeepEqual(replies, expected) {
		t.Fatalf("bad: %#v", replies)
	}
}

func TestStateString(t *testing.T) {
	if Uninitialized.String() != "Uninitialized" ||
		Ready.String() != "Ready" ||
		Shutdown.String() != "Shutdown" {
		t.Fatal("bad state strings")
	}
	if State(42).String() != "Unknown" {
		t.Fatal("bad unknown state string")
	}
}
