package net

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"testing"
	"time"
)

func TestStdioStreamLayer(t *testing.T) {
	out := new(bytes.Buffer)
	layer := NewPipeStreamLayer(strings.NewReader("ping\n"), out)

	stream, err := layer.Open()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer stream.Close()
	defer layer.Close()

	if stream.Addr() != "stdio" {
		t.Fatalf("bad addr: %q", stream.Addr())
	}

	line, err := bufio.NewReader(stream).ReadString('\n')
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if line != "ping\n" {
		t.Fatalf("bad: %q", line)
	}

	if _, err := stream.Write([]byte("pong\n")); err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.String() != "pong\n" {
		t.Fatalf("bad: %q", out.String())
	}
}

func TestTCPStreamLayer(t *testing.T) {
	layer, err := NewTCPStreamLayer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer layer.Close()

	type result struct {
		stream Stream
		err    error
	}
	opened := make(chan result, 1)
	go func() {
		stream, err := layer.Open()
		opened <- result{stream, err}
	}()

	conn, err := net.Dial("tcp", layer.Addr())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer conn.Close()

	var res result
	select {
	case res = <-opened:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for accept")
	}
	if res.err != nil {
		t.Fatalf("err: %v", res.err)
	}
	defer res.stream.Close()

	if res.stream.Addr() == "" {
		t.Fatal("expected a peer address")
	}

	if _, err := conn.Write([]byte("ping\n")); err != nil {
		t.Fatalf("err: %v", err)
	}
	line, err := bufio.NewReader(res.stream).ReadString('\n')
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if line != "ping\n" {
		t.Fatalf("bad: %q", line)
	}

	if _, err := res.stream.Write([]byte("pong\n")); err != nil {
		t.Fatalf("err: %v", err)
	}
	line, err = bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if line != "pong\n" {
		t.Fatalf("bad: %q", line)
	}
}

func TestTCPStreamLayerBadAddr(t *testing.T) {
	if _, err := NewTCPStreamLayer("not-an-address"); err == nil {
		t.Fatal("expected an error")
	}
}
