package net

import (
	"net"
)

// TCPStreamLayer implements StreamLayer for plain TCP. It binds a listener at
// construction and serves the session over the first accepted connection.
type TCPStreamLayer struct {
	listener *net.TCPListener
}

// NewTCPStreamLayer binds a TCP listener on bindAddr.
func NewTCPStreamLayer(bindAddr string) (*TCPStreamLayer, error) {
	addr, err := net.ResolveTCPAddr("tcp", bindAddr)
	if err != nil {
		return nil, err
	}

	listener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &TCPStreamLayer{listener: listener}, nil
}

// Open implements the StreamLayer interface. It blocks until a peer connects
// and returns the accepted connection. Only one session is served, so the
// listener stops accepting afterwards.
func (t *TCPStreamLayer) Open() (Stream, error) {
	conn, err := t.listener.Accept()
	if err != nil {
		return nil, err
	}
	return &tcpStream{conn: conn}, nil
}

// Close implements the StreamLayer interface.
func (t *TCPStreamLayer) Close() error {
	return t.listener.Close()
}

// Addr returns the address the listener is bound to.
func (t *TCPStreamLayer) Addr() string {
	return t.listener.Addr().String()
}

type tcpStream struct {
	conn net.Conn
}

func (s *tcpStream) Read(p []byte) (int, error) {
	return s.conn.Read(p)
}

func (s *tcpStream) Write(p []byte) (int, error) {
	return s.conn.Write(p)
}

func (s *tcpStream) Close() error {
	return s.conn.Close()
}

// Addr implements the Stream interface.
func (s *tcpStream) Addr() string {
	return s.conn.RemoteAddr().String()
}
