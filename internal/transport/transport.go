package transport

import (
	"context"
	"io"
	"net"
	"time"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const (
	KindTCP = "tcp"
	KindWS  = "ws"
)

// Stream is one player connection. Messages are read and written as
// raw bytes whatever the transport underneath.
type Stream interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

type Listener interface {
	Accept() (Stream, error)
	Close() error
	Addr() net.Addr
}

func IsValidKind(kind string) bool {
	return kind == KindTCP || kind == KindWS
}

// Listen opens a listener for the given transport on addr (host:port).
func Listen(kind, addr string) (Listener, error) {
	switch kind {
	case KindTCP:
		return listenTcp(addr)
	case KindWS:
		return listenWs(addr)
	default:
		return nil, cerr.ErrInvalidTransport(kind)
	}
}

// Dial connects to a server. Every address host resolves to is tried
// in order until one accepts the connection.
func Dial(ctx context.Context, kind, host, port string) (Stream, error) {
	switch kind {
	case KindTCP:
		return dialTcp(ctx, host, port)
	case KindWS:
		return dialWs(ctx, host, port)
	default:
		return nil, cerr.ErrInvalidTransport(kind)
	}
}

type tcpListener struct {
	ln net.Listener
}

var _ Listener = (*tcpListener)(nil)

func listenTcp(addr string) (*tcpListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, cerr.ErrConnection("listen "+addr, err)
	}
	return &tcpListener{ln: ln}, nil
}

func (l *tcpListener) Accept() (Stream, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, cerr.ErrConnection("accept", err)
	}
	return conn, nil
}

func (l *tcpListener) Close() error {
	return l.ln.Close()
}

func (l *tcpListener) Addr() net.Addr {
	return l.ln.Addr()
}

func dialTcp(ctx context.Context, host, port string) (Stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, cerr.ErrConnection("dial "+net.JoinHostPort(host, port), err)
	}
	return conn, nil
}
