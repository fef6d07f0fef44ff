package transport

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const (
	WsPath = "/battleship"

	closeFrameTimeout time.Duration = time.Second
)

var (
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// a fleet is 64 bytes, a shot 2 bytes
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	dialer = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

// wsStream carries the byte stream over binary frames. A read may span
// frames and every write is sent as one frame.
type wsStream struct {
	conn   *websocket.Conn
	reader io.Reader
}

var _ Stream = (*wsStream)(nil)

func newWsStream(conn *websocket.Conn) *wsStream {
	return &wsStream{conn: conn}
}

func (s *wsStream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			_, r, err := s.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			s.reader = r
		}

		n, err := s.reader.Read(p)
		if errors.Is(err, io.EOF) {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *wsStream) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsStream) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeFrameTimeout))
	return s.conn.Close()
}

func (s *wsStream) SetReadDeadline(t time.Time) error {
	return s.conn.SetReadDeadline(t)
}

func (s *wsStream) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

func (s *wsStream) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

type wsListener struct {
	ln        net.Listener
	srv       *http.Server
	streams   chan Stream
	done      chan struct{}
	closeOnce sync.Once
}

var _ Listener = (*wsListener)(nil)

func listenWs(addr string) (*wsListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, cerr.ErrConnection("listen "+addr, err)
	}

	l := &wsListener{
		ln:      ln,
		streams: make(chan Stream),
		done:    make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+WsPath, l.handleUpgrade)
	l.srv = &http.Server{Handler: mux, ReadHeaderTimeout: upgrader.HandshakeTimeout}

	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("websocket listener stopped:", err)
		}
	}()
	return l, nil
}

func (l *wsListener) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	// The hijacked connection outlives this handler
	select {
	case l.streams <- newWsStream(conn):
	case <-l.done:
		_ = conn.Close()
	}
}

func (l *wsListener) Accept() (Stream, error) {
	select {
	case s := <-l.streams:
		return s, nil
	case <-l.done:
		return nil, cerr.ErrConnection("accept", net.ErrClosed)
	}
}

// Close stops accepting players. Streams already accepted stay open.
func (l *wsListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.srv.Close()
	})
	return err
}

func (l *wsListener) Addr() net.Addr {
	return l.ln.Addr()
}

func dialWs(ctx context.Context, host, port string) (Stream, error) {
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, port), Path: WsPath}

	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, cerr.ErrConnection("dial "+u.String(), err)
	}
	return newWsStream(conn), nil
}
