package connection

import (
	"encoding/base64"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/saeidalz13/battleship-duel/internal/transport"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

// Session is one end of a game connection. The server holds one per
// player, the client holds one towards the server.
type Session struct {
	id          string
	player      int
	stream      transport.Stream
	readTimeout time.Duration
	createdAt   time.Time
}

type SessionOption func(*Session)

// WithReadTimeout bounds every receive. Zero, the default, waits
// for the peer forever.
func WithReadTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.readTimeout = d
	}
}

func WithPlayer(player int) SessionOption {
	return func(s *Session) {
		s.player = player
	}
}

func NewSession(stream transport.Stream, opts ...SessionOption) *Session {
	s := &Session{
		id:        base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String())),
		stream:    stream,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Player() int {
	return s.player
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) RemoteAddr() string {
	if addr := s.stream.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

func (s *Session) LocalAddr() string {
	if addr := s.stream.LocalAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

func (s *Session) Close() error {
	return s.stream.Close()
}

func (s *Session) readFull(msg string, buf []byte) error {
	if s.readTimeout > 0 {
		if err := s.stream.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return onReadErr(msg, len(buf), 0, err)
		}
	}

	n, err := io.ReadFull(s.stream, buf)
	if err != nil {
		return onReadErr(msg, len(buf), n, err)
	}
	return nil
}

func (s *Session) write(msg string, p []byte) error {
	if _, err := s.stream.Write(p); err != nil {
		return onWriteErr(msg, err)
	}
	return nil
}

func (s *Session) ReadFleet(width, height int) (FleetUpload, error) {
	var fleet FleetUpload

	buf := make([]byte, FleetUploadSize(width, height))
	if err := s.readFull(MessageFleetUpload, buf); err != nil {
		return fleet, err
	}

	err := fleet.UnmarshalBinary(buf)
	return fleet, err
}

func (s *Session) WriteFleet(fleet FleetUpload) error {
	payload, err := fleet.MarshalBinary()
	if err != nil {
		return err
	}
	return s.write(MessageFleetUpload, payload)
}

func (s *Session) ReadShot() (mb.Move, error) {
	var req ShotRequest

	buf := make([]byte, ShotRequestSize)
	if err := s.readFull(MessageShotRequest, buf); err != nil {
		return mb.Move{}, err
	}

	err := req.UnmarshalBinary(buf)
	return req.Move, err
}

func (s *Session) WriteShot(m mb.Move) error {
	payload, err := ShotRequest{Move: m}.MarshalBinary()
	if err != nil {
		return err
	}
	return s.write(MessageShotRequest, payload)
}

func (s *Session) ReadResult() (ShotResult, error) {
	var res ShotResult

	buf := make([]byte, ShotResultSize)
	if err := s.readFull(MessageShotResult, buf); err != nil {
		return res, err
	}

	err := res.UnmarshalBinary(buf)
	return res, err
}

func (s *Session) WriteResult(result mb.Cell, status mb.GameStatus) error {
	payload, err := NewShotResult(result, status).MarshalBinary()
	if err != nil {
		return err
	}
	return s.write(MessageShotResult, payload)
}
