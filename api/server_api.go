package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	"github.com/saeidalz13/battleship-duel/internal/transport"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	playersPerMatch = 2
)

var (
	defaultPort = "9191"
)

// Server hosts exactly one match. It accepts two players, stops
// listening and plays until the game is won or drawn.
type Server struct {
	host        string
	port        string
	stage       string
	transport   string
	readTimeout time.Duration
	width       int
	height      int
	validator   mb.FleetValidator
	recorder    Recorder
	shutdown    *mc.Shutdown
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) (*Server, error) {
	server := Server{
		port:      defaultPort,
		stage:     StageDev,
		transport: transport.KindTCP,
		width:     mb.GridWidth,
		height:    mb.GridHeight,
		validator: mb.TrustAll,
	}

	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	if server.shutdown == nil {
		server.shutdown = mc.NewShutdown()
	}
	return &server, nil
}

func WithPort(port string) Option {
	return func(s *Server) error {
		p, err := strconv.Atoi(port)
		if err != nil || p < 0 || p > 65535 {
			return fmt.Errorf("invalid port: %s", port)
		}
		s.port = port
		return nil
	}
}

func WithHost(host string) Option {
	return func(s *Server) error {
		s.host = host
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithTransport(kind string) Option {
	return func(s *Server) error {
		if !transport.IsValidKind(kind) {
			return fmt.Errorf("invalid transport: %s", kind)
		}
		s.transport = kind
		return nil
	}
}

// WithReadTimeout bounds how long the server waits for a player.
// Without it a silent player blocks the match forever.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) error {
		if d < 0 {
			return fmt.Errorf("read timeout must not be negative: %s", d)
		}
		s.readTimeout = d
		return nil
	}
}

func WithFleetValidator(v mb.FleetValidator) Option {
	return func(s *Server) error {
		if v == nil {
			return fmt.Errorf("fleet validator is nil")
		}
		s.validator = v
		return nil
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Server) error {
		s.recorder = r
		return nil
	}
}

func WithShutdown(sd *mc.Shutdown) Option {
	return func(s *Server) error {
		s.shutdown = sd
		return nil
	}
}

func (s *Server) Shutdown() *mc.Shutdown {
	return s.shutdown
}

func (s *Server) Listen() (transport.Listener, error) {
	ln, err := transport.Listen(s.transport, net.JoinHostPort(s.host, s.port))
	if err != nil {
		return nil, err
	}
	log.Printf("listening to %s (%s, stage %s)...", ln.Addr().String(), s.transport, s.stage)
	return ln, nil
}

func (s *Server) ListenAndServe(ctx context.Context) (*mb.Game, error) {
	ln, err := s.Listen()
	if err != nil {
		return nil, err
	}
	return s.Serve(ctx, ln)
}

// Serve waits for both players on ln, closes it and runs the match.
// Any connection or io failure ends the match with an error.
func (s *Server) Serve(ctx context.Context, ln transport.Listener) (*mb.Game, error) {
	if !s.shutdown.Track("listener", ln) {
		return nil, cerr.ErrConnection("accept", net.ErrClosed)
	}

	stop := context.AfterFunc(ctx, func() {
		_ = s.shutdown.Close()
	})
	defer stop()

	var sessions [playersPerMatch]*mc.Session
	for player := range sessions {
		stream, err := ln.Accept()
		if err != nil {
			_ = s.shutdown.Close()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Join(ctxErr, err)
			}
			return nil, err
		}

		session := mc.NewSession(stream, mc.WithPlayer(player), mc.WithReadTimeout(s.readTimeout))
		s.shutdown.Track(session.Id(), session)
		sessions[player] = session

		log.Printf("player %d connected\tRemote Addr: %s", player, session.RemoteAddr())
	}

	// no further players are accepted
	s.shutdown.Untrack("listener")
	_ = ln.Close()
	log.Println("both players connected")

	match := newMatch(sessions, s.width, s.height, s.validator, s.recorder)
	game, err := match.run(ctx)

	if closeErr := s.shutdown.Close(); closeErr != nil {
		log.Printf("failed to close sessions: %v", closeErr)
	}
	return game, err
}
