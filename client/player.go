package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/saeidalz13/battleship-duel/internal/transport"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
)

type PlayerState uint8

const (
	PlayerStateConnecting PlayerState = iota
	PlayerStateUploadingFleet
	PlayerStatePlaying
	PlayerStateDone
)

func (s PlayerState) String() string {
	switch s {
	case PlayerStateConnecting:
		return "connecting"
	case PlayerStateUploadingFleet:
		return "uploading fleet"
	case PlayerStatePlaying:
		return "playing"
	case PlayerStateDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	msgWon  = "You won!"
	msgLost = "You lost..."
	msgDraw = "Draw!"
	msgOver = "Match over."
)

// Player is the client side of a match. It only knows its own fleet
// layout and the outcome of the shots it fired.
type Player struct {
	host        string
	port        string
	transport   string
	layout      []byte
	width       int
	height      int
	shipCells   int
	readTimeout time.Duration

	moves    MoveReader
	renderer *Renderer
	out      io.Writer
	shutdown *mc.Shutdown

	state   PlayerState
	session *mc.Session
	view    *mb.ShotView
}

type PlayerOption func(*Player) error

func NewPlayer(host, port string, layout []byte, optFuncs ...PlayerOption) (*Player, error) {
	p := Player{
		host:      host,
		port:      port,
		transport: transport.KindTCP,
		layout:    layout,
		width:     mb.GridWidth,
		height:    mb.GridHeight,
		shipCells: mb.ShipCellsToDestroy,
		out:       os.Stdout,
		state:     PlayerStateConnecting,
	}

	for _, opt := range optFuncs {
		if err := opt(&p); err != nil {
			return nil, err
		}
	}

	if p.moves == nil {
		p.moves = NewPrompt(os.Stdin, p.out)
	}
	if p.renderer == nil {
		p.renderer = NewRenderer(p.out, true)
	}
	if p.shutdown == nil {
		p.shutdown = mc.NewShutdown()
	}

	view, err := mb.NewShotView(p.width, p.height, p.shipCells)
	if err != nil {
		return nil, err
	}
	p.view = view

	return &p, nil
}

func WithPlayerTransport(kind string) PlayerOption {
	return func(p *Player) error {
		if !transport.IsValidKind(kind) {
			return fmt.Errorf("invalid transport: %s", kind)
		}
		p.transport = kind
		return nil
	}
}

func WithPlayerReadTimeout(d time.Duration) PlayerOption {
	return func(p *Player) error {
		if d < 0 {
			return fmt.Errorf("read timeout must not be negative: %s", d)
		}
		p.readTimeout = d
		return nil
	}
}

func WithMoveReader(mr MoveReader) PlayerOption {
	return func(p *Player) error {
		p.moves = mr
		return nil
	}
}

func WithRenderer(r *Renderer) PlayerOption {
	return func(p *Player) error {
		p.renderer = r
		return nil
	}
}

func WithOutput(out io.Writer) PlayerOption {
	return func(p *Player) error {
		p.out = out
		return nil
	}
}

func WithPlayerShutdown(sd *mc.Shutdown) PlayerOption {
	return func(p *Player) error {
		p.shutdown = sd
		return nil
	}
}

func (p *Player) State() PlayerState {
	return p.state
}

func (p *Player) View() *mb.ShotView {
	return p.view
}

// Run plays a whole match and returns the personal match status
// (mb.PlayerMatchStatus*). The connection is closed on return.
func (p *Player) Run(ctx context.Context) (int, error) {
	defer func() {
		if err := p.shutdown.Close(); err != nil {
			log.Printf("failed to close connection: %v", err)
		}
	}()

	if err := p.connect(ctx); err != nil {
		return mb.PlayerMatchStatusUndefined, err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = p.shutdown.Close()
	})
	defer stop()

	if err := p.uploadFleet(); err != nil {
		return mb.PlayerMatchStatusUndefined, p.onErr(ctx, err)
	}

	for p.state == PlayerStatePlaying {
		if err := p.turn(); err != nil {
			return mb.PlayerMatchStatusUndefined, p.onErr(ctx, err)
		}
	}
	return p.view.MatchStatus(), nil
}

func (p *Player) onErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(ctxErr, err)
	}
	return err
}

func (p *Player) connect(ctx context.Context) error {
	stream, err := transport.Dial(ctx, p.transport, p.host, p.port)
	if err != nil {
		return err
	}

	p.session = mc.NewSession(stream, mc.WithReadTimeout(p.readTimeout))
	p.shutdown.Track(p.session.Id(), p.session)
	log.Printf("connected to %s", p.session.RemoteAddr())

	p.state = PlayerStateUploadingFleet
	return nil
}

func (p *Player) uploadFleet() error {
	fleet := mc.NewFleetUploadFromFile(p.layout, p.width, p.height)
	if err := p.session.WriteFleet(fleet); err != nil {
		return err
	}

	p.state = PlayerStatePlaying
	return nil
}

// turn fires one shot and waits for the round to be resolved. The
// status byte alone decides whether the match is over.
func (p *Player) turn() error {
	move, err := p.moves.ReadMove()
	if err != nil {
		return err
	}

	if err := p.session.WriteShot(move); err != nil {
		return err
	}

	res, err := p.session.ReadResult()
	if err != nil {
		return err
	}

	p.view.Record(move, res.Result)
	if err := p.renderer.Render(p.view.Grid(), p.view.Remaining()); err != nil {
		return err
	}

	if res.Status == mb.GameStatusOngoing {
		return nil
	}

	p.state = PlayerStateDone
	fmt.Fprintln(p.out, verdict(p.view.Conclude(res.Status)))
	return nil
}

func verdict(matchStatus int) string {
	switch matchStatus {
	case mb.PlayerMatchStatusWon:
		return msgWon
	case mb.PlayerMatchStatusLost:
		return msgLost
	case mb.PlayerMatchStatusDraw:
		return msgDraw
	default:
		return msgOver
	}
}
