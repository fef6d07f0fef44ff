package api

import (
	"context"
	"errors"
	"log"

	"github.com/saeidalz13/battleship-duel/db/sqlc"
	"github.com/saeidalz13/battleship-duel/internal"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/sqlc-dev/pqtype"
)

type MatchState uint8

const (
	MatchStateAwaitingFleets MatchState = iota
	MatchStatePlaying
	MatchStateFinished
)

func (s MatchState) String() string {
	switch s {
	case MatchStateAwaitingFleets:
		return "awaiting fleets"
	case MatchStatePlaying:
		return "playing"
	case MatchStateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Recorder persists match lifecycle events. Its errors are only
// logged since the players have no way to learn about them.
type Recorder interface {
	MatchStarted(ctx context.Context, serverIpNet pqtype.Inet, game *mb.Game) error
	MatchFinished(ctx context.Context, serverIpNet pqtype.Inet, game *mb.Game) error
}

var _ Recorder = sqlc.DbManager{}

// Match drives one game between two connected sessions.
type Match struct {
	sessions  [playersPerMatch]*mc.Session
	width     int
	height    int
	validator mb.FleetValidator
	recorder  Recorder
	state     MatchState
	game      *mb.Game
	serverIp  pqtype.Inet
}

func newMatch(sessions [playersPerMatch]*mc.Session, width, height int, validator mb.FleetValidator, recorder Recorder) *Match {
	if validator == nil {
		validator = mb.TrustAll
	}

	m := &Match{
		sessions:  sessions,
		width:     width,
		height:    height,
		validator: validator,
		recorder:  recorder,
		state:     MatchStateAwaitingFleets,
	}

	if ipNet, err := internal.IpNetFromAddr(sessions[mb.PlayerZero].LocalAddr()); err == nil {
		m.serverIp = pqtype.Inet{IPNet: ipNet, Valid: true}
	}
	return m
}

func (m *Match) State() MatchState {
	return m.state
}

func (m *Match) Game() *mb.Game {
	return m.game
}

func (m *Match) run(ctx context.Context) (*mb.Game, error) {
	if err := m.awaitFleets(ctx); err != nil {
		return nil, m.onErr(ctx, err)
	}

	for m.state == MatchStatePlaying {
		if err := m.playRound(ctx); err != nil {
			return m.game, m.onErr(ctx, err)
		}
	}
	return m.game, nil
}

// onErr reports the cancellation instead of the io error it caused.
func (m *Match) onErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(ctxErr, err)
	}
	return err
}

func (m *Match) awaitFleets(ctx context.Context) error {
	var fleets [playersPerMatch]mb.Grid

	for player, session := range m.sessions {
		upload, err := session.ReadFleet(m.width, m.height)
		if err != nil {
			return err
		}

		fleet, err := upload.Grid(m.width, m.height)
		if err != nil {
			return err
		}

		if err := m.validator.Validate(fleet); err != nil {
			return cerr.ErrFleetRejected(player, err.Error())
		}

		log.Printf("player %d fleet:\n%s", player, fleet.String())
		fleets[player] = fleet
	}

	m.game = mb.NewGame(internal.NewMatchId(), fleets[mb.PlayerZero], fleets[mb.PlayerOne])
	m.state = MatchStatePlaying
	log.Printf("match %s started", m.game.Uuid())

	if m.recorder != nil {
		m.record(ctx, "start", m.recorder.MatchStarted)
	}
	return nil
}

// playRound reads one shot from each player, player zero first, and
// sends both the shared result of the round.
func (m *Match) playRound(ctx context.Context) error {
	var moves [playersPerMatch]mb.Move

	for player, session := range m.sessions {
		move, err := session.ReadShot()
		if err != nil {
			return err
		}
		log.Printf("player %d shot: %d-%d", player, move.X, move.Y)
		moves[player] = move
	}

	rr, err := m.game.PlayRound(moves[mb.PlayerZero], moves[mb.PlayerOne])
	if err != nil {
		return err
	}
	log.Printf("score: %d - %d", rr.Remaining[mb.PlayerZero], rr.Remaining[mb.PlayerOne])

	for player, session := range m.sessions {
		if err := session.WriteResult(rr.Results[player], rr.Status); err != nil {
			return err
		}
	}

	if !rr.Status.IsTerminal() {
		return nil
	}

	m.state = MatchStateFinished
	if winner, ok := m.game.Winner(); ok {
		log.Printf("player %d won", winner)
	} else {
		log.Println("draw")
	}

	if m.recorder != nil {
		m.record(ctx, "result", m.recorder.MatchFinished)
	}
	return nil
}

func (m *Match) record(ctx context.Context, event string, fn func(context.Context, pqtype.Inet, *mb.Game) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := fn(ctx, m.serverIp, m.game); err != nil {
		log.Printf("failed to record match %s of %s: %v", event, m.game.Uuid(), err)
	}
}
