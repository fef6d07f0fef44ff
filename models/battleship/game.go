package battleship

import (
	"time"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const (
	PlayerZero int = iota
	PlayerOne
)

type RoundResult struct {
	Round     int
	Moves     [2]Move
	Results   [2]Cell
	Remaining [2]int
	Status    GameStatus
}

// Game is the server side authoritative state. It owns both fleets and
// is the only place where ship cells are destroyed.
type Game struct {
	uuid       string
	fleets     [2]Grid
	round      int
	status     GameStatus
	startedAt  time.Time
	finishedAt time.Time
}

func NewGame(uuid string, fleet0, fleet1 Grid) *Game {
	return &Game{
		uuid:      uuid,
		fleets:    [2]Grid{fleet0, fleet1},
		status:    GameStatusOngoing,
		startedAt: time.Now(),
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Round() int {
	return g.round
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

func (g *Game) FinishedAt() time.Time {
	return g.finishedAt
}

func (g *Game) IsFinished() bool {
	return g.status.IsTerminal()
}

func (g *Game) Fleet(player int) (Grid, error) {
	if !isValidPlayer(player) {
		return Grid{}, cerr.ErrInvalidPlayer(player)
	}
	return g.fleets[player], nil
}

// Fire resolves a shot of player against the fleet of the other player.
// A ship cell is destroyed and reported as CellHit. Everything else,
// including coordinates outside of the grid, is a CellSplash.
func (g *Game) Fire(player int, m Move) (Cell, error) {
	if !isValidPlayer(player) {
		return CellSplash, cerr.ErrInvalidPlayer(player)
	}

	target := g.fleets[otherPlayer(player)]
	x, y := int(m.X), int(m.Y)
	if !target.InBounds(x, y) {
		return CellSplash, nil
	}

	if target.cells[x][y] == CellShip {
		target.cells[x][y] = CellEmpty
		return CellHit, nil
	}
	return CellSplash, nil
}

func (g *Game) RemainingShips(player int) int {
	if !isValidPlayer(player) {
		return 0
	}
	return g.fleets[player].Count(CellShip)
}

// Score recounts both fleets and updates the game status.
func (g *Game) Score() GameStatus {
	g.status = StatusFromCounts(g.RemainingShips(PlayerZero), g.RemainingShips(PlayerOne))
	if g.status.IsTerminal() && g.finishedAt.IsZero() {
		g.finishedAt = time.Now()
	}
	return g.status
}

// PlayRound resolves one shot per player, player zero first, and
// scores the game once both are resolved.
func (g *Game) PlayRound(m0, m1 Move) (RoundResult, error) {
	var rr RoundResult

	res0, err := g.Fire(PlayerZero, m0)
	if err != nil {
		return rr, err
	}
	res1, err := g.Fire(PlayerOne, m1)
	if err != nil {
		return rr, err
	}

	g.round++
	rr.Round = g.round
	rr.Moves = [2]Move{m0, m1}
	rr.Results = [2]Cell{res0, res1}
	rr.Status = g.Score()
	rr.Remaining = [2]int{g.RemainingShips(PlayerZero), g.RemainingShips(PlayerOne)}
	return rr, nil
}

// Winner returns the player whose fleet survived. ok is false unless
// the status is GameStatusWin.
func (g *Game) Winner() (player int, ok bool) {
	if g.status != GameStatusWin {
		return 0, false
	}
	if g.RemainingShips(PlayerZero) == 0 {
		return PlayerOne, true
	}
	return PlayerZero, true
}

func isValidPlayer(player int) bool {
	return player == PlayerZero || player == PlayerOne
}

func otherPlayer(player int) int {
	return (player + 1) % 2
}
