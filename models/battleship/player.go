package battleship

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
	PlayerMatchStatusDraw      = 2
)

// ShotView is what a client knows about the game: the outcome of
// every shot it fired and how many enemy ship cells are left.
type ShotView struct {
	grid        Grid
	remaining   int
	matchStatus int
}

func NewShotView(width, height, shipCellsToDestroy int) (*ShotView, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	return &ShotView{
		grid:        grid,
		remaining:   shipCellsToDestroy,
		matchStatus: PlayerMatchStatusUndefined,
	}, nil
}

// Record stores the result of a shot fired at m. Moves outside the
// grid are still counted but leave the grid untouched.
func (v *ShotView) Record(m Move, result Cell) {
	_ = v.grid.Set(int(m.X), int(m.Y), result)
	if result == CellHit {
		v.remaining--
	}
}

func (v *ShotView) Grid() Grid {
	return v.grid
}

func (v *ShotView) Remaining() int {
	return v.remaining
}

func (v *ShotView) MatchStatus() int {
	return v.matchStatus
}

func (v *ShotView) IsMatchOver() bool {
	return v.matchStatus != PlayerMatchStatusUndefined
}

// Conclude decides the match status of this player from the shared
// game status. A win belongs to this player only if it destroyed
// every enemy ship cell.
func (v *ShotView) Conclude(status GameStatus) int {
	switch status {
	case GameStatusDraw:
		v.matchStatus = PlayerMatchStatusDraw
	case GameStatusWin:
		if v.remaining > 0 {
			v.matchStatus = PlayerMatchStatusLost
		} else {
			v.matchStatus = PlayerMatchStatusWon
		}
	default:
		v.matchStatus = PlayerMatchStatusUndefined
	}
	return v.matchStatus
}
