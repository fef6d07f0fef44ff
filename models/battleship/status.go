package battleship

// GameStatus is shared by both players and is the only
// termination signal of a game. It travels as a signed byte.
type GameStatus int8

const (
	GameStatusOngoing GameStatus = -1
	GameStatusWin     GameStatus = 0
	GameStatusDraw    GameStatus = 1
)

func StatusFromByte(b byte) GameStatus {
	return GameStatus(int8(b))
}

func (s GameStatus) Byte() byte {
	return byte(s)
}

func (s GameStatus) IsTerminal() bool {
	return s == GameStatusWin || s == GameStatusDraw
}

func (s GameStatus) String() string {
	switch s {
	case GameStatusOngoing:
		return "ongoing"
	case GameStatusWin:
		return "win"
	case GameStatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// StatusFromCounts derives the status from the ship cells left
// in each fleet. The player whose fleet reached zero has lost.
func StatusFromCounts(remaining0, remaining1 int) GameStatus {
	if remaining0 == 0 && remaining1 == 0 {
		return GameStatusDraw
	}
	if remaining0 == 0 || remaining1 == 0 {
		return GameStatusWin
	}
	return GameStatusOngoing
}
