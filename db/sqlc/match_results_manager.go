package sqlc

import (
	"context"
	"time"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	"github.com/sqlc-dev/pqtype"
)

type MatchResultsManager struct {
	queries Querier
}

func NewMatchResultsManager(queries Querier) *MatchResultsManager {
	return &MatchResultsManager{queries: queries}
}

// InsertMatchResult stores the final state of a finished game.
func (m *MatchResultsManager) InsertMatchResult(ctx context.Context, serverIpNet pqtype.Inet, game *mb.Game) error {
	finishedAt := game.FinishedAt()
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	return m.queries.InsertMatchResult(ctx, InsertMatchResultParams{
		MatchID:             game.Uuid(),
		ServerIp:            serverIpNet,
		Status:              int16(game.Status()),
		Rounds:              int32(game.Round()),
		RemainingPlayerZero: int32(game.RemainingShips(mb.PlayerZero)),
		RemainingPlayerOne:  int32(game.RemainingShips(mb.PlayerOne)),
		StartedAt:           game.StartedAt(),
		FinishedAt:          finishedAt,
	})
}

func (m *MatchResultsManager) GetMatchResult(ctx context.Context, matchId string) (MatchResult, error) {
	return m.queries.GetMatchResult(ctx, matchId)
}
