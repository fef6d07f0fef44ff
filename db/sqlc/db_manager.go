package sqlc

import (
	"context"
	"time"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	"github.com/sqlc-dev/pqtype"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Analytics *AnalyticsManager
	Results   *MatchResultsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Analytics: NewAnalyticsManager(queries),
		Results:   NewMatchResultsManager(queries),
	}
}

func (d DbManager) MatchStarted(ctx context.Context, serverIpNet pqtype.Inet, _ *mb.Game) error {
	return d.Analytics.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (d DbManager) MatchFinished(ctx context.Context, serverIpNet pqtype.Inet, game *mb.Game) error {
	return d.Results.InsertMatchResult(ctx, serverIpNet, game)
}
