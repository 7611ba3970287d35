package sqlc

import (
	"context"
	"time"

	"github.com/sqlc-dev/pqtype"
)

// Upper bound for a single analytics query
const QuerierCtxTimeout = time.Second * 10

// AnalyticsManager keeps per-server counters of created and reset games.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementGamesResetCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementGamesResetCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesResetCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetGamesResetCount(ctx, serverIpNet)
}

// NoopQuerier is used when the server runs without a database.
type NoopQuerier struct{}

var _ Querier = NoopQuerier{}

func (NoopQuerier) GetGamesCreatedCount(context.Context, pqtype.Inet) (int64, error) { return 0, nil }
func (NoopQuerier) GetGamesResetCount(context.Context, pqtype.Inet) (int64, error)   { return 0, nil }
func (NoopQuerier) IncrementGamesCreatedCount(context.Context, pqtype.Inet) error    { return nil }
func (NoopQuerier) IncrementGamesResetCount(context.Context, pqtype.Inet) error      { return nil }
