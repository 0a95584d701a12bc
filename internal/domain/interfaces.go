package domain

import "context"

// MarketDataSource is the external market data feed. One fresh fetch per
// run; nothing is cached between invocations.
type MarketDataSource interface {
	GetMarkets(ctx context.Context) ([]CoinRecord, error)
	GetTrending(ctx context.Context) ([]TrendingItem, error)
	GetBTCDominance(ctx context.Context) (float64, error)
}

// SentimentSource is the optional fear/greed index feed.
type SentimentSource interface {
	GetFearGreed(ctx context.Context) (SentimentReading, error)
}

// SnapshotRepository persists and reads back daily snapshots. Save is
// last-write-wins per date and must never leave a partial document behind.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snap *DailySnapshot) error
	LoadRecentSnapshots(ctx context.Context, days int) ([]DailySnapshot, error)
}

// RunRepository archives completed daily runs for operator inspection.
type RunRepository interface {
	SaveRun(ctx context.Context, run *RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]*RunRecord, error)
}
