package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitos/crypto_market_radar/internal/domain"
	"go.uber.org/zap"
)

// DailyService runs one full ranking cycle: fetch the universe, rank,
// compute breadth, persist the snapshot and archive the run. One invocation
// equals one cycle; there is no internal scheduling.
type DailyService struct {
	source     domain.MarketDataSource
	sentiment  domain.SentimentSource
	snapshots  domain.SnapshotRepository
	runs       domain.RunRepository
	ranker     *Ranker
	vsCurrency string
	location   *time.Location
	logger     *zap.Logger
	timeNow    func() time.Time // For testing
}

// NewDailyService wires one run. sentiment and runs may be nil: the
// fear/greed feed is optional and the archive is best-effort.
func NewDailyService(
	source domain.MarketDataSource,
	sentiment domain.SentimentSource,
	snapshots domain.SnapshotRepository,
	runs domain.RunRepository,
	ranker *Ranker,
	vsCurrency string,
	location *time.Location,
	logger *zap.Logger,
) *DailyService {
	return &DailyService{
		source:     source,
		sentiment:  sentiment,
		snapshots:  snapshots,
		runs:       runs,
		ranker:     ranker,
		vsCurrency: vsCurrency,
		location:   location,
		logger:     logger,
		timeNow:    time.Now,
	}
}

// Run executes one cycle. A fetch failure aborts the run before anything is
// written; per-record defects are handled inside the ranker. The returned
// snapshot has already been persisted.
func (s *DailyService) Run(ctx context.Context) (*domain.DailySnapshot, error) {
	markets, err := s.source.GetMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	trending, err := s.source.GetTrending(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}
	s.logger.Info("Fetched market universe",
		zap.Int("markets", len(markets)),
		zap.Int("trending", len(trending)),
		zap.String("vs_currency", s.vsCurrency))

	cfg := s.ranker.Config()
	now := s.timeNow().In(s.location)

	snap := &domain.DailySnapshot{
		Date:    now.Format("2006-01-02"),
		Breadth: s.ranker.ComputeBreadth(markets),
		Trend:   s.ranker.RankTrending(trending),
		Gainers: s.ranker.RankGainers(markets),
		VolAlt:  s.ranker.RankAltVolume(markets),
		BTC:     quoteFor(markets, "bitcoin"),
		ETH:     quoteFor(markets, "ethereum"),
		Rules: domain.SnapshotRules{
			MinVolume:       cfg.MinVolume,
			StableSymbols:   sortedSetValues(cfg.StableSymbols),
			ExcludedSymbols: sortedSetValues(cfg.AltExcludedSymbols),
		},
	}
	snap.Sentiment = s.readSentiment(ctx)

	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	s.archiveRun(ctx, snap, len(markets))

	return snap, nil
}

// readSentiment never fails the run: the index defaults to the neutral
// midpoint and dominance stays unset when the feeds are unreachable.
func (s *DailyService) readSentiment(ctx context.Context) *domain.SentimentReading {
	reading := domain.SentimentReading{FGI: 50, Label: "Neutral"}
	if s.sentiment != nil {
		got, err := s.sentiment.GetFearGreed(ctx)
		if err != nil {
			s.logger.Warn("Fear/greed feed unavailable, using neutral", zap.Error(err))
		} else {
			reading = got
		}
	}
	dom, err := s.source.GetBTCDominance(ctx)
	if err != nil {
		s.logger.Warn("Global feed unavailable, skipping dominance", zap.Error(err))
	} else {
		reading.BTCDominance = &dom
	}
	return &reading
}

func (s *DailyService) archiveRun(ctx context.Context, snap *domain.DailySnapshot, universe int) {
	if s.runs == nil {
		return
	}
	trendSyms := make([]string, 0, len(snap.Trend))
	for _, t := range snap.Trend {
		trendSyms = append(trendSyms, t.Symbol)
	}
	run := &domain.RunRecord{
		ID:           uuid.NewString(),
		Date:         snap.Date,
		VsCurrency:   s.vsCurrency,
		UniverseSize: universe,
		Up:           snap.Breadth.Up,
		Down:         snap.Breadth.Down,
		Gainers:      strings.Join(snap.Gainers.Labels(), " | "),
		VolAlt:       strings.Join(snap.VolAlt.Labels(), " | "),
		Trend:        strings.Join(trendSyms, " | "),
		CreatedAt:    s.timeNow().In(s.location),
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.logger.Warn("Failed to archive run", zap.Error(err))
	}
}

func quoteFor(markets []domain.CoinRecord, id string) domain.AssetQuote {
	for _, m := range markets {
		if m.ID == id {
			price := m.CurrentPrice
			q := domain.AssetQuote{Price: &price}
			if m.PriceChange24h != nil {
				chg := *m.PriceChange24h
				q.Change24h = &chg
			}
			return q
		}
	}
	return domain.AssetQuote{}
}

func sortedSetValues(set map[string]bool) []string {
	values := domain.SetValues(set)
	sort.Strings(values)
	return values
}
