package usecase

import (
	"sort"
	"strings"

	"github.com/vitos/crypto_market_radar/internal/domain"
)

// Ranker applies the filtering and ranking rules to one fetched market
// universe. It is stateless: the same inputs always produce the same lists.
type Ranker struct {
	cfg domain.RankingConfig
}

func NewRanker(cfg domain.RankingConfig) *Ranker {
	return &Ranker{cfg: cfg}
}

func (r *Ranker) Config() domain.RankingConfig {
	return r.cfg
}

type gainerCandidate struct {
	rec    domain.CoinRecord
	change float64
	volume float64
}

// RankGainers returns up to TopN coins by 24h change. Only coins clearing
// the volume threshold compete on change; if that leaves open slots, the
// rest of the filtered universe fills them ordered by volume, so the list
// stays full even in illiquid conditions. Records without a usable change
// or volume, and stablecoins, never qualify.
func (r *Ranker) RankGainers(markets []domain.CoinRecord) domain.RankedList {
	var primary, fallback []gainerCandidate
	for _, m := range markets {
		if m.Symbol == "" {
			continue
		}
		if r.cfg.IsStable(m.Symbol, m.ID, m.Name) {
			continue
		}
		// Without a volume we cannot tell primary from fallback, so the
		// record is out of the gainer ranking entirely.
		if m.PriceChange24h == nil || m.TotalVolume == nil {
			continue
		}
		c := gainerCandidate{rec: m, change: *m.PriceChange24h, volume: *m.TotalVolume}
		fallback = append(fallback, c)
		if c.volume >= r.cfg.MinVolume {
			primary = append(primary, c)
		}
	}

	// Stable sorts keep input (market cap) order on ties.
	sort.SliceStable(primary, func(i, j int) bool {
		return primary[i].change > primary[j].change
	})

	out := make(domain.RankedList, 0, r.cfg.TopN)
	seen := make(map[string]bool)
	for _, c := range primary {
		if len(out) >= r.cfg.TopN {
			break
		}
		r.appendGainer(&out, seen, c)
	}

	if len(out) < r.cfg.TopN {
		sort.SliceStable(fallback, func(i, j int) bool {
			return fallback[i].volume > fallback[j].volume
		})
		for _, c := range fallback {
			if len(out) >= r.cfg.TopN {
				break
			}
			r.appendGainer(&out, seen, c)
		}
	}
	return out
}

func (r *Ranker) appendGainer(out *domain.RankedList, seen map[string]bool, c gainerCandidate) {
	sym := strings.ToUpper(c.rec.Symbol)
	if seen[sym] {
		return
	}
	seen[sym] = true
	change := c.change
	volume := c.volume
	*out = append(*out, domain.RankedItem{
		Rank:      len(*out) + 1,
		Symbol:    sym,
		Name:      c.rec.Name,
		Label:     domain.GainerLabel(sym, change),
		ChangePct: &change,
		Volume:    volume,
	})
}

// RankAltVolume returns up to TopN coins by 24h volume, excluding the
// designated reference assets and stablecoins (exact match only, no
// substring heuristic). There is no fill: fewer qualifying coins means a
// shorter list. A missing volume counts as zero so the coin sorts last.
func (r *Ranker) RankAltVolume(markets []domain.CoinRecord) domain.RankedList {
	type altCandidate struct {
		rec    domain.CoinRecord
		volume float64
	}
	var items []altCandidate
	for _, m := range markets {
		if m.Symbol == "" {
			continue
		}
		if r.cfg.IsStableExact(m.Symbol, m.ID) {
			continue
		}
		if r.cfg.IsAltExcluded(m.Symbol, m.ID) {
			continue
		}
		if r.cfg.ApplyKeywordsToAltVolume && r.cfg.MatchesExcludedKeyword(m.Name) {
			continue
		}
		vol := 0.0
		if m.TotalVolume != nil {
			vol = *m.TotalVolume
		}
		items = append(items, altCandidate{rec: m, volume: vol})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].volume > items[j].volume
	})

	out := make(domain.RankedList, 0, r.cfg.TopN)
	for _, c := range items {
		if len(out) >= r.cfg.TopN {
			break
		}
		sym := strings.ToUpper(c.rec.Symbol)
		item := domain.RankedItem{
			Rank:   len(out) + 1,
			Symbol: sym,
			Name:   c.rec.Name,
			Label:  sym,
			Volume: c.volume,
		}
		if c.rec.PriceChange24h != nil {
			change := *c.rec.PriceChange24h
			item.ChangePct = &change
		}
		out = append(out, item)
	}
	return out
}

// RankTrending takes the first TopN entries in feed order; the feed is
// already rank-ordered by the data source. With FilterTrending set, the
// alt-volume exclusion rules apply here too.
func (r *Ranker) RankTrending(trending []domain.TrendingItem) []domain.TrendingItem {
	out := make([]domain.TrendingItem, 0, r.cfg.TopN)
	for _, t := range trending {
		if len(out) >= r.cfg.TopN {
			break
		}
		if t.Symbol == "" {
			continue
		}
		if r.cfg.FilterTrending {
			if r.cfg.IsStableExact(t.Symbol, t.ID) || r.cfg.IsAltExcluded(t.Symbol, t.ID) {
				continue
			}
			if r.cfg.MatchesExcludedKeyword(t.Name) {
				continue
			}
		}
		t.Symbol = strings.ToUpper(t.Symbol)
		out = append(out, t)
	}
	return out
}

// ComputeBreadth counts up/down/flat moves over the records with a usable
// percent-change and derives mean, median and the up ratio. An empty
// universe yields zero counts and nil stats, not an error.
func (r *Ranker) ComputeBreadth(markets []domain.CoinRecord) domain.BreadthStats {
	var changes []float64
	var stats domain.BreadthStats
	for _, m := range markets {
		if m.PriceChange24h == nil {
			continue
		}
		if r.cfg.BreadthExcludeStables && r.cfg.IsStable(m.Symbol, m.ID, m.Name) {
			continue
		}
		chg := *m.PriceChange24h
		changes = append(changes, chg)
		switch {
		case chg > 0:
			stats.Up++
		case chg < 0:
			stats.Down++
		default:
			stats.Flat++
		}
	}
	if len(changes) == 0 {
		return stats
	}

	sum := 0.0
	for _, c := range changes {
		sum += c
	}
	avg := sum / float64(len(changes))
	stats.AvgChg = &avg

	median := medianOf(changes)
	stats.MedianChg = &median

	if stats.Up+stats.Down > 0 {
		ratio := float64(stats.Up) / float64(stats.Up+stats.Down) * 100
		stats.UpRatio = &ratio
	}
	return stats
}

// medianOf averages the two middle values for even-length input.
func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
