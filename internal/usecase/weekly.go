package usecase

import (
	"sort"
	"strings"

	"github.com/vitos/crypto_market_radar/internal/domain"
)

// ListField selects which ranked list of a snapshot FrequencyRank counts.
type ListField string

const (
	ListTrend   ListField = "trend"
	ListGainers ListField = "gainers"
	ListVolAlt  ListField = "vol_alt"
)

// SymbolFrequency is one row of a frequency ranking: how many days the
// symbol appeared in the list, and for gainers the best single-day change
// seen across those appearances.
type SymbolFrequency struct {
	Symbol    string
	Count     int
	MaxChange *float64
}

// WeeklyBreadth averages the per-day breadth already computed by the
// ranking engine.
type WeeklyBreadth struct {
	AvgUpRatio *float64
	AvgChange  *float64
	UpDays     int
	DownDays   int
}

// WeeklySentiment summarizes the fear/greed readings stored with the
// snapshots.
type WeeklySentiment struct {
	FGIAvg    *float64
	FGILatest *int
	DomAvg    *float64
	DomChange *float64
}

// WeeklyReport is everything the weekly renderer needs, derived from one
// pass over the snapshot window.
type WeeklyReport struct {
	Days       int
	StartDate  string
	EndDate    string
	BTCReturn  *float64
	ETHReturn  *float64
	Breadth    WeeklyBreadth
	Sentiment  WeeklySentiment
	TrendTop   []SymbolFrequency
	GainersTop []SymbolFrequency
	VolAltTop  []SymbolFrequency
}

// WeeklyService aggregates a window of daily snapshots, ordered ascending
// by date. It only reads; snapshots are never mutated.
type WeeklyService struct {
	topK int
}

func NewWeeklyService(topK int) *WeeklyService {
	return &WeeklyService{topK: topK}
}

// Aggregate runs every weekly statistic over the window. Nil is returned
// for an empty window: "no data" is a valid terminal state, not an error.
func (s *WeeklyService) Aggregate(snaps []domain.DailySnapshot) *WeeklyReport {
	if len(snaps) == 0 {
		return nil
	}
	return &WeeklyReport{
		Days:       len(snaps),
		StartDate:  snaps[0].Date,
		EndDate:    snaps[len(snaps)-1].Date,
		BTCReturn:  s.WeeklyReturn(snaps, "btc"),
		ETHReturn:  s.WeeklyReturn(snaps, "eth"),
		Breadth:    s.AggregateBreadth(snaps),
		Sentiment:  s.AggregateSentiment(snaps),
		TrendTop:   s.FrequencyRank(snaps, ListTrend, s.topK),
		GainersTop: s.FrequencyRank(snaps, ListGainers, s.topK),
		VolAltTop:  s.FrequencyRank(snaps, ListVolAlt, s.topK),
	}
}

// WeeklyReturn computes (end/start - 1) * 100 from the first and last
// snapshot carrying a usable (positive) price for the asset. Fewer than two
// usable prices yields nil; intermediate days are never substituted.
func (s *WeeklyService) WeeklyReturn(snaps []domain.DailySnapshot, asset string) *float64 {
	first, last := -1, -1
	for i := range snaps {
		if usablePrice(snaps[i].Quote(asset)) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || first == last {
		return nil
	}
	start := *snaps[first].Quote(asset).Price
	end := *snaps[last].Quote(asset).Price
	ret := (end/start - 1) * 100
	return &ret
}

func usablePrice(q *domain.AssetQuote) bool {
	return q != nil && q.Price != nil && *q.Price > 0
}

// AggregateBreadth averages the per-day up ratio and mean change over the
// days where they are present, and counts up-dominant days (up >= down).
func (s *WeeklyService) AggregateBreadth(snaps []domain.DailySnapshot) WeeklyBreadth {
	var out WeeklyBreadth
	var ratioSum, chgSum float64
	var ratioN, chgN int
	for _, snap := range snaps {
		if snap.Breadth.UpRatio != nil {
			ratioSum += *snap.Breadth.UpRatio
			ratioN++
		}
		if snap.Breadth.AvgChg != nil {
			chgSum += *snap.Breadth.AvgChg
			chgN++
		}
		if snap.Breadth.Up >= snap.Breadth.Down {
			out.UpDays++
		} else {
			out.DownDays++
		}
	}
	if ratioN > 0 {
		avg := ratioSum / float64(ratioN)
		out.AvgUpRatio = &avg
	}
	if chgN > 0 {
		avg := chgSum / float64(chgN)
		out.AvgChange = &avg
	}
	return out
}

// AggregateSentiment averages the fear/greed index and BTC dominance over
// the days that recorded them. DomChange is last minus first and needs at
// least two readings.
func (s *WeeklyService) AggregateSentiment(snaps []domain.DailySnapshot) WeeklySentiment {
	var out WeeklySentiment
	var fgiSum float64
	var fgiN int
	var doms []float64
	for _, snap := range snaps {
		if snap.Sentiment == nil {
			continue
		}
		fgiSum += float64(snap.Sentiment.FGI)
		fgiN++
		latest := snap.Sentiment.FGI
		out.FGILatest = &latest
		if snap.Sentiment.BTCDominance != nil {
			doms = append(doms, *snap.Sentiment.BTCDominance)
		}
	}
	if fgiN > 0 {
		avg := fgiSum / float64(fgiN)
		out.FGIAvg = &avg
	}
	if len(doms) > 0 {
		sum := 0.0
		for _, d := range doms {
			sum += d
		}
		avg := sum / float64(len(doms))
		out.DomAvg = &avg
	}
	if len(doms) >= 2 {
		change := doms[len(doms)-1] - doms[0]
		out.DomChange = &change
	}
	return out
}

// FrequencyRank counts, per symbol, how many days it appeared in the chosen
// list. Output is ordered by count descending; gainer ties break on the
// best observed change, other lists keep first-seen order. Truncated to
// topK.
func (s *WeeklyService) FrequencyRank(snaps []domain.DailySnapshot, field ListField, topK int) []SymbolFrequency {
	index := make(map[string]int)
	var entries []SymbolFrequency

	bump := func(symbol string, change *float64) {
		sym := strings.ToUpper(symbol)
		if sym == "" {
			return
		}
		i, ok := index[sym]
		if !ok {
			index[sym] = len(entries)
			entries = append(entries, SymbolFrequency{Symbol: sym})
			i = len(entries) - 1
		}
		entries[i].Count++
		if change != nil {
			if entries[i].MaxChange == nil || *change > *entries[i].MaxChange {
				c := *change
				entries[i].MaxChange = &c
			}
		}
	}

	for _, snap := range snaps {
		switch field {
		case ListTrend:
			for _, t := range snap.Trend {
				bump(t.Symbol, nil)
			}
		case ListGainers:
			for _, g := range snap.Gainers {
				bump(g.Symbol, g.ChangePct)
			}
		case ListVolAlt:
			for _, v := range snap.VolAlt {
				bump(v.Symbol, nil)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if field == ListGainers && entries[i].MaxChange != nil && entries[j].MaxChange != nil {
			return *entries[i].MaxChange > *entries[j].MaxChange
		}
		return false
	})

	if topK > 0 && len(entries) > topK {
		entries = entries[:topK]
	}
	return entries
}
