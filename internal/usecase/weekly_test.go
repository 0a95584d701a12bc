package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_market_radar/internal/domain"
)

func daySnap(date string, btcPrice *float64) domain.DailySnapshot {
	snap := domain.DailySnapshot{Date: date}
	if btcPrice != nil {
		snap.BTC = domain.AssetQuote{Price: btcPrice}
	}
	return snap
}

func TestWeeklyReturn(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		daySnap("2026-08-21", fptr(100)),
		daySnap("2026-08-22", nil),
		daySnap("2026-08-23", fptr(110)),
	}
	ret := svc.WeeklyReturn(snaps, "btc")
	require.NotNil(t, ret)
	assert.InDelta(t, 10.0, *ret, 1e-9)
}

func TestWeeklyReturn_SingleUsablePrice(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		daySnap("2026-08-21", nil),
		daySnap("2026-08-22", fptr(100)),
		daySnap("2026-08-23", nil),
	}
	assert.Nil(t, svc.WeeklyReturn(snaps, "btc"))
}

func TestWeeklyReturn_IgnoresNonPositivePrices(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		daySnap("2026-08-21", fptr(0)), // not usable
		daySnap("2026-08-22", fptr(200)),
		daySnap("2026-08-23", fptr(150)),
	}
	ret := svc.WeeklyReturn(snaps, "btc")
	require.NotNil(t, ret)
	assert.InDelta(t, -25.0, *ret, 1e-9)
}

func TestAggregateBreadth(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		{Date: "2026-08-21", Breadth: domain.BreadthStats{Up: 100, Down: 50, UpRatio: fptr(66.0), AvgChg: fptr(1.0)}},
		{Date: "2026-08-22", Breadth: domain.BreadthStats{Up: 40, Down: 110, UpRatio: fptr(26.0), AvgChg: fptr(-2.0)}},
		{Date: "2026-08-23", Breadth: domain.BreadthStats{Up: 80, Down: 80}}, // no averages recorded
	}
	got := svc.AggregateBreadth(snaps)

	require.NotNil(t, got.AvgUpRatio)
	assert.InDelta(t, 46.0, *got.AvgUpRatio, 1e-9)
	require.NotNil(t, got.AvgChange)
	assert.InDelta(t, -0.5, *got.AvgChange, 1e-9)
	assert.Equal(t, 2, got.UpDays) // day 1 and the balanced day 3
	assert.Equal(t, 1, got.DownDays)
}

func TestFrequencyRank_GainersTracksMaxChange(t *testing.T) {
	svc := NewWeeklyService(5)

	// AAA appears three days with changes 5.0, 12.0, 8.0.
	snaps := []domain.DailySnapshot{
		{Gainers: domain.RankedList{{Symbol: "AAA", ChangePct: fptr(5.0)}}},
		{Gainers: domain.RankedList{{Symbol: "AAA", ChangePct: fptr(12.0)}}},
		{Gainers: domain.RankedList{{Symbol: "AAA", ChangePct: fptr(8.0)}}},
	}
	got := svc.FrequencyRank(snaps, ListGainers, 5)

	require.Len(t, got, 1)
	assert.Equal(t, "AAA", got[0].Symbol)
	assert.Equal(t, 3, got[0].Count)
	require.NotNil(t, got[0].MaxChange)
	assert.Equal(t, 12.0, *got[0].MaxChange)
}

func TestFrequencyRank_OrderAndTies(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		{Gainers: domain.RankedList{
			{Symbol: "AAA", ChangePct: fptr(5.0)},
			{Symbol: "BBB", ChangePct: fptr(9.0)},
		}},
		{Gainers: domain.RankedList{
			{Symbol: "BBB", ChangePct: fptr(2.0)},
			{Symbol: "CCC", ChangePct: fptr(20.0)},
		}},
	}
	got := svc.FrequencyRank(snaps, ListGainers, 5)

	require.Len(t, got, 3)
	assert.Equal(t, "BBB", got[0].Symbol) // two appearances
	// AAA and CCC tie on count; CCC wins on best change.
	assert.Equal(t, "CCC", got[1].Symbol)
	assert.Equal(t, "AAA", got[2].Symbol)
}

func TestFrequencyRank_TrendInsertionStable(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		{Trend: []domain.TrendingItem{{Symbol: "AAA"}, {Symbol: "BBB"}}},
		{Trend: []domain.TrendingItem{{Symbol: "CCC"}}},
	}
	got := svc.FrequencyRank(snaps, ListTrend, 5)

	require.Len(t, got, 3)
	assert.Equal(t, "AAA", got[0].Symbol)
	assert.Equal(t, "BBB", got[1].Symbol)
	assert.Equal(t, "CCC", got[2].Symbol)
}

func TestFrequencyRank_TruncatesToTopK(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		{Trend: []domain.TrendingItem{{Symbol: "AAA"}, {Symbol: "BBB"}, {Symbol: "CCC"}}},
	}
	got := svc.FrequencyRank(snaps, ListTrend, 2)
	assert.Len(t, got, 2)
}

func TestAggregateSentiment(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		{Sentiment: &domain.SentimentReading{FGI: 40, Label: "Fear", BTCDominance: fptr(52.0)}},
		{Sentiment: nil},
		{Sentiment: &domain.SentimentReading{FGI: 60, Label: "Greed", BTCDominance: fptr(50.0)}},
	}
	got := svc.AggregateSentiment(snaps)

	require.NotNil(t, got.FGIAvg)
	assert.InDelta(t, 50.0, *got.FGIAvg, 1e-9)
	require.NotNil(t, got.FGILatest)
	assert.Equal(t, 60, *got.FGILatest)
	require.NotNil(t, got.DomAvg)
	assert.InDelta(t, 51.0, *got.DomAvg, 1e-9)
	require.NotNil(t, got.DomChange)
	assert.InDelta(t, -2.0, *got.DomChange, 1e-9)
}

func TestAggregate_EmptyWindow(t *testing.T) {
	svc := NewWeeklyService(5)
	assert.Nil(t, svc.Aggregate(nil))
}

func TestAggregate_FullWindow(t *testing.T) {
	svc := NewWeeklyService(5)

	snaps := []domain.DailySnapshot{
		{
			Date:    "2026-08-21",
			BTC:     domain.AssetQuote{Price: fptr(100)},
			Breadth: domain.BreadthStats{Up: 10, Down: 5, UpRatio: fptr(66.7)},
			Gainers: domain.RankedList{{Symbol: "AAA", ChangePct: fptr(8.0)}},
		},
		{
			Date:    "2026-08-23",
			BTC:     domain.AssetQuote{Price: fptr(120)},
			Breadth: domain.BreadthStats{Up: 3, Down: 12, UpRatio: fptr(20.0)},
			Gainers: domain.RankedList{{Symbol: "AAA", ChangePct: fptr(4.0)}},
		},
	}
	rep := svc.Aggregate(snaps)

	require.NotNil(t, rep)
	assert.Equal(t, 2, rep.Days)
	assert.Equal(t, "2026-08-21", rep.StartDate)
	assert.Equal(t, "2026-08-23", rep.EndDate)
	require.NotNil(t, rep.BTCReturn)
	assert.InDelta(t, 20.0, *rep.BTCReturn, 1e-9)
	assert.Nil(t, rep.ETHReturn)
	require.Len(t, rep.GainersTop, 1)
	assert.Equal(t, 2, rep.GainersTop[0].Count)
}
