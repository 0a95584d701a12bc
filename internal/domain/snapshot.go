package domain

import "time"

// BreadthStats describes how much of the market universe moved up vs down
// over the 24h window. Averages and the up ratio are nil when no record had
// a usable percent-change.
type BreadthStats struct {
	Up        int      `json:"up"`
	Down      int      `json:"down"`
	Flat      int      `json:"flat"`
	AvgChg    *float64 `json:"avg_chg"`
	MedianChg *float64 `json:"median_chg"`
	UpRatio   *float64 `json:"up_ratio"`
}

// AssetQuote is the spot price and 24h change for a single reference asset
// as captured at snapshot time.
type AssetQuote struct {
	Price     *float64 `json:"price"`
	Change24h *float64 `json:"pc24"`
}

// SentimentReading is the fear/greed index value captured with the
// snapshot, plus the BTC dominance share when the global feed was
// reachable.
type SentimentReading struct {
	FGI          int      `json:"fgi"`
	Label        string   `json:"label"`
	BTCDominance *float64 `json:"btc_dominance,omitempty"`
}

// SnapshotRules records the ruleset the snapshot was produced under so a
// later reader can tell apart rule changes from market changes.
type SnapshotRules struct {
	MinVolume       float64  `json:"min_volume"`
	StableSymbols   []string `json:"stable_symbols"`
	ExcludedSymbols []string `json:"excluded_symbols"`
}

// DailySnapshot is the immutable, dated artifact of one ranking run. One
// JSON document per calendar date; re-running a day overwrites the prior
// file (last-write-wins).
type DailySnapshot struct {
	Date      string            `json:"date"` // YYYY-MM-DD
	Breadth   BreadthStats      `json:"breadth"`
	Trend     []TrendingItem    `json:"trend"`
	Gainers   RankedList        `json:"gainers"`
	VolAlt    RankedList        `json:"vol_alt"`
	BTC       AssetQuote        `json:"btc"`
	ETH       AssetQuote        `json:"eth"`
	Sentiment *SentimentReading `json:"sentiment,omitempty"`
	Rules     SnapshotRules     `json:"rules"`
}

// Quote returns the reference-asset quote stored under the given key
// ("btc" or "eth"), or nil for an unknown key.
func (s *DailySnapshot) Quote(asset string) *AssetQuote {
	switch asset {
	case "btc":
		return &s.BTC
	case "eth":
		return &s.ETH
	}
	return nil
}

// RunRecord is one archived daily run. The ranked lists are stored as
// display strings; the JSON snapshot remains the machine-readable artifact.
type RunRecord struct {
	ID           string
	Date         string
	VsCurrency   string
	UniverseSize int
	Up           int
	Down         int
	Gainers      string
	VolAlt       string
	Trend        string
	CreatedAt    time.Time
}
