package domain

import (
	"fmt"
	"strings"
)

// CoinRecord is one tradable asset as reported by the market data source.
// Change, volume and rank can be absent in the feed, hence the pointers.
type CoinRecord struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	CurrentPrice   float64  `json:"current_price"`
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
	TotalVolume    *float64 `json:"total_volume"`
	MarketCapRank  *int     `json:"market_cap_rank"`
}

// TrendingItem is the lighter record from the trending feed. It is not
// guaranteed to exist in the markets universe (may be outside the top-N
// market cap window).
type TrendingItem struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank *int   `json:"market_cap_rank"`
}

// RankedItem is one entry of a ranked list. Rank is 1-based and positional.
type RankedItem struct {
	Rank      int      `json:"rank"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name,omitempty"`
	Label     string   `json:"label"`
	ChangePct *float64 `json:"change_pct,omitempty"`
	Volume    float64  `json:"volume,omitempty"`
}

type RankedList []RankedItem

// Symbols returns the upper-cased symbols in rank order.
func (l RankedList) Symbols() []string {
	out := make([]string, 0, len(l))
	for _, item := range l {
		out = append(out, strings.ToUpper(item.Symbol))
	}
	return out
}

// Labels returns the display labels in rank order.
func (l RankedList) Labels() []string {
	out := make([]string, 0, len(l))
	for _, item := range l {
		out = append(out, item.Label)
	}
	return out
}

// GainerLabel renders "SYM +12.3%": one decimal place, explicit sign for
// non-negative values.
func GainerLabel(symbol string, changePct float64) string {
	return fmt.Sprintf("%s %+.1f%%", strings.ToUpper(symbol), changePct)
}
