package domain

import "strings"

// RankingConfig carries every filtering and ranking rule as an explicit,
// testable value. Nothing here is module-level state.
type RankingConfig struct {
	// TopN is how many entries each ranked list keeps.
	TopN int

	// MinVolume is the 24h volume threshold (reference currency units) a
	// coin must clear to qualify for the primary gainer ranking.
	MinVolume float64

	// StableSymbols / StableIDs are exact-match sets, compared
	// case-insensitively.
	StableSymbols map[string]bool
	StableIDs     map[string]bool

	// AltExcludedSymbols / AltExcludedIDs name the dominant reference
	// assets kept out of the alt-volume ranking (typically BTC and ETH).
	AltExcludedSymbols map[string]bool
	AltExcludedIDs     map[string]bool

	// ExcludedKeywords is the fuzzy name-substring layer ("wrapped",
	// "staked"). It is known to produce false positives on legitimately
	// named assets; keep it separate from the exact-match sets.
	ExcludedKeywords []string

	// FilterTrending applies the stable/excluded filters to the trending
	// feed as well. Off by default: the feed order is already curated.
	FilterTrending bool

	// ApplyKeywordsToAltVolume applies ExcludedKeywords to the alt-volume
	// ranking.
	ApplyKeywordsToAltVolume bool

	// BreadthExcludeStables drops stablecoins from the breadth universe.
	BreadthExcludeStables bool
}

// DefaultRankingConfig returns the production rule set: top-3 lists, a
// 500M reference-currency volume floor, the usual fiat-pegged symbols and
// BTC/ETH excluded from alt volume.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		TopN:      3,
		MinVolume: 500_000_000,
		StableSymbols: NewSet(
			"usdt", "usdc", "dai", "tusd", "busd", "fdusd", "usde", "susde",
			"usdp", "pyusd", "gusd", "eurc", "usdd", "lusd", "frax",
		),
		StableIDs: NewSet(
			"tether", "usd-coin", "dai", "true-usd", "binance-usd",
			"first-digital-usd", "ethena-usde", "paxos-standard", "paypal-usd",
		),
		AltExcludedSymbols:       NewSet("btc", "eth"),
		AltExcludedIDs:           NewSet("bitcoin", "ethereum"),
		ExcludedKeywords:         []string{"wrapped", "staked"},
		FilterTrending:           false,
		ApplyKeywordsToAltVolume: true,
		BreadthExcludeStables:    false,
	}
}

// NewSet builds a lowercase membership set from the given values.
func NewSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

// SetValues returns the members of a set in unspecified order.
func SetValues(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// IsStableExact reports an exact (case-insensitive) symbol or id match
// against the stable sets. This is the only stable check used for the
// alt-volume ranking.
func (c RankingConfig) IsStableExact(symbol, id string) bool {
	return c.StableSymbols[strings.ToLower(symbol)] || c.StableIDs[strings.ToLower(id)]
}

// IsStable applies the exact match plus the substring fallback: a name
// containing "stable" together with "usd" in the name or symbol is treated
// as a stablecoin even if it is missing from the sets.
func (c RankingConfig) IsStable(symbol, id, name string) bool {
	if c.IsStableExact(symbol, id) {
		return true
	}
	ln := strings.ToLower(name)
	ls := strings.ToLower(symbol)
	return strings.Contains(ln, "stable") && (strings.Contains(ln, "usd") || strings.Contains(ls, "usd"))
}

// IsAltExcluded reports whether the asset is one of the designated
// reference assets kept out of the alt-volume ranking.
func (c RankingConfig) IsAltExcluded(symbol, id string) bool {
	return c.AltExcludedSymbols[strings.ToLower(symbol)] || c.AltExcludedIDs[strings.ToLower(id)]
}

// MatchesExcludedKeyword reports whether the asset name trips the fuzzy
// keyword layer.
func (c RankingConfig) MatchesExcludedKeyword(name string) bool {
	ln := strings.ToLower(name)
	for _, kw := range c.ExcludedKeywords {
		if strings.Contains(ln, kw) {
			return true
		}
	}
	return false
}
