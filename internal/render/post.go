package render

import (
	"fmt"
	"strings"

	"github.com/vitos/crypto_market_radar/internal/domain"
)

// Keycap digits for list ranks (avoid literal emoji in source).
var rankEmoji = []string{
	"1\ufe0f\u20e3",
	"2\ufe0f\u20e3",
	"3\ufe0f\u20e3",
	"4\ufe0f\u20e3",
	"5\ufe0f\u20e3",
}

func rankPrefix(i int) string {
	if i < len(rankEmoji) {
		return rankEmoji[i]
	}
	return fmt.Sprintf("%d.", i+1)
}

func formatRanked(items []string, sep string) string {
	out := make([]string, 0, len(items))
	for i, x := range items {
		out = append(out, rankPrefix(i)+" "+x)
	}
	return strings.Join(out, sep)
}

// Pct formats a nullable percentage with sign and one decimal; nil renders
// as the explicit no-data marker.
func Pct(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}

// DailyPost is the rendered social text for one snapshot: the compact
// variant and the long one with market internals appended.
type DailyPost struct {
	Short string
	Long  string
}

// BuildDailyPost renders both post variants from a snapshot. link is the
// URL appended to the post (share page or site root, per configuration).
func BuildDailyPost(snap *domain.DailySnapshot, link string) DailyPost {
	trendSyms := make([]string, 0, len(snap.Trend))
	for _, t := range snap.Trend {
		trendSyms = append(trendSyms, t.Symbol)
	}

	lines := []string{
		fmt.Sprintf("[Daily Crypto Radar %s]", snap.Date),
		"\U0001F525 Trend: " + formatRanked(trendSyms, " / "),
		"\U0001F680 Up(24h): " + formatRanked(snap.Gainers.Labels(), " | "),
		"\U0001F4CA Vol(alt): " + formatRanked(snap.VolAlt.Symbols(), " / "),
	}
	tail := fmt.Sprintf("→ %s #crypto", link)

	short := strings.Join(append(append([]string{}, lines...), tail), "\n")

	long := lines
	long = append(long, fmt.Sprintf("\U0001F4C8 Breadth: %d up / %d down (avg %s)",
		snap.Breadth.Up, snap.Breadth.Down, Pct(snap.Breadth.AvgChg)))
	if snap.Sentiment != nil {
		long = append(long, fmt.Sprintf("\U0001F9ED Fear/Greed: %d (%s)",
			snap.Sentiment.FGI, snap.Sentiment.Label))
	}
	long = append(long, tail)

	return DailyPost{Short: short, Long: strings.Join(long, "\n")}
}
