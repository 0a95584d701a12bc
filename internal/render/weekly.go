package render

import (
	"fmt"
	"strings"

	"github.com/vitos/crypto_market_radar/internal/usecase"
)

func fgiMood(fgi *int) string {
	if fgi == nil {
		return "Neutral"
	}
	switch {
	case *fgi < 25:
		return "Extreme Fear"
	case *fgi < 45:
		return "Fear"
	case *fgi > 75:
		return "Greed"
	default:
		return "Neutral"
	}
}

func domDirection(change *float64) string {
	if change == nil {
		return "flat"
	}
	switch {
	case *change > 0.5:
		return "rising (capital concentrating in BTC)"
	case *change < -0.5:
		return "falling (capital rotating into alts)"
	default:
		return "flat"
	}
}

func fmtOrDash(format string, v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf(format, *v)
}

// BuildWeeklyReport renders the weekly Markdown report from an aggregated
// window.
func BuildWeeklyReport(rep *usecase.WeeklyReport, siteURL string) string {
	var b strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	w("# Crypto Market Radar — Weekly Review")
	w("Period: %s — %s (%d days)", rep.StartDate, rep.EndDate, rep.Days)
	w("")
	w("## 1. Executive summary")
	w("- **Majors:** BTC %s / ETH %s", Pct(rep.BTCReturn), Pct(rep.ETHReturn))
	var latest *int
	if rep.Sentiment.FGILatest != nil {
		latest = rep.Sentiment.FGILatest
		w("- **Market mood:** index %d (%s)", *latest, fgiMood(latest))
	} else {
		w("- **Market mood:** —")
	}
	w("- **Capital flow:** BTC dominance is **%s**", domDirection(rep.Sentiment.DomChange))
	w("")
	w("## 2. Market internals")
	w("- **BTC dominance:** average %s", fmtOrDash("%.2f%%", rep.Sentiment.DomAvg))
	w("- **Breadth:** on average **%s** of the universe closed up; %d of %d days were up-dominant.",
		fmtOrDash("%.1f%%", rep.Breadth.AvgUpRatio), rep.Breadth.UpDays, rep.Days)
	w("- **Average daily move:** %s", Pct(rep.Breadth.AvgChange))
	w("")
	w("## 3. Recurring names")
	w("### \U0001F525 Trending (market attention)")
	if len(rep.TrendTop) == 0 {
		w("- no recurring trending names")
	}
	for _, f := range rep.TrendTop {
		w("- **%s**: ranked %d day(s) this week", f.Symbol, f.Count)
	}
	w("")
	w("### \U0001F680 Repeat gainers (persistent momentum)")
	if len(rep.GainersTop) == 0 {
		w("- no notable repeat gainers")
	}
	for _, f := range rep.GainersTop {
		w("- **%s**: %d appearance(s), best day %s", f.Symbol, f.Count, Pct(f.MaxChange))
	}
	w("")
	w("### \U0001F4CA Alt volume leaders")
	if len(rep.VolAltTop) == 0 {
		w("- no recurring volume leaders")
	}
	for _, f := range rep.VolAltTop {
		w("- **%s**: led volume %d day(s)", f.Symbol, f.Count)
	}
	w("")
	w("## 4. Outlook")
	w("%s", outlookLine(rep))
	w("")
	w("---")
	w("\U0001F4CA Full dashboard: %s", siteURL)
	w("Generated automatically. Not investment advice.")

	return b.String()
}

func outlookLine(rep *usecase.WeeklyReport) string {
	btcUp := rep.BTCReturn != nil && *rep.BTCReturn > 0
	domDown := rep.Sentiment.DomChange != nil && *rep.Sentiment.DomChange < 0
	domUp := rep.Sentiment.DomChange != nil && *rep.Sentiment.DomChange > 0
	btcDown := rep.BTCReturn != nil && *rep.BTCReturn < 0
	switch {
	case btcUp && domDown:
		return "BTC held firm while dominance slipped — a classic rotation of capital into altcoins."
	case btcDown && domUp:
		return "Risk-off tone: capital retreated from alts into BTC in a flight to quality."
	default:
		return "The market is still searching for direction; watch breadth and sentiment for the next cue."
	}
}

// BuildWeeklyAnnounce renders the short announcement text pointing at the
// full report.
func BuildWeeklyAnnounce(rep *usecase.WeeklyReport, siteURL string) string {
	var top []string
	for i, f := range rep.TrendTop {
		if i >= 2 {
			break
		}
		top = append(top, f.Symbol)
	}
	names := strings.Join(top, ", ")
	if names == "" {
		names = "—"
	}

	lines := []string{
		"[Weekly Market Review]",
		fmt.Sprintf("Period: %s — %s", rep.StartDate, rep.EndDate),
		"",
		fmt.Sprintf("Mood: %s (%s)", fmtOrDashInt(rep.Sentiment.FGILatest), fgiMood(rep.Sentiment.FGILatest)),
		fmt.Sprintf("BTC dominance: %s", fmtOrDash("%.1f%%", rep.Sentiment.DomAvg)),
		fmt.Sprintf("Names to watch: %s", names),
		"",
		"\U0001F4DD Full report on the site",
		siteURL,
		"#crypto",
	}
	return strings.Join(lines, "\n")
}

func fmtOrDashInt(v *int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *v)
}
