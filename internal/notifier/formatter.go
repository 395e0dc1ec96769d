package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockAgent/internal/engine"
	"StockAgent/internal/model"
)

// FormatFactSheet renders one analysis run as a Telegram HTML message.
func FormatFactSheet(report *engine.Report, sheet *model.FactSheet) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s Analysis</b> | %s\n\n", report.Ticker, time.Now().Format("2006-01-02")))

	sum := report.Summary
	b.WriteString(fmt.Sprintf("Close: %.2f (%+.1f%% over %d days)\n", sum.LatestClose, sum.PeriodChange, sum.Days))
	b.WriteString(fmt.Sprintf("Range: %.2f - %.2f | Avg: %.2f\n\n", sum.WindowLow, sum.WindowHigh, sum.AverageClose))

	ind := sheet.Indicators
	b.WriteString("📈 <b>Technicals:</b>\n")
	b.WriteString(fmt.Sprintf("  RSI(14): %s\n", fmtScalar(ind.RSI14)))
	b.WriteString(fmt.Sprintf("  SMA50: %s | SMA200: %s\n", fmtScalar(ind.SMA50), fmtScalar(ind.SMA200)))
	if len(sheet.Crosses) > 0 {
		last := sheet.Crosses[len(sheet.Crosses)-1]
		b.WriteString(fmt.Sprintf("  %s %s cross on %s (%d bars ago)\n",
			crossEmoji(last.Kind), last.Kind, last.OccurredAt, last.LookbackWindow))
	}
	b.WriteString("\n")

	if bands := sheet.FundamentalBands; bands != (model.BandSummary{}) {
		b.WriteString(fmt.Sprintf("🏦 Fundamentals: pe=%s cap=%s margin=%s\n",
			orDash(bands.PEBand), orDash(bands.CapBand), orDash(bands.MarginBand)))
	}
	if sent := sheet.Sentiment; sent.SampleSize > 0 {
		b.WriteString(fmt.Sprintf("🗞 Sentiment: %s (%.2f over %d headlines)\n",
			sent.Label, sent.Confidence, sent.SampleSize))
	}
	b.WriteString("\n")

	v := sheet.Verdict
	b.WriteString(fmt.Sprintf("%s <b>Verdict: %s</b> (confidence %.2f)\n", verdictEmoji(v.Call), v.Call, v.Confidence))
	for _, f := range report.Verdict.Factors {
		if f.Absent {
			b.WriteString(fmt.Sprintf("  %s: absent\n", f.Factor))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %+.2f (×%.2f) = %+.3f\n", f.Factor, f.Score, f.Weight, f.Weighted))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Total: %+.3f (coverage %.2f)\n", report.Verdict.Total, report.Verdict.Coverage))

	if len(report.Degraded) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ Degraded inputs: %s\n", strings.Join(report.Degraded, ", ")))
	}

	return b.String()
}

// FormatQuickSentiment renders a headline-only sentiment check.
func FormatQuickSentiment(ticker string, label model.SentimentLabel, confidence float64, source string) string {
	return fmt.Sprintf("🗞 <b>%s sentiment:</b> %s %s (confidence %.2f, via %s)",
		ticker, sentimentEmoji(label), label, confidence, source)
}

// FormatWatchlist renders the configured watchlist for a command reply.
func FormatWatchlist(tickers []string) string {
	if len(tickers) == 0 {
		return "📋 Watchlist is empty."
	}
	var b strings.Builder
	b.WriteString("📋 <b>Watchlist</b>\n\n")
	for _, t := range tickers {
		b.WriteString(fmt.Sprintf("• %s\n", t))
	}
	return b.String()
}

func fmtScalar(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func verdictEmoji(c model.Call) string {
	switch c {
	case model.CallBuy:
		return "🟢"
	case model.CallSell:
		return "🔴"
	default:
		return "⚪️"
	}
}

func crossEmoji(k model.CrossKind) string {
	if k == model.CrossGolden {
		return "🟡"
	}
	return "⚫️"
}

func sentimentEmoji(l model.SentimentLabel) string {
	switch l {
	case model.SentimentBullish:
		return "📈"
	case model.SentimentBearish:
		return "📉"
	default:
		return "➖"
	}
}
