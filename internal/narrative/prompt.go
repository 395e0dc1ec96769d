package narrative

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"StockAgent/internal/engine"
	"StockAgent/internal/model"
	"StockAgent/internal/news"
)

// BuildPrompt renders the analysis into the prompt for the report generator.
// The verdict is already decided; the model is asked to explain it, not to
// re-decide it.
func BuildPrompt(report *engine.Report, sheet *model.FactSheet, profile model.FundamentalProfile, headlines []news.Headline) string {
	var b strings.Builder

	b.WriteString("You are a professional financial analyst. You analyze Technicals (Charts), Fundamentals (Value), and Sentiment (News).\n\n")
	b.WriteString(fmt.Sprintf("Analyze the following data for **%s** and write a strategic report.\n\n", report.Ticker))

	b.WriteString("## 1. MARKET DATA & TECHNICALS\n")
	s := report.Summary
	b.WriteString(fmt.Sprintf("Latest close: %.2f (%d trading days)\n", s.LatestClose, s.Days))
	b.WriteString(fmt.Sprintf("Period change: %+.1f%%\n", s.PeriodChange))
	b.WriteString(fmt.Sprintf("Range: %.2f - %.2f, average %.2f\n", s.WindowLow, s.WindowHigh, s.AverageClose))
	if last, ok := report.Series.Last(); ok {
		b.WriteString(fmt.Sprintf("Latest volume: %s\n", humanize.Comma(int64(last.Volume))))
	}
	b.WriteString(indicatorLine("RSI(14)", sheet.Indicators.RSI14))
	b.WriteString(indicatorLine("SMA50", sheet.Indicators.SMA50))
	b.WriteString(indicatorLine("SMA200", sheet.Indicators.SMA200))
	if len(sheet.Crosses) == 0 {
		b.WriteString("Signals: no SMA cross on record\n")
	} else {
		for _, c := range sheet.Crosses {
			b.WriteString(fmt.Sprintf("Signals: %s cross on %s (%d bars ago)\n", c.Kind, c.OccurredAt, c.LookbackWindow))
		}
	}
	b.WriteString("\n")

	b.WriteString("## 2. FUNDAMENTAL DATA (Valuation & Health)\n")
	bands := sheet.FundamentalBands
	if profile.PERatio != nil {
		b.WriteString(fmt.Sprintf("P/E ratio: %.2f (%s)\n", *profile.PERatio, bands.PEBand))
	} else {
		b.WriteString("P/E ratio: unavailable\n")
	}
	if profile.MarketCap != nil {
		b.WriteString(fmt.Sprintf("Market cap: %s (%s)\n", FormatMarketCap(*profile.MarketCap), bands.CapBand))
	} else {
		b.WriteString("Market cap: unavailable\n")
	}
	if profile.ProfitMargin != nil {
		b.WriteString(fmt.Sprintf("Profit margin: %.1f%% (%s)\n", *profile.ProfitMargin*100, bands.MarginBand))
	} else {
		b.WriteString("Profit margin: unavailable\n")
	}
	b.WriteString("\n")

	b.WriteString("## 3. RECENT NEWS\n")
	if len(headlines) == 0 {
		b.WriteString("No recent news found.\n")
	} else {
		for i, h := range headlines {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, h.Title))
			if !h.PublishedAt.IsZero() {
				b.WriteString(fmt.Sprintf("   Published: %s\n", h.PublishedAt.Format("January 02, 2006")))
			}
		}
	}
	b.WriteString("\n")

	b.WriteString("## 4. COMPUTED VERDICT\n")
	v := sheet.Verdict
	b.WriteString(fmt.Sprintf("Call: %s (confidence %.2f)\n", v.Call, v.Confidence))
	for _, f := range report.Verdict.Factors {
		b.WriteString(factorLine(f))
	}
	b.WriteString("\n")

	b.WriteString(`## YOUR TASK
Write a report with these exact sections:

### 1. Executive Summary
- Give a 2-sentence overview of the situation.

### 2. Fundamental Analysis (Value)
- **Valuation:** Is the P/E Ratio high or low? (Historical avg is ~20-25).
- **Health:** Comment on Profit Margins. Is this a profitable company?

### 3. Technical Analysis (Momentum)
- **RSI:** State the value.
- **Trend:** Compare Price vs SMA 50.
- **Signals:** ONLY mention "Golden Cross" or "Death Cross" if listed under Signals above.

### 4. News Sentiment
- Summarize top drivers.
- Rate sentiment: Bullish/Bearish/Neutral.

### 5. Final Verdict & Recommendation
- **Verdict:** Restate the computed call and confidence; do not invent your own.
- **Reasoning:** Weigh the Fundamentals (is it a good company?) against Technicals (is it a good time to buy?).
- **Risk:** Mention 1 key risk.

**Style:** Professional, concise, Markdown.
`)

	return b.String()
}

func indicatorLine(name string, v *float64) string {
	if v == nil {
		return fmt.Sprintf("%s: unavailable\n", name)
	}
	return fmt.Sprintf("%s: %.2f\n", name, *v)
}

func factorLine(f model.FactorScore) string {
	if f.Absent {
		return fmt.Sprintf("  - %s: absent\n", f.Factor)
	}
	direction := "neutral"
	switch {
	case f.Score > 0:
		direction = "bullish"
	case f.Score < 0:
		direction = "bearish"
	}
	return fmt.Sprintf("  - %s: %s, weight %.2f (%s)\n", f.Factor, direction, f.Weight, f.Detail)
}

// FormatMarketCap renders a dollar value the way a human reads it.
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	}
	return "$" + humanize.Commaf(v)
}

// BuildQuickSentimentPrompt asks for a bare JSON sentiment classification.
func BuildQuickSentimentPrompt(ticker string, headlines []news.Headline) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Based on these recent news headlines for %s:\n\n", ticker))
	for i, h := range headlines {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, h.Title))
	}
	b.WriteString("\nRespond with ONLY a JSON object in this exact format:\n")
	b.WriteString(`{"sentiment": "positive|neutral|negative", "confidence": "high|medium|low"}`)
	b.WriteString("\n\nNo other text, just the JSON.")
	return b.String()
}
