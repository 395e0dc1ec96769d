package narrative

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockAgent/internal/engine"
	"StockAgent/internal/model"
	"StockAgent/internal/news"
)

func analyzedFixture(t *testing.T) (*model.FactSheet, *engine.Report) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, 260)
	for i := range points {
		c := 100 + float64(i)*0.5
		points[i] = model.PricePoint{Time: base.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1234567}
	}
	pe := 24.5
	sheet, report, err := engine.Analyze(engine.Request{
		Ticker:       "NVDA",
		Candles:      points,
		Fundamentals: model.FundamentalProfile{PERatio: &pe},
	})
	require.NoError(t, err)
	return sheet, report
}

func TestBuildPrompt(t *testing.T) {
	sheet, report := analyzedFixture(t)
	pe := 24.5
	mcap := 3.0e12
	profile := model.FundamentalProfile{PERatio: &pe, MarketCap: &mcap}
	headlines := []news.Headline{
		{Title: "NVDA shares surge", PublishedAt: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC)},
	}

	prompt := BuildPrompt(report, sheet, profile, headlines)

	require.Contains(t, prompt, "**NVDA**")
	require.Contains(t, prompt, "## 1. MARKET DATA & TECHNICALS")
	require.Contains(t, prompt, "RSI(14): 100.00")
	require.Contains(t, prompt, "Latest volume: 1,234,567")
	require.Contains(t, prompt, "P/E ratio: 24.50")
	require.Contains(t, prompt, "Market cap: $3.00T")
	require.Contains(t, prompt, "1. NVDA shares surge")
	require.Contains(t, prompt, "Published: August 05, 2024")
	require.Contains(t, prompt, "Call: BUY")
	require.Contains(t, prompt, "### 5. Final Verdict & Recommendation")
	require.NotContains(t, prompt, "No recent news found.")
}

func TestBuildPrompt_DegradedInputs(t *testing.T) {
	sheet, report := analyzedFixture(t)

	prompt := BuildPrompt(report, sheet, model.FundamentalProfile{}, nil)
	require.Contains(t, prompt, "Market cap: unavailable")
	require.Contains(t, prompt, "Profit margin: unavailable")
	require.Contains(t, prompt, "No recent news found.")
}

func TestFormatMarketCap(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.5e12, "$2.50T"},
		{150e9, "$150.00B"},
		{3.2e6, "$3.20M"},
		{950_000, "$950,000"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatMarketCap(tc.in))
	}
}

func TestBuildQuickSentimentPrompt(t *testing.T) {
	prompt := BuildQuickSentimentPrompt("AAPL", []news.Headline{
		{Title: "first"}, {Title: "second"},
	})
	require.True(t, strings.HasPrefix(prompt, "Based on these recent news headlines for AAPL:"))
	require.Contains(t, prompt, "1. first")
	require.Contains(t, prompt, "2. second")
	require.Contains(t, prompt, `{"sentiment": "positive|neutral|negative", "confidence": "high|medium|low"}`)
}
