package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"StockAgent/internal/model"
	"StockAgent/internal/series"
)

var testBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func candles(closes []float64) []model.PricePoint {
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{
			Time:   testBase.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return points
}

// flatThenRising holds a 300-bar series with no losing day: flat through
// index 209, then climbing half a point per bar. The short average overtakes
// the long one at index 210 and the final close sits above both.
func flatThenRising() []float64 {
	closes := make([]float64, 300)
	for i := range closes {
		if i < 210 {
			closes[i] = 100
		} else {
			closes[i] = 100 + float64(i-209)*0.5
		}
	}
	return closes
}

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	return closes
}

func TestAnalyze_EndToEndBuy(t *testing.T) {
	sheet, report, err := Analyze(Request{
		Ticker:  "TEST",
		Candles: candles(flatThenRising()),
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if sheet.Indicators.RSI14 == nil || *sheet.Indicators.RSI14 != 100 {
		t.Errorf("rsi14 = %v, want 100 for a series with no losing day", sheet.Indicators.RSI14)
	}

	if len(sheet.Crosses) != 1 {
		t.Fatalf("crosses = %+v, want exactly one", sheet.Crosses)
	}
	cross := sheet.Crosses[0]
	if cross.Kind != model.CrossGolden {
		t.Errorf("cross kind = %s, want GOLDEN", cross.Kind)
	}
	if want := testBase.AddDate(0, 0, 210).Format("2006-01-02"); cross.OccurredAt != want {
		t.Errorf("cross occurred_at = %s, want %s", cross.OccurredAt, want)
	}
	if cross.LookbackWindow != 89 {
		t.Errorf("cross lookback = %d, want 89", cross.LookbackWindow)
	}

	if sheet.Verdict.Call != model.CallBuy {
		t.Errorf("call = %s, want BUY", sheet.Verdict.Call)
	}
	if sheet.Verdict.Confidence <= 0.5 {
		t.Errorf("confidence = %v, want > 0.5", sheet.Verdict.Confidence)
	}
	if report.Points != 300 || report.Dropped != 0 {
		t.Errorf("report points/dropped = %d/%d, want 300/0", report.Points, report.Dropped)
	}
}

func TestAnalyze_DegradedConfidence(t *testing.T) {
	short, _, err := Analyze(Request{Ticker: "T", Candles: candles(risingCloses(60))})
	if err != nil {
		t.Fatalf("short analyze: %v", err)
	}
	long, _, err := Analyze(Request{Ticker: "T", Candles: candles(risingCloses(250))})
	if err != nil {
		t.Fatalf("long analyze: %v", err)
	}

	if short.Indicators.SMA50 == nil || short.Indicators.SMA200 != nil {
		t.Errorf("60-bar indicators = %+v, want sma50 present and sma200 absent", short.Indicators)
	}
	if short.Verdict.Call != model.CallBuy || long.Verdict.Call != model.CallBuy {
		t.Fatalf("calls = %s/%s, want BUY/BUY", short.Verdict.Call, long.Verdict.Call)
	}
	if short.Verdict.Confidence >= long.Verdict.Confidence {
		t.Errorf("degraded confidence %v should be below full %v",
			short.Verdict.Confidence, long.Verdict.Confidence)
	}
}

func TestAnalyze_DegradedList(t *testing.T) {
	_, report, err := Analyze(Request{Ticker: "T", Candles: candles(risingCloses(60))})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	want := []string{"sma_cross", "fundamentals", "sentiment"}
	if len(report.Degraded) != len(want) {
		t.Fatalf("degraded = %v, want %v", report.Degraded, want)
	}
	for i := range want {
		if report.Degraded[i] != want[i] {
			t.Errorf("degraded[%d] = %s, want %s", i, report.Degraded[i], want[i])
		}
	}
}

func TestAnalyze_TwoPointsHold(t *testing.T) {
	sheet, _, err := Analyze(Request{Ticker: "T", Candles: candles([]float64{100, 101})})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if sheet.Indicators.RSI14 != nil || sheet.Indicators.SMA50 != nil || sheet.Indicators.SMA200 != nil {
		t.Errorf("indicators = %+v, want all absent", sheet.Indicators)
	}
	if sheet.Verdict.Call != model.CallHold || sheet.Verdict.Confidence != 0 {
		t.Errorf("verdict = %+v, want HOLD at zero confidence", sheet.Verdict)
	}
	if len(sheet.Verdict.Rationale) != 1 || sheet.Verdict.Rationale[0].Factor != "insufficient_signal" {
		t.Errorf("rationale = %+v, want single insufficient_signal entry", sheet.Verdict.Rationale)
	}
}

func TestAnalyze_InsufficientData(t *testing.T) {
	_, _, err := Analyze(Request{Ticker: "T", Candles: candles([]float64{100})})
	var insufficient *series.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientDataError", err)
	}
	if insufficient.Valid != 1 {
		t.Errorf("valid = %d, want 1", insufficient.Valid)
	}
}

func TestAnalyze_DropsMalformed(t *testing.T) {
	points := candles([]float64{100, 101, 102})
	points[1].Close = 0

	_, report, err := Analyze(Request{Ticker: "T", Candles: points})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Dropped != 1 || report.Points != 2 {
		t.Errorf("dropped/points = %d/%d, want 1/2", report.Dropped, report.Points)
	}
}

func TestAnalyze_EmptyHeadlines(t *testing.T) {
	sheet, _, err := Analyze(Request{
		Ticker:    "T",
		Candles:   candles([]float64{100, 101, 102}),
		Headlines: []string{},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	s := sheet.Sentiment
	if s.Label != model.SentimentNeutral || s.Confidence != 0 || s.SampleSize != 0 {
		t.Errorf("sentiment = %+v, want neutral zero-sample signal", s)
	}
}

func TestAnalyze_SentimentOverride(t *testing.T) {
	sheet, _, err := Analyze(Request{
		Ticker:  "T",
		Candles: candles([]float64{100, 101, 102}),
		SentimentOverride: &SentimentOverride{
			Label:      model.SentimentBearish,
			Confidence: 1.4,
		},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	s := sheet.Sentiment
	if s.Label != model.SentimentBearish {
		t.Errorf("label = %s, want BEARISH", s.Label)
	}
	if s.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", s.Confidence)
	}
	if s.SampleSize != 1 {
		t.Errorf("sample size = %d, want floored to 1", s.SampleSize)
	}
}

func TestAnalyze_IncludeSeries(t *testing.T) {
	req := Request{Ticker: "T", Candles: candles(risingCloses(60))}

	bare, _, err := Analyze(req)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if bare.Indicators.RSI14Series != nil || bare.Indicators.SMA50Series != nil {
		t.Errorf("series should be omitted by default: %+v", bare.Indicators)
	}

	req.IncludeSeries = true
	full, _, err := Analyze(req)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if full.Indicators.RSI14Series == nil || full.Indicators.RSI14Series.Offset != 14 {
		t.Errorf("rsi series = %+v, want offset 14", full.Indicators.RSI14Series)
	}
	if full.Indicators.SMA50Series == nil || full.Indicators.SMA50Series.Offset != 49 {
		t.Errorf("sma50 series = %+v, want offset 49", full.Indicators.SMA50Series)
	}
	if full.Indicators.SMA200Series != nil {
		t.Errorf("sma200 series should stay nil on 60 bars, got %+v", full.Indicators.SMA200Series)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	pe := 12.5
	mcap := 500_000_000_000.0
	req := Request{
		Ticker:  "TEST",
		Candles: candles(flatThenRising()),
		Fundamentals: model.FundamentalProfile{
			PERatio:   &pe,
			MarketCap: &mcap,
		},
		Headlines: []string{"Shares surge on record profits", "Rivals slump"},
	}

	first, _, err := Analyze(req)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	blob, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for i := 0; i < 100; i++ {
		again, _, err := Analyze(req)
		if err != nil {
			t.Fatalf("analyze #%d: %v", i, err)
		}
		b, err := json.Marshal(again)
		if err != nil {
			t.Fatalf("marshal #%d: %v", i, err)
		}
		if !bytes.Equal(blob, b) {
			t.Fatalf("serialization diverged on run %d", i)
		}
	}
}
