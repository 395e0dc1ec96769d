package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"StockAgent/internal/calculator"
	"StockAgent/internal/collector"
	"StockAgent/internal/engine"
	"StockAgent/internal/model"
	"StockAgent/internal/narrative"
	"StockAgent/internal/news"
	"StockAgent/internal/recorder"
	"StockAgent/internal/series"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Ticker        string `json:"ticker"`
	Days          int    `json:"days"`
	IncludeSeries bool   `json:"include_series"`
	SkipNarrative bool   `json:"skip_narrative"`
}

type summaryJSON struct {
	LatestClose  float64 `json:"latest_close"`
	PeriodChange float64 `json:"period_change"`
	AverageClose float64 `json:"average_close"`
	WindowHigh   float64 `json:"window_high"`
	WindowLow    float64 `json:"window_low"`
	Days         int     `json:"days"`
}

type analyzeResponse struct {
	Ticker    string           `json:"ticker"`
	Source    string           `json:"source"`
	Points    int              `json:"points"`
	Dropped   int              `json:"dropped"`
	Degraded  []string         `json:"degraded"`
	Summary   summaryJSON      `json:"summary"`
	FactSheet *model.FactSheet `json:"fact_sheet"`
	Headlines []string         `json:"headlines,omitempty"`
	Narrative string           `json:"narrative,omitempty"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJSON(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	ticker, err := cleanTicker(req.Ticker)
	if err != nil {
		returnErrorJSON(err, c, 400)
		return
	}
	days := req.Days
	if days <= 0 {
		days = s.HistoryDays
	}

	ctx := c.Request.Context()
	bars, err := s.Fetcher.FetchDailyBars(ctx, ticker, days)
	if err != nil {
		code := 502
		if errors.Is(err, collector.ErrNotFound) {
			code = 404
		}
		returnErrorJSON(fmt.Errorf("fetch bars for %s: %w", ticker, err), c, code)
		return
	}

	profile, err := s.Fetcher.FetchFundamentals(ctx, ticker)
	if err != nil {
		log.Printf("[WARN] fundamentals unavailable for %s: %v", ticker, err)
		profile = model.FundamentalProfile{}
	}

	var headlines []news.Headline
	if s.News != nil {
		headlines, err = s.News.Headlines(ctx, ticker, s.NewsLimit)
		if err != nil {
			log.Printf("[WARN] headlines unavailable for %s: %v", ticker, err)
			headlines = nil
		}
	}

	sheet, report, err := engine.Analyze(engine.Request{
		Ticker:        ticker,
		Candles:       bars,
		Fundamentals:  profile,
		Headlines:     news.Titles(headlines),
		IncludeSeries: req.IncludeSeries,
	})
	if err != nil {
		returnErrorJSON(err, c, analysisErrorCode(err))
		return
	}

	var story string
	if s.Generator != nil && !req.SkipNarrative {
		story, err = s.Generator.Generate(ctx, narrative.BuildPrompt(report, sheet, profile, headlines))
		if err != nil {
			log.Printf("[WARN] narrative generation failed for %s: %v", ticker, err)
			story = ""
		}
	}

	s.recordAnalysis(ticker, sheet, report, story)

	c.JSON(200, analyzeResponse{
		Ticker:    ticker,
		Source:    s.Fetcher.Name(),
		Points:    report.Points,
		Dropped:   report.Dropped,
		Degraded:  report.Degraded,
		Summary:   summaryOf(report.Summary),
		FactSheet: sheet,
		Headlines: news.Titles(headlines),
		Narrative: story,
	})
}

type rawCandle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type rawSentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type analyzeRawRequest struct {
	Ticker        string        `json:"ticker"`
	Candles       []rawCandle   `json:"candles"`
	PERatio       *float64      `json:"pe_ratio"`
	MarketCap     *float64      `json:"market_cap"`
	ProfitMargin  *float64      `json:"profit_margin"`
	Headlines     []string      `json:"headlines"`
	Sentiment     *rawSentiment `json:"sentiment"`
	IncludeSeries bool          `json:"include_series"`
}

// analyzeRaw runs the engine on caller-supplied candles. No provider is
// touched, so identical payloads always produce identical responses.
func (s *Server) analyzeRaw(c *gin.Context) {
	var req analyzeRawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJSON(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	ticker, err := cleanTicker(req.Ticker)
	if err != nil {
		returnErrorJSON(err, c, 400)
		return
	}

	candles, err := parseCandles(req.Candles)
	if err != nil {
		returnErrorJSON(err, c, 400)
		return
	}

	var override *engine.SentimentOverride
	if req.Sentiment != nil {
		label, err := parseSentimentLabel(req.Sentiment.Label)
		if err != nil {
			returnErrorJSON(err, c, 400)
			return
		}
		override = &engine.SentimentOverride{Label: label, Confidence: req.Sentiment.Confidence}
	}

	sheet, report, err := engine.Analyze(engine.Request{
		Ticker: ticker,
		Candles: candles,
		Fundamentals: model.FundamentalProfile{
			PERatio:      req.PERatio,
			MarketCap:    req.MarketCap,
			ProfitMargin: req.ProfitMargin,
		},
		Headlines:         req.Headlines,
		SentimentOverride: override,
		IncludeSeries:     req.IncludeSeries,
	})
	if err != nil {
		returnErrorJSON(err, c, analysisErrorCode(err))
		return
	}

	c.JSON(200, analyzeResponse{
		Ticker:    ticker,
		Source:    "raw",
		Points:    report.Points,
		Dropped:   report.Dropped,
		Degraded:  report.Degraded,
		Summary:   summaryOf(report.Summary),
		FactSheet: sheet,
	})
}

func parseCandles(raw []rawCandle) ([]model.PricePoint, error) {
	if len(raw) == 0 {
		return nil, errors.New("candles are required")
	}
	out := make([]model.PricePoint, 0, len(raw))
	for i, rc := range raw {
		ts, err := parseDate(rc.Date)
		if err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
		out = append(out, model.PricePoint{
			Time:   ts,
			Open:   rc.Open,
			High:   rc.High,
			Low:    rc.Low,
			Close:  rc.Close,
			Volume: rc.Volume,
		})
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q, want YYYY-MM-DD or RFC3339", s)
}

func parseSentimentLabel(s string) (model.SentimentLabel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(model.SentimentBullish):
		return model.SentimentBullish, nil
	case string(model.SentimentBearish):
		return model.SentimentBearish, nil
	case string(model.SentimentNeutral):
		return model.SentimentNeutral, nil
	}
	return "", fmt.Errorf("invalid sentiment label %q", s)
}

// analysisErrorCode maps engine failures: a series too short or fully
// malformed is the caller's data problem, anything else is ours.
func analysisErrorCode(err error) int {
	var insufficient *series.InsufficientDataError
	if errors.As(err, &insufficient) {
		return 422
	}
	return 500
}

func summaryOf(sum calculator.PriceSummary) summaryJSON {
	return summaryJSON{
		LatestClose:  sum.LatestClose,
		PeriodChange: sum.PeriodChange,
		AverageClose: sum.AverageClose,
		WindowHigh:   sum.WindowHigh,
		WindowLow:    sum.WindowLow,
		Days:         sum.Days,
	}
}

func (s *Server) recordAnalysis(ticker string, sheet *model.FactSheet, report *engine.Report, story string) {
	blob, err := json.Marshal(sheet)
	if err != nil {
		log.Printf("[ERROR] marshal fact sheet for %s: %v", ticker, err)
		blob = nil
	}
	snap := &recorder.AnalysisSnapshot{
		Ticker:      ticker,
		Verdict:     string(sheet.Verdict.Call),
		Confidence:  sheet.Verdict.Confidence,
		LatestClose: report.Summary.LatestClose,
		Points:      report.Points,
		RSI14:       sheet.Indicators.RSI14,
		SMA50:       sheet.Indicators.SMA50,
		SMA200:      sheet.Indicators.SMA200,
		Narrative:   story,
		FactSheet:   string(blob),
	}
	if err := s.rec().RecordAnalysis(snap); err != nil {
		log.Printf("[ERROR] record analysis for %s: %v", ticker, err)
	}
}
