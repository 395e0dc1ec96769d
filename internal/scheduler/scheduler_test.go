package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockAgent/internal/collector"
	"StockAgent/internal/model"
	"StockAgent/internal/news"
	"StockAgent/internal/recorder"

	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	snaps []*recorder.AnalysisSnapshot
}

func (c *captureRecorder) RecordAnalysis(s *recorder.AnalysisSnapshot) error {
	c.snaps = append(c.snaps, s)
	return nil
}

func (c *captureRecorder) History(string, int) ([]recorder.AnalysisSnapshot, error) {
	return nil, nil
}

func (c *captureRecorder) Close() error { return nil }

func risingBars(n int) []model.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PricePoint, n)
	for i := range bars {
		bars[i] = model.PricePoint{
			Time:   base.AddDate(0, 0, i),
			Close:  100 + float64(i)*0.5,
			Volume: 1000,
		}
	}
	return bars
}

func newTestScheduler(rec recorder.Recorder) *Scheduler {
	pe := 12.0
	return NewScheduler(context.Background(), Options{
		Fetcher: &collector.MockFetcher{
			Bars:    risingBars(260),
			Profile: model.FundamentalProfile{PERatio: &pe},
		},
		News: &news.StaticProvider{Items: []news.Headline{
			{Title: "Shares surge after record quarter"},
			{Title: "Analysts upgrade on strong growth"},
		}},
		Recorder:    rec,
		Watchlist:   []string{"AAPL", "MSFT"},
		HistoryDays: 300,
		NewsLimit:   5,
	})
}

func TestHandleCommand_Analyze(t *testing.T) {
	rec := &captureRecorder{}
	s := newTestScheduler(rec)

	reply := s.HandleCommand("/analyze nvda")
	require.Contains(t, reply, "<b>NVDA Analysis</b>")
	require.Contains(t, reply, "Verdict:")

	require.Len(t, rec.snaps, 1)
	require.Equal(t, "NVDA", rec.snaps[0].Ticker)
	require.Equal(t, 260, rec.snaps[0].Points)
	require.NotEmpty(t, rec.snaps[0].FactSheet)
	require.NotNil(t, rec.snaps[0].RSI14)
}

func TestHandleCommand_AnalyzeUsage(t *testing.T) {
	s := newTestScheduler(&captureRecorder{})
	require.Equal(t, "Usage: /analyze TICKER", s.HandleCommand("/analyze"))
}

func TestHandleCommand_AnalyzeFetchError(t *testing.T) {
	s := newTestScheduler(&captureRecorder{})
	s.Fetcher = &collector.MockFetcher{Err: errors.New("upstream down")}

	reply := s.HandleCommand("/analyze AAPL")
	require.Contains(t, reply, "❌ analyze AAPL failed")
	require.Contains(t, reply, "upstream down")
}

func TestHandleCommand_Sentiment(t *testing.T) {
	s := newTestScheduler(&captureRecorder{})
	s.News = &news.StaticProvider{Items: []news.Headline{
		{Title: "Shares plunge on lawsuit"},
		{Title: "Analysts downgrade after weak guidance"},
	}}

	reply := s.HandleCommand("/sentiment aapl")
	require.Contains(t, reply, "<b>AAPL sentiment:</b>")
	require.Contains(t, reply, "BEARISH")
	require.Contains(t, reply, "via lexicon")
}

func TestHandleCommand_Watchlist(t *testing.T) {
	s := newTestScheduler(&captureRecorder{})
	reply := s.HandleCommand("/watchlist")
	require.Contains(t, reply, "• AAPL")
	require.Contains(t, reply, "• MSFT")
}

func TestHandleCommand_Unknown(t *testing.T) {
	s := newTestScheduler(&captureRecorder{})
	reply := s.HandleCommand("/bogus")
	require.Contains(t, reply, "Available commands:")
	require.Contains(t, reply, "/analyze TICKER")
}

func TestRunScanNow(t *testing.T) {
	rec := &captureRecorder{}
	s := newTestScheduler(rec)

	s.RunScanNow()

	require.Len(t, rec.snaps, 2)
	require.Equal(t, "AAPL", rec.snaps[0].Ticker)
	require.Equal(t, "MSFT", rec.snaps[1].Ticker)
	for _, snap := range rec.snaps {
		require.NotEmpty(t, snap.Verdict)
		require.Equal(t, 260, snap.Points)
	}
}

func TestRunScanNow_EmptyWatchlist(t *testing.T) {
	rec := &captureRecorder{}
	s := newTestScheduler(rec)
	s.Watchlist = nil

	s.RunScanNow()
	require.Empty(t, rec.snaps)
}

func TestRegister_BadSpec(t *testing.T) {
	s := newTestScheduler(&captureRecorder{})
	require.Error(t, s.Register("not a cron spec"))
	require.NoError(t, s.Register("0 0 18 * * 1-5"))
}
