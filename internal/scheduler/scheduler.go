package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"StockAgent/internal/collector"
	"StockAgent/internal/engine"
	"StockAgent/internal/model"
	"StockAgent/internal/narrative"
	"StockAgent/internal/news"
	"StockAgent/internal/notifier"
	"StockAgent/internal/recorder"

	"github.com/robfig/cron/v3"
)

const defaultScanTimeout = 5 * time.Minute

// Options bundles the collaborators a Scheduler needs. Generator and
// Notifier may be nil; the scan then skips the steps that need them.
type Options struct {
	Fetcher     collector.Fetcher
	News        news.Provider
	Generator   narrative.Generator
	Notifier    *notifier.TelegramNotifier
	Recorder    recorder.Recorder
	Watchlist   []string
	HistoryDays int
	NewsLimit   int
}

// Scheduler runs periodic watchlist scans and serves bot commands.
type Scheduler struct {
	Cron        *cron.Cron
	Fetcher     collector.Fetcher
	News        news.Provider
	Generator   narrative.Generator
	Notifier    *notifier.TelegramNotifier
	Recorder    recorder.Recorder
	Watchlist   []string
	HistoryDays int
	NewsLimit   int
	ScanTimeout time.Duration
	Ctx         context.Context
}

// NewScheduler creates a Scheduler with a seconds-resolution cron.
func NewScheduler(ctx context.Context, opts Options) *Scheduler {
	rec := opts.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Fetcher:     opts.Fetcher,
		News:        opts.News,
		Generator:   opts.Generator,
		Notifier:    opts.Notifier,
		Recorder:    rec,
		Watchlist:   opts.Watchlist,
		HistoryDays: opts.HistoryDays,
		NewsLimit:   opts.NewsLimit,
		ScanTimeout: defaultScanTimeout,
		Ctx:         ctx,
	}
}

// Register registers the watchlist scan at the given cron spec.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanWatchlist); err != nil {
		return fmt.Errorf("register watchlist scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the watchlist scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanWatchlist()
}

func (s *Scheduler) scanWatchlist() {
	if len(s.Watchlist) == 0 {
		log.Println("[WARN] watchlist scan skipped: no tickers configured")
		return
	}
	log.Printf("[INFO] scanning watchlist: %s", strings.Join(s.Watchlist, ", "))
	for _, ticker := range s.Watchlist {
		s.scanOne(ticker)
	}
}

func (s *Scheduler) scanOne(ticker string) {
	ctx, cancel := context.WithTimeout(s.Ctx, s.ScanTimeout)
	defer cancel()

	sheet, report, _, err := s.analyzeTicker(ctx, ticker)
	if err != nil {
		log.Printf("[ERROR] scan %s: %v", ticker, err)
		return
	}

	s.record(ticker, sheet, report)

	// Only actionable calls are pushed; HOLD is recorded silently.
	if sheet.Verdict.Call != model.CallHold {
		s.trySend(notifier.FormatFactSheet(report, sheet))
	}
}

// analyzeTicker gathers bars, fundamentals, and headlines, then runs the
// engine. Only missing price data fails the call.
func (s *Scheduler) analyzeTicker(ctx context.Context, ticker string) (*model.FactSheet, *engine.Report, []news.Headline, error) {
	bars, err := s.Fetcher.FetchDailyBars(ctx, ticker, s.HistoryDays)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch bars for %s: %w", ticker, err)
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
		Ticker:       ticker,
		Candles:      bars,
		Fundamentals: profile,
		Headlines:    news.Titles(headlines),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return sheet, report, headlines, nil
}

func (s *Scheduler) record(ticker string, sheet *model.FactSheet, report *engine.Report) {
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
		FactSheet:   string(blob),
	}
	if err := s.Recorder.RecordAnalysis(snap); err != nil {
		log.Printf("[ERROR] record analysis for %s: %v", ticker, err)
	}
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze TICKER"
		}
		ticker := strings.ToUpper(fields[1])

		ctx, cancel := context.WithTimeout(s.Ctx, s.ScanTimeout)
		defer cancel()
		sheet, report, _, err := s.analyzeTicker(ctx, ticker)
		if err != nil {
			return fmt.Sprintf("❌ analyze %s failed: %v", ticker, err)
		}
		s.record(ticker, sheet, report)
		return notifier.FormatFactSheet(report, sheet)

	case "/sentiment":
		if len(fields) < 2 {
			return "Usage: /sentiment TICKER"
		}
		ticker := strings.ToUpper(fields[1])

		ctx, cancel := context.WithTimeout(s.Ctx, s.ScanTimeout)
		defer cancel()
		var headlines []news.Headline
		if s.News != nil {
			var err error
			headlines, err = s.News.Headlines(ctx, ticker, s.NewsLimit)
			if err != nil {
				return fmt.Sprintf("❌ fetch headlines for %s failed: %v", ticker, err)
			}
		}
		res := narrative.QuickSentiment(ctx, s.Generator, ticker, headlines)
		return notifier.FormatQuickSentiment(ticker, res.Label, res.Confidence, res.Source)

	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist)

	case "/scan":
		s.scanWatchlist()
		return "✅ Watchlist scan complete."

	default:
		return "Available commands:\n• /analyze TICKER\n• /sentiment TICKER\n• /watchlist\n• /scan"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
