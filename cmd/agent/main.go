package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockAgent/internal/collector"
	"StockAgent/internal/config"
	"StockAgent/internal/narrative"
	"StockAgent/internal/news"
	"StockAgent/internal/notifier"
	"StockAgent/internal/recorder"
	"StockAgent/internal/scheduler"
	"StockAgent/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockAgent starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{}
	case "rest":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init news provider
	provider := news.NewGoogleNewsProvider(cfg.Proxy)

	// Init LLM generator
	var gen narrative.Generator
	switch cfg.LLM.Provider {
	case "none":
		log.Println("[INFO] LLM narrative disabled")
	case "openai":
		oc, err := narrative.NewOpenAIClient(cfg.LLM.OpenAIKey, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
		if err != nil {
			log.Fatalf("[FATAL] init openai client: %v", err)
		}
		gen = oc
	default:
		gen = narrative.NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model,
			time.Duration(cfg.LLM.TimeoutSeconds)*time.Second, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	}
	if gen != nil {
		log.Printf("[INFO] LLM generator: %s", gen.Name())
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram is optional
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, scheduler.Options{
		Fetcher:     fetcher,
		News:        provider,
		Generator:   gen,
		Notifier:    tn,
		Recorder:    rec,
		Watchlist:   cfg.Watchlist.Tickers,
		HistoryDays: cfg.Analysis.HistoryDays,
		NewsLimit:   cfg.News.Limit,
	})
	if len(cfg.Watchlist.Tickers) > 0 {
		if err := sched.Register(cfg.Watchlist.ScanCron); err != nil {
			log.Fatalf("[FATAL] register watchlist scan: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Println("[INFO] watchlist empty, scheduled scans disabled")
	}

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: scan immediately on start
	if cfg.Watchlist.RunOnStart {
		log.Println("[INFO] run_on_start enabled, scanning watchlist now")
		go sched.RunScanNow()
	}

	// HTTP API
	srv := &server.Server{
		Fetcher:     fetcher,
		News:        provider,
		Generator:   gen,
		Recorder:    rec,
		HistoryDays: cfg.Analysis.HistoryDays,
		NewsLimit:   cfg.News.Limit,
		CORSOrigins: cfg.CORSOriginList(),
	}
	go func() {
		if err := srv.Start(cfg.Server.Port); err != nil {
			log.Fatalf("[FATAL] HTTP server: %v", err)
		}
	}()

	log.Println("[INFO] StockAgent is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockAgent stopped")
}
