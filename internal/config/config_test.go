package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "yahoo", cfg.DataSource.Provider)
	require.Equal(t, 5, cfg.News.Limit)
	require.Equal(t, "ollama", cfg.LLM.Provider)
	require.Equal(t, 300, cfg.Analysis.HistoryDays)
	require.Equal(t, "0 30 16 * * 1-5", cfg.Watchlist.ScanCron)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9100
  cors_origins: "https://a.example, https://b.example"
data_source:
  provider: rest
  base_url: https://data.internal
  api_key: sekrit
llm:
  provider: none
analysis:
  history_days: 120
watchlist:
  tickers: [" aapl ", "msft", ""]
  run_on_start: true
database:
  sqlite_path: /tmp/agent.db
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOriginList())
	require.Equal(t, "rest", cfg.DataSource.Provider)
	require.Equal(t, "sekrit", cfg.DataSource.APIKey)
	require.Equal(t, "none", cfg.LLM.Provider)
	require.Equal(t, 120, cfg.Analysis.HistoryDays)
	require.Equal(t, []string{"AAPL", "MSFT"}, cfg.Watchlist.Tickers)
	require.True(t, cfg.Watchlist.RunOnStart)
	require.Equal(t, "/tmp/agent.db", cfg.Database.SQLitePath)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9200")
	t.Setenv("MOCK_DATA", "true")
	t.Setenv("WATCHLIST", "nvda, amd")
	t.Setenv("WATCHLIST_CRON", "0 0 9 * * *")
	t.Setenv("LLM_TIMEOUT", "60")
	t.Setenv("HISTORY_DAYS", "90")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, 9200, cfg.Server.Port)
	require.Equal(t, "mock", cfg.DataSource.Provider)
	require.Equal(t, []string{"NVDA", "AMD"}, cfg.Watchlist.Tickers)
	require.Equal(t, "0 0 9 * * *", cfg.Watchlist.ScanCron)
	require.Equal(t, 60, cfg.LLM.TimeoutSeconds)
	require.Equal(t, 90, cfg.Analysis.HistoryDays)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad data provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "unknown data_source.provider"},
		{"rest without base url", func(c *Config) { c.DataSource.Provider = "rest" }, "base_url is required"},
		{"bad llm provider", func(c *Config) { c.LLM.Provider = "claude" }, "unknown llm.provider"},
		{"openai without key", func(c *Config) { c.LLM.Provider = "openai" }, "openai_api_key is required"},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "tok" }, "must be set together"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "out of range"},
		{"negative history", func(c *Config) { c.Analysis.HistoryDays = -1 }, "must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
