package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const defaultHistoryLimit = 20

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (API reads while the scheduler writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			verdict      TEXT NOT NULL,
			confidence   REAL NOT NULL,
			latest_close REAL NOT NULL,
			points       INTEGER NOT NULL,
			rsi_14       REAL,
			sma_50       REAL,
			sma_200      REAL,
			narrative    TEXT NOT NULL DEFAULT '',
			fact_sheet   TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker_ts ON analyses(ticker, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, ticker, verdict, confidence, latest_close, points,
		 rsi_14, sma_50, sma_200, narrative, fact_sheet)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), snap.Ticker, snap.Verdict, snap.Confidence,
		snap.LatestClose, snap.Points,
		nullable(snap.RSI14), nullable(snap.SMA50), nullable(snap.SMA200),
		snap.Narrative, snap.FactSheet,
	)
	return err
}

// History returns the most recent snapshots for a ticker, newest first.
func (r *SQLiteRecorder) History(ticker string, limit int) ([]AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := r.db.Query(`SELECT
		id, timestamp, ticker, verdict, confidence, latest_close, points,
		rsi_14, sma_50, sma_200, narrative, fact_sheet
		FROM analyses WHERE ticker = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []AnalysisSnapshot
	for rows.Next() {
		var (
			snap               AnalysisSnapshot
			unix               int64
			rsi, sma50, sma200 sql.NullFloat64
		)
		if err := rows.Scan(&snap.ID, &unix, &snap.Ticker, &snap.Verdict,
			&snap.Confidence, &snap.LatestClose, &snap.Points,
			&rsi, &sma50, &sma200, &snap.Narrative, &snap.FactSheet); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		snap.Timestamp = time.Unix(unix, 0).UTC()
		snap.RSI14 = floatPtr(rsi)
		snap.SMA50 = floatPtr(sma50)
		snap.SMA200 = floatPtr(sma200)
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
