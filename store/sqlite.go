package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/etnz/supplycurve"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists resampled supply curves to a SQLite database.
//
// A coin and frequency has a single row per bucket: recording again replaces
// the previous values, keeping the time of the last export.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS resampled_supply (
			coin                   TEXT NOT NULL,
			freq                   TEXT NOT NULL,
			bucket                 TEXT NOT NULL,
			date                   INTEGER NOT NULL,
			block                  INTEGER,
			total_supply           TEXT NOT NULL,
			total_supply_pct       REAL NOT NULL,
			distributed_supply     TEXT,
			distributed_supply_pct REAL,
			exported_at            INTEGER NOT NULL,
			PRIMARY KEY (coin, freq, bucket)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resampled_coin ON resampled_supply(coin, freq)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordResampled stores all rows of res in a single transaction.
func (r *SQLiteRecorder) RecordResampled(res *supplycurve.Resampled) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO resampled_supply
		(coin, freq, bucket, date, block, total_supply, total_supply_pct,
		 distributed_supply, distributed_supply_pct, exported_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := r.now().Unix()
	constant := res.Variant() == supplycurve.ConstantCurve
	for _, row := range res.Rows() {
		var block, distributed, distributedPct any
		if constant {
			distributed, distributedPct = row.Distributed.String(), float64(row.DistributedPct)
		} else {
			block = row.Block
		}
		if _, err := stmt.Exec(res.Coin, res.Period.String(), row.Bucket.Identifier(), row.Date.Unix(),
			block, row.Total.String(), float64(row.TotalPct),
			distributed, distributedPct, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("record %s %s %s: %w", res.Coin, res.Period, row.Bucket.Identifier(), err)
		}
	}
	return tx.Commit()
}

// Bucket is a recorded row, as read back by History.
type Bucket struct {
	Bucket   string // e.g. "2020-W02", "2020-01" or "2020"
	Total    string
	TotalPct float64
}

// History returns the recorded buckets of a coin at a given frequency
// (weekly, monthly or yearly), in chronological order.
func (r *SQLiteRecorder) History(coin, freq string) ([]Bucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT bucket, total_supply, total_supply_pct FROM resampled_supply
		WHERE coin = ? AND freq = ? ORDER BY date`, coin, freq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Bucket
	for rows.Next() {
		var b Bucket
		if err := rows.Scan(&b.Bucket, &b.Total, &b.TotalPct); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("closing sqlite recorder")
	return r.db.Close()
}
