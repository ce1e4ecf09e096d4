// Package persistence keeps a SQLite ledger next to the save files: inbox
// messages, money transactions, daily park reports and the save-slot index.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-park/internal/engine"
)

// ErrNoSaves is returned when the ledger has no save recorded.
var ErrNoSaves = errors.New("no saves recorded")

// DB wraps a SQLite connection for the park ledger.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		amount INTEGER NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS days (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		guests INTEGER NOT NULL,
		in_park INTEGER NOT NULL,
		staff INTEGER NOT NULL,
		broken_rides INTEGER NOT NULL,
		requests INTEGER NOT NULL,
		cash INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		scenario TEXT NOT NULL,
		date TEXT NOT NULL,
		guests INTEGER NOT NULL,
		staff INTEGER NOT NULL,
		cash INTEGER NOT NULL,
		bytes INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS park_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_kind ON messages(kind);
	CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
	CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// MessageRow is an inbox message as stored in the ledger.
type MessageRow struct {
	ID    int64  `db:"id"`
	Kind  string `db:"kind"`
	Day   uint8  `db:"day"`
	Month uint8  `db:"month"`
	Year  uint16 `db:"year"`
}

// TransactionRow is a booked transaction as stored in the ledger.
type TransactionRow struct {
	ID       int64  `db:"id"`
	Category string `db:"category"`
	Amount   int64  `db:"amount"`
	Day      uint8  `db:"day"`
	Month    uint8  `db:"month"`
	Year     uint16 `db:"year"`
}

// SaveRow is one entry of the save-slot index.
type SaveRow struct {
	ID        string `db:"id"`
	Path      string `db:"path"`
	Scenario  string `db:"scenario"`
	Date      string `db:"date"`
	Guests    int    `db:"guests"`
	Staff     int    `db:"staff"`
	Cash      int64  `db:"cash"`
	Bytes     int64  `db:"bytes"`
	CreatedAt int64  `db:"created_at"`
}

// batch is everything written by one ledger flush.
type batch struct {
	messages     []MessageRow
	transactions []TransactionRow
	days         []engine.Stats
}

func (b *batch) empty() bool {
	return len(b.messages) == 0 && len(b.transactions) == 0 && len(b.days) == 0
}

// write appends a batch in a single transaction.
func (db *DB) write(b *batch) error {
	if b.empty() {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	msgStmt, err := tx.Preparex("INSERT INTO messages (kind, day, month, year) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer msgStmt.Close()
	for _, m := range b.messages {
		if _, err := msgStmt.Exec(m.Kind, m.Day, m.Month, m.Year); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	txStmt, err := tx.Preparex("INSERT INTO transactions (category, amount, day, month, year) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer txStmt.Close()
	for _, t := range b.transactions {
		if _, err := txStmt.Exec(t.Category, t.Amount, t.Day, t.Month, t.Year); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	for _, d := range b.days {
		_, err := tx.Exec(`INSERT INTO days
			(date, guests, in_park, staff, broken_rides, requests, cash)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.Date, d.Guests, d.GuestsInPark, d.Staff, d.BrokenRides, d.Requests, d.Cash,
		)
		if err != nil {
			return fmt.Errorf("insert day %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

// RecordSave adds a save file to the save-slot index and returns its id.
func (db *DB) RecordSave(path, scenario string, bytes int64, st engine.Stats) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(`INSERT INTO saves
		(id, path, scenario, date, guests, staff, cash, bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, path, scenario, st.Date, st.Guests, st.Staff, st.Cash, bytes, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("record save: %w", err)
	}
	slog.Debug("save recorded", "id", id, "path", path)
	return id, nil
}

// Saves returns the save-slot index, newest first.
func (db *DB) Saves() ([]SaveRow, error) {
	var rows []SaveRow
	err := db.conn.Select(&rows, "SELECT * FROM saves ORDER BY created_at DESC, rowid DESC")
	return rows, err
}

// LatestSave returns the newest save, ErrNoSaves if there is none.
func (db *DB) LatestSave() (SaveRow, error) {
	var row SaveRow
	err := db.conn.Get(&row, "SELECT * FROM saves ORDER BY created_at DESC, rowid DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return row, ErrNoSaves
	}
	return row, err
}

// SaveMeta stores a key-value pair in the park metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO park_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM park_meta WHERE key = ?", key)
	return value, err
}

// RecentMessages returns the most recent N messages.
func (db *DB) RecentMessages(limit int) ([]MessageRow, error) {
	var rows []MessageRow
	err := db.conn.Select(&rows,
		"SELECT id, kind, day, month, year FROM messages ORDER BY id DESC LIMIT ?",
		limit,
	)
	return rows, err
}

// Transactions returns every transaction of a category, oldest first.
func (db *DB) Transactions(category string) ([]TransactionRow, error) {
	var rows []TransactionRow
	err := db.conn.Select(&rows,
		"SELECT id, category, amount, day, month, year FROM transactions WHERE category = ? ORDER BY id",
		category,
	)
	return rows, err
}

// Days returns the daily reports, oldest first.
func (db *DB) Days() ([]engine.Stats, error) {
	var rows []struct {
		Date        string `db:"date"`
		Guests      int    `db:"guests"`
		InPark      int    `db:"in_park"`
		Staff       int    `db:"staff"`
		BrokenRides int    `db:"broken_rides"`
		Requests    int    `db:"requests"`
		Cash        int64  `db:"cash"`
	}
	err := db.conn.Select(&rows, "SELECT date, guests, in_park, staff, broken_rides, requests, cash FROM days ORDER BY id")
	if err != nil {
		return nil, err
	}
	out := make([]engine.Stats, len(rows))
	for i, r := range rows {
		out[i] = engine.Stats{
			Date:         r.Date,
			Guests:       r.Guests,
			GuestsInPark: r.InPark,
			Staff:        r.Staff,
			BrokenRides:  r.BrokenRides,
			Requests:     r.Requests,
			Cash:         r.Cash,
		}
	}
	return out, nil
}
