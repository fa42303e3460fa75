package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// DBFileName is the name of the history database inside its directory.
const DBFileName = "reportindex.db"

// HistoryDB provides SQLite-based storage for generation history.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per generated index
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		generated_at TEXT NOT NULL,
		output TEXT NOT NULL,
		format TEXT NOT NULL,
		report_count INTEGER NOT NULL DEFAULT 0,
		latest TEXT,
		reports TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_generations_generated_at ON generations(generated_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// GenerationRecord represents one stored generation.
type GenerationRecord struct {
	// ID is the row id assigned by the database.
	ID int64 `json:"id"`

	// RunID identifies the run. SaveGeneration assigns a random UUID when empty.
	RunID string `json:"run_id"`

	// GeneratedAt is when the index was written.
	GeneratedAt time.Time `json:"generated_at"`

	// Output is the path the index was written to.
	Output string `json:"output"`

	// Format is the output format name.
	Format string `json:"format"`

	// ReportCount is the number of reports the index linked.
	ReportCount int `json:"report_count"`

	// Latest is the name of the report marked latest, empty for an empty index.
	Latest string `json:"latest,omitempty"`

	// Reports are the linked report names in index order.
	Reports []string `json:"reports,omitempty"`
}

// timeLayout stores instants in UTC with a fixed width so that the text
// column sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveGeneration inserts a generation record.
// Missing RunID and GeneratedAt are filled in, and the assigned ID is
// written back to rec.
func (hdb *HistoryDB) SaveGeneration(ctx context.Context, rec *GenerationRecord) error {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now()
	}

	reportsJSON, err := json.Marshal(rec.Reports)
	if err != nil {
		return fmt.Errorf("failed to serialize reports: %w", err)
	}

	query := `
	INSERT INTO generations (run_id, generated_at, output, format, report_count, latest, reports)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		rec.RunID,
		rec.GeneratedAt.UTC().Format(timeLayout),
		rec.Output,
		rec.Format,
		rec.ReportCount,
		rec.Latest,
		string(reportsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get generation id: %w", err)
	}
	rec.ID = id

	return nil
}

// ListGenerations returns stored generations, newest first.
// A limit of zero or less returns every generation.
func (hdb *HistoryDB) ListGenerations(ctx context.Context, limit int) ([]GenerationRecord, error) {
	query := `
	SELECT id, run_id, generated_at, output, format, report_count, latest, reports
	FROM generations
	ORDER BY generated_at DESC, id DESC
	LIMIT ?
	`
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var results []GenerationRecord
	for rows.Next() {
		rec, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}

	return results, rows.Err()
}

// LatestGeneration returns the most recent generation, or nil if none was recorded.
func (hdb *HistoryDB) LatestGeneration(ctx context.Context) (*GenerationRecord, error) {
	query := `
	SELECT id, run_id, generated_at, output, format, report_count, latest, reports
	FROM generations
	ORDER BY generated_at DESC, id DESC
	LIMIT 1
	`

	rec, err := scanGeneration(hdb.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanGeneration reads one generations row.
func scanGeneration(row rowScanner) (*GenerationRecord, error) {
	var (
		rec         GenerationRecord
		generatedAt string
		latest      sql.NullString
		reportsJSON sql.NullString
	)

	err := row.Scan(
		&rec.ID,
		&rec.RunID,
		&generatedAt,
		&rec.Output,
		&rec.Format,
		&rec.ReportCount,
		&latest,
		&reportsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read generation: %w", err)
	}

	rec.GeneratedAt = parseTimestamp(generatedAt)
	rec.Latest = latest.String

	if reportsJSON.Valid && reportsJSON.String != "" && reportsJSON.String != "null" {
		if err := json.Unmarshal([]byte(reportsJSON.String), &rec.Reports); err != nil {
			return nil, fmt.Errorf("failed to parse reports: %w", err)
		}
	}

	return &rec, nil
}

// timestampFormats lists the layouts a stored timestamp may use.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05",     // SQLite CURRENT_TIMESTAMP
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
