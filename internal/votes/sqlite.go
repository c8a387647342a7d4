package votes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/bsdetector/internal/config"
	"github.com/nao1215/bsdetector/internal/model"
)

// SQLiteStore persists votes and analyses in a SQLite database file.
//
// Design decision: Analyses are stored as JSON documents next to a few
// indexed columns. Nothing queries inside an analysis, and the JSON form is
// the same one the JSON report writer prints.
type SQLiteStore struct {
	// db is the underlying SQL database connection.
	db *sql.DB
}

// SQLiteOptions configures SQLiteStore behavior.
type SQLiteOptions struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultSQLiteOptions returns the default database options.
func DefaultSQLiteOptions() SQLiteOptions {
	return SQLiteOptions{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenSQLite opens or creates the vote database in dbDir.
func OpenSQLite(dbDir string, opts SQLiteOptions) (*SQLiteStore, error) {
	dbPath := filepath.Join(dbDir, config.DefaultDBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run with CreateIfNotExists to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *SQLiteStore) createTables() error {
	schema := `
	-- Votes are user feedback on one analysed URL
	CREATE TABLE IF NOT EXISTS votes (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		analysis_url TEXT NOT NULL,
		user_rating INTEGER NOT NULL,
		feedback TEXT NOT NULL DEFAULT '',
		was_accurate INTEGER NOT NULL,
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_votes_url ON votes(analysis_url);

	-- Analyses store complete results as JSON
	CREATE TABLE IF NOT EXISTS analyses (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		verdict TEXT NOT NULL,
		bullshit_rating INTEGER NOT NULL,
		content_digest TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_url ON analyses(url);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveVote inserts a vote.
func (s *SQLiteStore) SaveVote(ctx context.Context, vote *model.Vote) error {
	if vote == nil {
		return ErrNilVote
	}

	query := `
	INSERT INTO votes (id, analysis_url, user_rating, feedback, was_accurate, timestamp)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		vote.ID,
		vote.AnalysisURL,
		vote.UserRating,
		vote.Feedback,
		vote.WasAccurate,
		vote.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// Votes returns every vote in insertion order.
func (s *SQLiteStore) Votes(ctx context.Context) ([]model.Vote, error) {
	return s.queryVotes(ctx, `
	SELECT id, analysis_url, user_rating, feedback, was_accurate, timestamp
	FROM votes
	ORDER BY seq
	`)
}

// VotesForURL returns the votes for one URL in insertion order.
func (s *SQLiteStore) VotesForURL(ctx context.Context, url string) ([]model.Vote, error) {
	return s.queryVotes(ctx, `
	SELECT id, analysis_url, user_rating, feedback, was_accurate, timestamp
	FROM votes
	WHERE analysis_url = ?
	ORDER BY seq
	`, url)
}

func (s *SQLiteStore) queryVotes(ctx context.Context, query string, args ...any) ([]model.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := make([]model.Vote, 0)
	for rows.Next() {
		var v model.Vote
		var timestamp string

		if err := rows.Scan(
			&v.ID,
			&v.AnalysisURL,
			&v.UserRating,
			&v.Feedback,
			&v.WasAccurate,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}

		v.Timestamp = parseTimestamp(timestamp)
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

// SaveAnalysis appends an analysis to its URL's history.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis *model.AnalysisResult) error {
	if analysis == nil {
		return ErrNilAnalysis
	}

	resultJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}

	query := `
	INSERT INTO analyses (url, verdict, bullshit_rating, content_digest, timestamp, result_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		analysis.URL,
		string(analysis.Verdict),
		analysis.BullshitRating,
		analysis.ContentDigest,
		analysis.Timestamp.UTC().Format(time.RFC3339Nano),
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// LatestAnalysis returns the most recently saved analysis of url.
func (s *SQLiteStore) LatestAnalysis(ctx context.Context, url string) (*model.AnalysisResult, error) {
	query := `
	SELECT result_json FROM analyses
	WHERE url = ?
	ORDER BY seq DESC
	LIMIT 1
	`

	var resultJSON string
	err := s.db.QueryRowContext(ctx, query, url).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &result, nil
}

// AnalysisCount returns the number of stored analyses of url.
func (s *SQLiteStore) AnalysisCount(ctx context.Context, url string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses WHERE url = ?`, url).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// timestampFormats are tried in order when reading stored timestamps.
// Rows written by other tools may use SQLite's own datetime format.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a stored timestamp. Unknown formats give the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
