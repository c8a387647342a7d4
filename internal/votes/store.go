package votes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/bsdetector/internal/config"
	"github.com/nao1215/bsdetector/internal/model"
)

// Store persists votes and analyses.
//
// Votes and analyses are append-only. Reads return records in the order
// they were saved.
type Store interface {
	// SaveVote appends a vote. The vote is stored as given.
	SaveVote(ctx context.Context, vote *model.Vote) error

	// Votes returns every vote.
	Votes(ctx context.Context) ([]model.Vote, error)

	// VotesForURL returns the votes whose AnalysisURL equals url exactly.
	VotesForURL(ctx context.Context, url string) ([]model.Vote, error)

	// SaveAnalysis appends an analysis to the history of its URL.
	SaveAnalysis(ctx context.Context, analysis *model.AnalysisResult) error

	// LatestAnalysis returns the most recently saved analysis of url, or
	// nil when there is none.
	LatestAnalysis(ctx context.Context, url string) (*model.AnalysisResult, error)

	// AnalysisCount returns the number of stored analyses of url.
	AnalysisCount(ctx context.Context, url string) (int, error)

	// Close releases the store's resources.
	Close() error
}

// OpenStore opens the store selected by the configuration.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		logger.Debug("opening vote database", "path", cfg.DBPath())
		return OpenSQLite(cfg.DBDir, DefaultSQLiteOptions())
	case config.StoreRedis:
		logger.Debug("connecting to vote store", "redis_addr", cfg.RedisAddr, "redis_db", cfg.RedisDB)
		return OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}
