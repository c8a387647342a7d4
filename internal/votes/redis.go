package votes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nao1215/bsdetector/internal/model"
)

// Redis keys.
const (
	// VotesKey is the list holding every vote as a JSON record.
	VotesKey = "bullshit_detector_votes"

	// AnalysesKeyPrefix prefixes the per-URL analysis history lists.
	AnalysesKeyPrefix = "bullshit_detector_analyses:"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// Addr is the "host:port" of the Redis server.
	Addr string

	// Password authenticates against the server. Empty means none.
	Password string

	// DB selects the logical database.
	DB int
}

// RedisStore appends votes and analyses to Redis lists.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to Redis and checks the connection.
func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// analysesKey returns the history list key of a URL.
func analysesKey(url string) string {
	return AnalysesKeyPrefix + url
}

// SaveVote appends a vote with RPUSH, which is atomic on the server.
func (s *RedisStore) SaveVote(ctx context.Context, vote *model.Vote) error {
	if vote == nil {
		return ErrNilVote
	}
	data, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("failed to serialize vote: %w", err)
	}
	if err := s.client.RPush(ctx, VotesKey, data).Err(); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

// Votes returns every vote. Records that are not valid JSON are skipped.
func (s *RedisStore) Votes(ctx context.Context) ([]model.Vote, error) {
	records, err := s.client.LRange(ctx, VotesKey, 0, -1).Result()
	if errors.Is(err, redis.Nil) {
		return []model.Vote{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	votes := make([]model.Vote, 0, len(records))
	for _, record := range records {
		var v model.Vote
		if err := json.Unmarshal([]byte(record), &v); err != nil {
			continue // Skip malformed records
		}
		votes = append(votes, v)
	}
	return votes, nil
}

// VotesForURL returns the votes for one URL.
func (s *RedisStore) VotesForURL(ctx context.Context, url string) ([]model.Vote, error) {
	all, err := s.Votes(ctx)
	if err != nil {
		return nil, err
	}
	votes := make([]model.Vote, 0)
	for _, v := range all {
		if v.AnalysisURL == url {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

// SaveAnalysis appends an analysis to its URL's history list.
func (s *RedisStore) SaveAnalysis(ctx context.Context, analysis *model.AnalysisResult) error {
	if analysis == nil {
		return ErrNilAnalysis
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}
	if err := s.client.RPush(ctx, analysesKey(analysis.URL), data).Err(); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// LatestAnalysis returns the last element of the URL's history list.
func (s *RedisStore) LatestAnalysis(ctx context.Context, url string) (*model.AnalysisResult, error) {
	data, err := s.client.LIndex(ctx, analysesKey(url), -1).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &result, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// AnalysisCount returns the length of the URL's history list.
func (s *RedisStore) AnalysisCount(ctx context.Context, url string) (int, error) {
	n, err := s.client.LLen(ctx, analysesKey(url)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return int(n), nil
}
