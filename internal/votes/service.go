package votes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/bsdetector/internal/model"
)

// Service records votes and answers questions about them.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source for vote timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service on top of a store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SaveVote validates and stores a vote. Feedback is trimmed of surrounding
// whitespace. A missing ID is filled with a new UUID and a zero timestamp
// with the current time.
func (s *Service) SaveVote(ctx context.Context, vote *model.Vote) error {
	if vote == nil {
		return ErrNilVote
	}
	vote.Feedback = strings.TrimSpace(vote.Feedback)
	if err := vote.Validate(); err != nil {
		return fmt.Errorf("invalid vote: %w", err)
	}
	if vote.ID == "" {
		vote.ID = s.newID()
	}
	if vote.Timestamp.IsZero() {
		vote.Timestamp = s.now()
	}

	if err := s.store.SaveVote(ctx, vote); err != nil {
		return err
	}
	s.logger.Debug("vote saved", "id", vote.ID, "url", vote.AnalysisURL, "rating", vote.UserRating)
	return nil
}

// Votes returns every vote.
func (s *Service) Votes(ctx context.Context) ([]model.Vote, error) {
	return s.store.Votes(ctx)
}

// VotesForURL returns the votes for one URL.
func (s *Service) VotesForURL(ctx context.Context, url string) ([]model.Vote, error) {
	return s.store.VotesForURL(ctx, url)
}

// Stats aggregates every vote in the store.
func (s *Service) Stats(ctx context.Context) (model.VotingStats, error) {
	votes, err := s.store.Votes(ctx)
	if err != nil {
		return model.VotingStats{}, err
	}
	return ComputeStats(votes), nil
}

// AdjustedRating returns the community-adjusted rating of an analysis of url
// whose original rating is original.
func (s *Service) AdjustedRating(ctx context.Context, url string, original int) (int, error) {
	votes, err := s.store.VotesForURL(ctx, url)
	if err != nil {
		return 0, err
	}
	return AdjustRating(original, votes), nil
}

// SaveAnalysis stores a finished analysis.
func (s *Service) SaveAnalysis(ctx context.Context, analysis *model.AnalysisResult) error {
	return s.store.SaveAnalysis(ctx, analysis)
}

// LatestAnalysis returns the last stored analysis of url, or nil.
func (s *Service) LatestAnalysis(ctx context.Context, url string) (*model.AnalysisResult, error) {
	return s.store.LatestAnalysis(ctx, url)
}

// AnalysisCount returns how many analyses of url are stored.
func (s *Service) AnalysisCount(ctx context.Context, url string) (int, error) {
	return s.store.AnalysisCount(ctx, url)
}

// Report builds the renderable report of an analysis, including the
// community rating when the URL has votes.
func (s *Service) Report(ctx context.Context, analysis *model.AnalysisResult) (*model.Report, error) {
	report := model.NewReport(analysis)
	if analysis == nil {
		return report, nil
	}
	votes, err := s.store.VotesForURL(ctx, analysis.URL)
	if err != nil {
		return nil, err
	}
	report.Community = Community(analysis, votes)
	return report, nil
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}
