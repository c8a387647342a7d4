package votes

import (
	"context"
	"sync"

	"github.com/nao1215/bsdetector/internal/model"
)

// MemoryStore keeps votes and analyses in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	votes    []model.Vote
	analyses map[string][]model.AnalysisResult
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		votes:    make([]model.Vote, 0),
		analyses: make(map[string][]model.AnalysisResult),
	}
}

// SaveVote appends a vote.
func (s *MemoryStore) SaveVote(_ context.Context, vote *model.Vote) error {
	if vote == nil {
		return ErrNilVote
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes = append(s.votes, *vote)
	return nil
}

// Votes returns a copy of every vote.
func (s *MemoryStore) Votes(_ context.Context) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Vote, len(s.votes))
	copy(out, s.votes)
	return out, nil
}

// VotesForURL returns the votes for one URL.
func (s *MemoryStore) VotesForURL(_ context.Context, url string) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Vote, 0)
	for _, v := range s.votes {
		if v.AnalysisURL == url {
			out = append(out, v)
		}
	}
	return out, nil
}

// SaveAnalysis appends an analysis to its URL's history.
func (s *MemoryStore) SaveAnalysis(_ context.Context, analysis *model.AnalysisResult) error {
	if analysis == nil {
		return ErrNilAnalysis
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[analysis.URL] = append(s.analyses[analysis.URL], *analysis)
	return nil
}

// LatestAnalysis returns the last analysis saved for url.
func (s *MemoryStore) LatestAnalysis(_ context.Context, url string) (*model.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.analyses[url]
	if len(history) == 0 {
		return nil, nil
	}
	latest := history[len(history)-1]
	return &latest, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// AnalysisCount returns the length of the URL's history.
func (s *MemoryStore) AnalysisCount(_ context.Context, url string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses[url]), nil
}
