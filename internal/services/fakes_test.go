package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yishak-cs/studyhub/internal/database"
	"github.com/yishak-cs/studyhub/internal/models"
	"github.com/yishak-cs/studyhub/internal/search"
	"github.com/yishak-cs/studyhub/internal/textgen"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory ResourceStore. Func fields override the canned data.
type fakeStore struct {
	mu sync.Mutex

	profiles map[string]*models.UserProfile
	activity map[string][]models.Activity
	trending []models.TrendingResource
	peers    []models.PeerResource

	trendingErr error
	peerErr     error

	GetTrendingFunc func(ctx context.Context, q models.TrendingQuery) ([]models.TrendingResource, error)

	trendingCalls int
	interactions  []models.Interaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: map[string]*models.UserProfile{},
		activity: map[string][]models.Activity{},
	}
}

func (f *fakeStore) GetUserProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetRecentActivity(_ context.Context, userID string, limit int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.activity[userID]
	if limit > 0 && len(a) > limit {
		a = a[:limit]
	}
	return a, nil
}

func (f *fakeStore) GetTrendingResources(ctx context.Context, q models.TrendingQuery) ([]models.TrendingResource, error) {
	f.mu.Lock()
	f.trendingCalls++
	fn := f.GetTrendingFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, q)
	}
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	return f.trending, nil
}

func (f *fakeStore) GetPeerResources(_ context.Context, _ models.PeerQuery) ([]models.PeerResource, error) {
	if f.peerErr != nil {
		return nil, f.peerErr
	}
	return f.peers, nil
}

func (f *fakeStore) RecordInteraction(_ context.Context, in models.Interaction) (*models.ResourceStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.ResourceID == "missing" {
		return nil, database.ErrNotFound
	}
	f.interactions = append(f.interactions, in)

	stats := &models.ResourceStats{ResourceID: in.ResourceID}
	for _, i := range f.interactions {
		if i.ResourceID != in.ResourceID {
			continue
		}
		switch i.Type {
		case models.InteractionView:
			stats.Views++
		case models.InteractionLike:
			stats.Likes++
		case models.InteractionDownload:
			stats.Downloads++
		case models.InteractionComment:
			stats.Comments++
		}
	}
	return stats, nil
}

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trendingCalls
}

type feedbackKey struct{ user, rec string }

type fakeFeedbackStore struct {
	mu    sync.Mutex
	items map[feedbackKey]models.Feedback
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{items: map[feedbackKey]models.Feedback{}}
}

func (f *fakeFeedbackStore) SaveFeedback(_ context.Context, fb models.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[feedbackKey{fb.UserID, fb.RecommendationID}] = fb
	return nil
}

func (f *fakeFeedbackStore) GetFeedback(_ context.Context, userID, recommendationID string) (*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fb, ok := f.items[feedbackKey{userID, recommendationID}]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &fb, nil
}

type fakeGenerator struct {
	resp    *textgen.Response
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (*textgen.Response, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

// fakeEnricher answers from results; delay simulates a slow search service that ignores ctx
type fakeEnricher struct {
	mu      sync.Mutex
	results map[string]*search.Result
	delay   time.Duration
	queries []string
}

func (e *fakeEnricher) Lookup(_ context.Context, query string) (*search.Result, error) {
	e.mu.Lock()
	e.queries = append(e.queries, query)
	e.mu.Unlock()

	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	if r, ok := e.results[query]; ok {
		return r, nil
	}
	return nil, search.ErrNoResults
}

func (e *fakeEnricher) queryCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queries)
}

// stubCollector is a Collector driven by a function
type stubCollector struct {
	name string
	fn   func(ctx context.Context) ([]models.Recommendation, error)
}

func (s stubCollector) Name() string { return s.name }

func (s stubCollector) Collect(ctx context.Context, _ models.RankingContext) ([]models.Recommendation, error) {
	return s.fn(ctx)
}

const twoSuggestions = `Here are some ideas:

Title: Graph Algorithms Review
Description: Revisit BFS, DFS and shortest paths
Type: notes
Difficulty: Advanced
Estimated Time: short
Reasoning: You viewed several algorithms resources

Title: Database Normalization Drills
Description: Practice 1NF through BCNF
Type: practice
Difficulty: intermediate
Estimated Time: medium
Reasoning: Upcoming exam topic`
