package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yishak-cs/studyhub/internal/cache"
	"github.com/yishak-cs/studyhub/internal/database"
	"github.com/yishak-cs/studyhub/internal/logging"
	"github.com/yishak-cs/studyhub/internal/metrics"
	"github.com/yishak-cs/studyhub/internal/models"
	"github.com/yishak-cs/studyhub/internal/validation"
)

// ErrInvalidFeedback is returned for feedback outside like/dislike/helpful/not_helpful or missing ids
var ErrInvalidFeedback = errors.New("invalid feedback")

// ResourceStore is the persistent store the collectors and context builder read from
type ResourceStore interface {
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	GetRecentActivity(ctx context.Context, userID string, limit int) ([]models.Activity, error)
	GetTrendingResources(ctx context.Context, q models.TrendingQuery) ([]models.TrendingResource, error)
	GetPeerResources(ctx context.Context, q models.PeerQuery) ([]models.PeerResource, error)
	RecordInteraction(ctx context.Context, in models.Interaction) (*models.ResourceStats, error)
}

// FeedbackStore persists feedback keyed by (user, recommendation)
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, fb models.Feedback) error
	GetFeedback(ctx context.Context, userID, recommendationID string) (*models.Feedback, error)
}

// Config tunes the recommendation pipeline
type Config struct {
	Limit                   int
	CacheTTL                time.Duration
	CollectorTimeout        time.Duration
	EnrichTimeout           time.Duration // budget for all search lookups of one AI pass
	TrendingWindowDays      int
	TrendingMinInteractions int
	PeerWindowDays          int
	CandidatesPerCollector  int
	RecentActivityLimit     int
	Weights                 ScoringWeights
}

// DefaultConfig returns the pipeline defaults
func DefaultConfig() Config {
	return Config{
		Limit:                   DefaultLimit,
		CacheTTL:                5 * time.Minute,
		CollectorTimeout:        8 * time.Second,
		EnrichTimeout:           3 * time.Second,
		TrendingWindowDays:      7,
		TrendingMinInteractions: 5,
		PeerWindowDays:          30,
		CandidatesPerCollector:  10,
		RecentActivityLimit:     10,
		Weights:                 DefaultScoringWeights(),
	}
}

// RecommendOptions are per-request knobs
type RecommendOptions struct {
	Limit   int
	Refresh bool // skip the cache and rerun the pipeline
}

// RecommendationService handles all recommendation logic
type RecommendationService struct {
	store      ResourceStore
	feedback   FeedbackStore
	collectors []Collector
	builder    *ContextBuilder
	scorer     *Scorer
	cache      *cache.TTL[rankedEntry]
	cfg        Config
	logger     zerolog.Logger
}

// NewRecommendationService wires the four collectors, scorer and cache.
// generator and enricher may be nil to run without AI suggestions or enrichment.
func NewRecommendationService(store ResourceStore, feedback FeedbackStore, generator TextGenerator, enricher Enricher, cfg Config) *RecommendationService {
	logger := logging.With("recommend")

	return &RecommendationService{
		store:    store,
		feedback: feedback,
		collectors: []Collector{
			NewTrendingCollector(store, cfg.TrendingWindowDays, cfg.TrendingMinInteractions, cfg.CandidatesPerCollector),
			NewAISuggestionCollector(generator, enricher, logger).WithEnrichTimeout(cfg.EnrichTimeout),
			NewPeerCollector(store, cfg.PeerWindowDays, cfg.CandidatesPerCollector),
			StudyPathCollector{},
		},
		builder: NewContextBuilder(nil),
		scorer:  NewScorer(cfg.Weights),
		cache:   cache.NewTTL[rankedEntry](cfg.CacheTTL),
		cfg:     cfg,
		logger:  logger,
	}
}

// rankedEntry is a cohort's full ranking together with the context it was scored in
type rankedEntry struct {
	rc     models.RankingContext
	ranked []models.Recommendation
}

// Recommend builds the ranking context, runs the collectors and returns the top ranked candidates.
// It never fails: every upstream problem degrades to fewer (possibly zero) recommendations.
//
// Rankings are shared per semester and department. On a cache hit the response Context is the
// one the list was scored in (time of day, recent activity), labelled with the requesting user.
// Only complete rankings are cached: a cancelled request or a failed collector is not stored.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, opts RecommendOptions) *models.RecommendationResponse {
	rc := s.BuildContext(ctx, userID)
	logger := s.logger.With().
		Str("user_id", userID).
		Int("semester", rc.Semester).
		Str("department", rc.Department).
		Logger()

	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.Limit
	}

	key := cacheKey(rc)
	if !opts.Refresh {
		if entry, ok := s.cache.Get(key); ok {
			metrics.RecommendationCacheHits.Inc()
			logger.Debug().Msg("serving recommendations from cache")
			scored := entry.rc
			scored.UserID = userID
			return s.response(scored, truncate(entry.ranked, limit), true)
		}
	}
	metrics.RecommendationCacheMisses.Inc()

	candidates, failed := gatherCandidates(ctx, rc, s.collectors, s.cfg.CollectorTimeout, logger)
	ranked := s.scorer.Rank(candidates, rc)

	switch {
	case ctx.Err() != nil:
		logger.Debug().Err(ctx.Err()).Msg("request abandoned, ranking not cached")
	case failed > 0:
		logger.Debug().Int("failed_collectors", failed).Msg("degraded ranking not cached")
	default:
		s.cache.Set(key, rankedEntry{rc: rc, ranked: ranked})
	}

	logger.Info().
		Int("candidates", len(candidates)).
		Int("failed_collectors", failed).
		Str("time_of_day", string(rc.TimeOfDay)).
		Msg("recommendations ranked")

	return s.response(rc, truncate(ranked, limit), false)
}

// BuildContext loads the profile and recent activity; lookup failures fall back to defaults
func (s *RecommendationService) BuildContext(ctx context.Context, userID string) models.RankingContext {
	profile, err := s.store.GetUserProfile(ctx, userID)
	if err != nil {
		level := zerolog.WarnLevel
		if errors.Is(err, database.ErrNotFound) {
			level = zerolog.DebugLevel
		}
		s.logger.WithLevel(level).Err(err).Str("user_id", userID).Msg("using default profile")
		profile = nil
	}

	activity, err := s.store.GetRecentActivity(ctx, userID, s.cfg.RecentActivityLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("recent activity unavailable")
		activity = nil
	}

	return s.builder.Build(userID, profile, activity)
}

func (s *RecommendationService) response(rc models.RankingContext, recs []models.Recommendation, cached bool) *models.RecommendationResponse {
	// a cached slice is shared between requests; hand out a copy
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	return &models.RecommendationResponse{
		UserID:          rc.UserID,
		Context:         rc,
		Recommendations: out,
		Cached:          cached,
		GeneratedAt:     time.Now().UTC(),
	}
}

func cacheKey(rc models.RankingContext) string {
	return fmt.Sprintf("%d:%s", rc.Semester, strings.ToLower(rc.Department))
}

// RecordFeedback validates and stores feedback, overwriting earlier feedback for the same pair
func (s *RecommendationService) RecordFeedback(ctx context.Context, fb models.Feedback) error {
	if err := validation.Struct(fb); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeedback, err)
	}
	if fb.UpdatedAt.IsZero() {
		fb.UpdatedAt = time.Now().UTC()
	}

	if err := s.feedback.SaveFeedback(ctx, fb); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	s.logger.Info().
		Str("user_id", fb.UserID).
		Str("recommendation_id", fb.RecommendationID).
		Str("feedback", string(fb.Value)).
		Msg("feedback recorded")
	return nil
}

// GetFeedback returns the latest feedback a user gave a recommendation
func (s *RecommendationService) GetFeedback(ctx context.Context, userID, recommendationID string) (*models.Feedback, error) {
	fb, err := s.feedback.GetFeedback(ctx, userID, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return fb, nil
}
