package services

import (
	"math"
	"sort"

	"github.com/yishak-cs/studyhub/internal/models"
)

// DefaultLimit is how many recommendations a ranking returns unless asked otherwise
const DefaultLimit = 8

// ScoringWeights are the product-tuning knobs of the ranking heuristic
type ScoringWeights struct {
	ConfidenceScale      float64 `json:"confidence_scale"`
	TrendingBoost        float64 `json:"trending_boost"`
	AIBoost              float64 `json:"ai_boost"`
	PopularityFactor     float64 `json:"popularity_factor"`
	MorningAdvancedBoost float64 `json:"morning_advanced_boost"`
	EveningShortBoost    float64 `json:"evening_short_boost"`
}

// DefaultScoringWeights returns the weights the heuristic was tuned with
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ConfidenceScale:      100,
		TrendingBoost:        20,
		AIBoost:              15,
		PopularityFactor:     5,
		MorningAdvancedBoost: 10,
		EveningShortBoost:    10,
	}
}

// Scorer ranks candidates with a fixed weighted sum. It holds no state besides its weights.
type Scorer struct {
	weights ScoringWeights
}

// NewScorer creates a scorer
func NewScorer(weights ScoringWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes a candidate's score in the given context
func (s *Scorer) Score(rec models.Recommendation, rc models.RankingContext) float64 {
	w := s.weights
	score := rec.Confidence * w.ConfidenceScale

	if rec.Type == models.TypeTrending {
		score += w.TrendingBoost
	}
	if rec.AIGenerated {
		score += w.AIBoost
	}

	score += w.PopularityFactor * math.Log(float64(max(rec.Popularity, 0))+1)

	// collectors emit lowercase difficulty and time labels
	if rc.TimeOfDay == models.Morning && rec.Difficulty == "advanced" {
		score += w.MorningAdvancedBoost
	}
	if rc.TimeOfDay == models.Evening && rec.EstimatedTime == "short" {
		score += w.EveningShortBoost
	}

	return score
}

// Rank scores every candidate and returns them by descending score.
// Equal scores keep their input order. The input slice is not modified.
func (s *Scorer) Rank(candidates []models.Recommendation, rc models.RankingContext) []models.Recommendation {
	ranked := make([]models.Recommendation, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].Score = s.Score(ranked[i], rc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// Top ranks candidates and keeps the best limit of them (DefaultLimit when limit <= 0)
func (s *Scorer) Top(candidates []models.Recommendation, rc models.RankingContext, limit int) []models.Recommendation {
	return truncate(s.Rank(candidates, rc), limit)
}

func truncate(recs []models.Recommendation, limit int) []models.Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
