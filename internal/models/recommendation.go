package models

import "time"

// RecommendationType classifies where a recommendation came from
type RecommendationType string

const (
	TypeTrending    RecommendationType = "trending"
	TypeAISuggested RecommendationType = "ai_suggested"
	TypeStudyPath   RecommendationType = "study_path"
)

// TimeOfDay buckets the local hour a ranking request was made in
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// TimeOfDayFor maps a wall-clock hour to its bucket
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

// Recommendation is a candidate produced by a collector and, once scored, a ranked result
type Recommendation struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Type          RecommendationType `json:"type"`
	Confidence    float64            `json:"confidence"`
	Reasoning     string             `json:"reasoning"`
	EstimatedTime string             `json:"estimated_time,omitempty"`
	Difficulty    string             `json:"difficulty,omitempty"`
	Tags          []string           `json:"tags"`
	Popularity    int                `json:"popularity"`
	AIGenerated   bool               `json:"ai_generated"`
	URL           string             `json:"url,omitempty"`
	Thumbnail     string             `json:"thumbnail,omitempty"`
	Score         float64            `json:"score"`
	Source        any                `json:"source,omitempty"`
}

// RankingContext is the snapshot of user and time state a ranking pass is scored against
type RankingContext struct {
	UserID              string    `json:"user_id"`
	RecentActivityCount int       `json:"recent_activity_count"`
	RecentActivityTypes []string  `json:"recent_activity_types"`
	TimeOfDay           TimeOfDay `json:"time_of_day"`
	Semester            int       `json:"semester"`
	Department          string    `json:"department"`
}

// RecommendationResponse is what the API returns for a ranking request
type RecommendationResponse struct {
	UserID          string           `json:"user_id"`
	Context         RankingContext   `json:"context"`
	Recommendations []Recommendation `json:"recommendations"`
	Cached          bool             `json:"cached"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// FeedbackValue is a user's reaction to a recommendation
type FeedbackValue string

const (
	FeedbackLike       FeedbackValue = "like"
	FeedbackDislike    FeedbackValue = "dislike"
	FeedbackHelpful    FeedbackValue = "helpful"
	FeedbackNotHelpful FeedbackValue = "not_helpful"
)

// Feedback is stored per (user, recommendation) pair; newer values overwrite older ones
type Feedback struct {
	UserID           string        `json:"user_id" validate:"required"`
	RecommendationID string        `json:"recommendation_id" validate:"required"`
	Value            FeedbackValue `json:"feedback" validate:"required,oneof=like dislike helpful not_helpful"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
