package database

import (
	"context"
	"fmt"
	"time"

	"github.com/yishak-cs/studyhub/internal/models"
)

// FeedbackRepository persists recommendation feedback, one node per (user, recommendation)
type FeedbackRepository struct {
	client *Neo4jClient
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(client *Neo4jClient) *FeedbackRepository {
	return &FeedbackRepository{client: client}
}

// SaveFeedback upserts feedback, overwriting any earlier value for the same pair
func (r *FeedbackRepository) SaveFeedback(ctx context.Context, fb models.Feedback) error {
	if fb.UpdatedAt.IsZero() {
		fb.UpdatedAt = time.Now().UTC()
	}

	query := `
		MERGE (f:Feedback {user_id: $userId, recommendation_id: $recommendationId})
		SET f.value = $value, f.updated_at = $updatedAt
	`

	_, err := r.client.ExecuteWrite(ctx, query, map[string]any{
		"userId":           fb.UserID,
		"recommendationId": fb.RecommendationID,
		"value":            string(fb.Value),
		"updatedAt":        fb.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// GetFeedback returns the stored feedback for the pair or ErrNotFound
func (r *FeedbackRepository) GetFeedback(ctx context.Context, userID, recommendationID string) (*models.Feedback, error) {
	query := `
		MATCH (f:Feedback {user_id: $userId, recommendation_id: $recommendationId})
		RETURN f.value AS value, f.updated_at AS updated_at
	`

	results, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"userId":           userID,
		"recommendationId": recommendationID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("feedback for %s/%s: %w", userID, recommendationID, ErrNotFound)
	}

	return &models.Feedback{
		UserID:           userID,
		RecommendationID: recommendationID,
		Value:            models.FeedbackValue(asString(results[0]["value"])),
		UpdatedAt:        asTime(results[0]["updated_at"]),
	}, nil
}
