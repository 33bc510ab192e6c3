package database

import (
	"context"
	"fmt"
	"time"

	"github.com/yishak-cs/studyhub/internal/models"
)

// ResourceRepository answers the resource and activity queries behind recommendations
type ResourceRepository struct {
	client *Neo4jClient
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(client *Neo4jClient) *ResourceRepository {
	return &ResourceRepository{client: client}
}

// GetUserProfile returns the user's semester/department profile
func (r *ResourceRepository) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		MATCH (u:User {id: $userId})
		RETURN properties(u) AS user
	`

	results, err := r.client.ExecuteRead(ctx, query, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	profile := userFromProps(asMap(results[0]["user"]))
	return &profile, nil
}

// GetRecentActivity returns the user's latest interactions, newest first
func (r *ResourceRepository) GetRecentActivity(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	query := `
		MATCH (:User {id: $userId})-[i:INTERACTED]->(r:Resource)
		RETURN r.id AS resource_id,
			   r.title AS title,
			   r.subject AS subject,
			   i.type AS type,
			   i.at AS at
		ORDER BY i.at DESC
		LIMIT $limit
	`

	results, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"userId": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}

	activity := make([]models.Activity, 0, len(results))
	for _, result := range results {
		activity = append(activity, models.Activity{
			ResourceID:    asString(result["resource_id"]),
			ResourceTitle: asString(result["title"]),
			Subject:       asString(result["subject"]),
			Type:          models.InteractionType(asString(result["type"])),
			At:            asTime(result["at"]),
		})
	}

	return activity, nil
}

// GetTrendingResources answers: "Which resources of this semester/department got the most interactions lately?"
func (r *ResourceRepository) GetTrendingResources(ctx context.Context, q models.TrendingQuery) ([]models.TrendingResource, error) {
	query := `
		MATCH (:User)-[i:INTERACTED]->(r:Resource)
		WHERE r.semester = $semester
		  AND r.department = $department
		  AND i.at > datetime() - duration({days: $days})
		WITH r, count(i) AS recent
		WHERE recent >= $minInteractions
		RETURN properties(r) AS resource, recent
		ORDER BY recent DESC, coalesce(r.views, 0) DESC
		LIMIT $limit
	`

	results, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"semester":        q.Semester,
		"department":      q.Department,
		"days":            q.WindowDays,
		"minInteractions": q.MinInteractions,
		"limit":           q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get trending resources: %w", err)
	}

	trending := make([]models.TrendingResource, 0, len(results))
	for _, result := range results {
		trending = append(trending, models.TrendingResource{
			Resource:           resourceFromProps(asMap(result["resource"])),
			RecentInteractions: asInt(result["recent"]),
		})
	}

	return trending, nil
}

// GetPeerResources answers: "What are classmates in the same semester/department using that this user hasn't touched?"
// Similarity is the share of peers who interacted with the resource.
func (r *ResourceRepository) GetPeerResources(ctx context.Context, q models.PeerQuery) ([]models.PeerResource, error) {
	query := `
		MATCH (peer:User)
		WHERE peer.semester = $semester
		  AND peer.department = $department
		  AND peer.id <> $userId
		WITH collect(peer) AS peers
		WITH peers, size(peers) AS total
		UNWIND peers AS peer
		MATCH (peer)-[i:INTERACTED]->(r:Resource)
		WHERE i.at > datetime() - duration({days: $days})
		  AND NOT EXISTS { MATCH (:User {id: $userId})-[:INTERACTED]->(r) }
		WITH r, total, count(i) AS interactions, count(DISTINCT peer) AS peerUsers
		RETURN properties(r) AS resource,
			   interactions,
			   toFloat(peerUsers) / toFloat(total) AS similarity
		ORDER BY similarity DESC, interactions DESC
		LIMIT $limit
	`

	results, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"userId":     q.UserID,
		"semester":   q.Semester,
		"department": q.Department,
		"days":       q.WindowDays,
		"limit":      q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get peer resources: %w", err)
	}

	peers := make([]models.PeerResource, 0, len(results))
	for _, result := range results {
		peers = append(peers, models.PeerResource{
			Resource:         resourceFromProps(asMap(result["resource"])),
			PeerInteractions: asInt(result["interactions"]),
			Similarity:       asFloat(result["similarity"]),
		})
	}

	return peers, nil
}

// counterFor maps an interaction type to the resource property it increments
var counterFor = map[models.InteractionType]string{
	models.InteractionView:     "views",
	models.InteractionLike:     "likes",
	models.InteractionDownload: "downloads",
	models.InteractionComment:  "comments",
}

// RecordInteraction stores a timestamped interaction and bumps the matching resource counter
func (r *ResourceRepository) RecordInteraction(ctx context.Context, in models.Interaction) (*models.ResourceStats, error) {
	counter, ok := counterFor[in.Type]
	if !ok {
		return nil, fmt.Errorf("unknown interaction type %q", in.Type)
	}
	if in.At.IsZero() {
		in.At = time.Now().UTC()
	}

	// counter comes from a fixed whitelist, never from input
	query := fmt.Sprintf(`
		MATCH (u:User {id: $userId}), (r:Resource {id: $resourceId})
		CREATE (u)-[:INTERACTED {type: $type, at: $at}]->(r)
		SET r.%[1]s = coalesce(r.%[1]s, 0) + 1
		RETURN r.id AS id,
			   coalesce(r.views, 0) AS views,
			   coalesce(r.likes, 0) AS likes,
			   coalesce(r.downloads, 0) AS downloads,
			   coalesce(r.comments, 0) AS comments
	`, counter)

	results, err := r.client.ExecuteWrite(ctx, query, map[string]any{
		"userId":     in.UserID,
		"resourceId": in.ResourceID,
		"type":       string(in.Type),
		"at":         in.At,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("user %s or resource %s: %w", in.UserID, in.ResourceID, ErrNotFound)
	}

	row := results[0]
	return &models.ResourceStats{
		ResourceID: asString(row["id"]),
		Views:      asInt(row["views"]),
		Likes:      asInt(row["likes"]),
		Downloads:  asInt(row["downloads"]),
		Comments:   asInt(row["comments"]),
	}, nil
}
