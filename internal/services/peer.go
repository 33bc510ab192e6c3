package services

import (
	"context"
	"fmt"
	"math"

	"github.com/yishak-cs/studyhub/internal/models"
)

// PeerCollector recommends what classmates in the same semester/department are using
type PeerCollector struct {
	store      ResourceStore
	windowDays int
	limit      int
}

// NewPeerCollector creates a peer-based collector
func NewPeerCollector(store ResourceStore, windowDays, limit int) *PeerCollector {
	return &PeerCollector{store: store, windowDays: windowDays, limit: limit}
}

func (c *PeerCollector) Name() string { return "peer" }

// Collect answers: "What are students like me using that I haven't opened yet?"
func (c *PeerCollector) Collect(ctx context.Context, rc models.RankingContext) ([]models.Recommendation, error) {
	rows, err := c.store.GetPeerResources(ctx, models.PeerQuery{
		UserID:     rc.UserID,
		Semester:   rc.Semester,
		Department: rc.Department,
		WindowDays: c.windowDays,
		Limit:      c.limit,
	})
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(rows))
	for _, row := range rows {
		res := row.Resource
		similarity := clamp01(row.Similarity)
		recs = append(recs, models.Recommendation{
			ID:          "peer-" + res.ID,
			Title:       res.Title,
			Description: describeResource(res),
			Type:        models.TypeTrending,
			Confidence:  similarity,
			Reasoning: fmt.Sprintf("Used by %d%% of your classmates in semester %d %s",
				int(math.Round(similarity*100)), rc.Semester, rc.Department),
			Tags:       compactTags(res.Subject, res.Kind, "peer"),
			Popularity: row.PeerInteractions,
			URL:        res.URL,
			Source:     &res,
		})
	}

	return recs, nil
}
