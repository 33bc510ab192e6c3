package services

import (
	"context"
	"fmt"

	"github.com/yishak-cs/studyhub/internal/models"
)

const trendingConfidence = 0.8

// TrendingCollector recommends resources with above-threshold recent interaction in the user's semester/department
type TrendingCollector struct {
	store           ResourceStore
	windowDays      int
	minInteractions int
	limit           int
}

// NewTrendingCollector creates a trending collector
func NewTrendingCollector(store ResourceStore, windowDays, minInteractions, limit int) *TrendingCollector {
	return &TrendingCollector{
		store:           store,
		windowDays:      windowDays,
		minInteractions: minInteractions,
		limit:           limit,
	}
}

func (c *TrendingCollector) Name() string { return "trending" }

// Collect answers: "What is popular in my semester right now?"
func (c *TrendingCollector) Collect(ctx context.Context, rc models.RankingContext) ([]models.Recommendation, error) {
	rows, err := c.store.GetTrendingResources(ctx, models.TrendingQuery{
		Semester:        rc.Semester,
		Department:      rc.Department,
		WindowDays:      c.windowDays,
		MinInteractions: c.minInteractions,
		Limit:           c.limit,
	})
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(rows))
	for _, row := range rows {
		res := row.Resource
		recs = append(recs, models.Recommendation{
			ID:          "trending-" + res.ID,
			Title:       res.Title,
			Description: describeResource(res),
			Type:        models.TypeTrending,
			Confidence:  trendingConfidence,
			Reasoning: fmt.Sprintf("Trending in semester %d %s: %d interactions in the last %d days",
				rc.Semester, rc.Department, row.RecentInteractions, c.windowDays),
			Tags:       compactTags(res.Subject, res.Kind, "trending"),
			Popularity: res.Views,
			URL:        res.URL,
			Source:     &res,
		})
	}

	return recs, nil
}

func describeResource(res models.Resource) string {
	if res.Description != "" {
		return res.Description
	}
	if res.Subject != "" {
		return fmt.Sprintf("Shared %s for %s", res.Kind, res.Subject)
	}
	return "Shared study resource"
}
