package services

import (
	"context"
	"fmt"

	"github.com/yishak-cs/studyhub/internal/models"
)

// foundationsThreshold is the activity count below which a user is steered to fundamentals
const foundationsThreshold = 3

// StudyPathCollector emits rule-based next steps; it does no I/O
type StudyPathCollector struct{}

func (StudyPathCollector) Name() string { return "study_path" }

func (StudyPathCollector) Collect(_ context.Context, rc models.RankingContext) ([]models.Recommendation, error) {
	return StudyPath(rc), nil
}

// StudyPath is a pure function of the ranking context
func StudyPath(rc models.RankingContext) []models.Recommendation {
	recs := make([]models.Recommendation, 0, 2)

	if rc.RecentActivityCount < foundationsThreshold {
		recs = append(recs, models.Recommendation{
			ID:            "study-path-foundations",
			Title:         fmt.Sprintf("Build your %s foundations", rc.Department),
			Description:   fmt.Sprintf("Core concepts for semester %d before moving to advanced topics", rc.Semester),
			Type:          models.TypeStudyPath,
			Confidence:    0.9,
			Reasoning:     "You are just getting started this semester; fundamentals first",
			EstimatedTime: "long",
			Difficulty:    "beginner",
			Tags:          []string{"foundation", "study-path"},
		})
	}

	recs = append(recs, models.Recommendation{
		ID:            "study-path-practice",
		Title:         fmt.Sprintf("Practice problems for semester %d", rc.Semester),
		Description:   "Work through problem sets to consolidate what you have studied",
		Type:          models.TypeStudyPath,
		Confidence:    0.8,
		Reasoning:     "Regular practice improves retention",
		EstimatedTime: "medium",
		Difficulty:    "intermediate",
		Tags:          []string{"practice", "problem-solving", "study-path"},
	})

	return recs
}
