package services

import (
	"time"

	"github.com/yishak-cs/studyhub/internal/models"
)

const (
	// DefaultSemester is used when a profile has none
	DefaultSemester = 1
	// DefaultDepartment is used when a profile has none
	DefaultDepartment = "General"
)

// ContextBuilder assembles the ranking context for a request
type ContextBuilder struct {
	now func() time.Time
}

// NewContextBuilder creates a builder reading the wall clock from now (time.Now when nil)
func NewContextBuilder(now func() time.Time) *ContextBuilder {
	if now == nil {
		now = time.Now
	}
	return &ContextBuilder{now: now}
}

// Build never fails: missing profile fields fall back to defaults
func (b *ContextBuilder) Build(userID string, profile *models.UserProfile, activity []models.Activity) models.RankingContext {
	rc := models.RankingContext{
		UserID:              userID,
		Semester:            DefaultSemester,
		Department:          DefaultDepartment,
		RecentActivityCount: len(activity),
		RecentActivityTypes: activityTypes(activity),
		TimeOfDay:           models.TimeOfDayFor(b.now().Hour()),
	}

	if profile != nil {
		if profile.Semester > 0 {
			rc.Semester = profile.Semester
		}
		if profile.Department != "" {
			rc.Department = profile.Department
		}
	}

	return rc
}

// activityTypes lists distinct interaction types in order of first appearance
func activityTypes(activity []models.Activity) []string {
	seen := make(map[models.InteractionType]bool, len(activity))
	types := make([]string, 0, 4)
	for _, a := range activity {
		if a.Type == "" || seen[a.Type] {
			continue
		}
		seen[a.Type] = true
		types = append(types, string(a.Type))
	}
	return types
}
