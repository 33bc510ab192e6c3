package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yishak-cs/studyhub/internal/logging"
	"github.com/yishak-cs/studyhub/internal/models"
	"github.com/yishak-cs/studyhub/internal/validation"
)

// ErrInvalidInteraction is returned for unknown interaction types or missing ids
var ErrInvalidInteraction = errors.New("invalid interaction")

// ResourceService tracks views, likes, downloads and comments and exposes trending lookups
type ResourceService struct {
	store  ResourceStore
	cfg    Config
	logger zerolog.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(store ResourceStore, cfg Config) *ResourceService {
	return &ResourceService{store: store, cfg: cfg, logger: logging.With("resources")}
}

// RecordInteraction validates and stores an interaction, returning the updated counters
func (s *ResourceService) RecordInteraction(ctx context.Context, in models.Interaction) (*models.ResourceStats, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInteraction, err)
	}
	if in.At.IsZero() {
		in.At = time.Now().UTC()
	}

	stats, err := s.store.RecordInteraction(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("user_id", in.UserID).
		Str("resource_id", in.ResourceID).
		Str("type", string(in.Type)).
		Msg("interaction recorded")
	return stats, nil
}

// GetTrending returns trending resources for a semester/department over the last days.
// Unlike the pipeline's collector, errors are returned to the caller.
func (s *ResourceService) GetTrending(ctx context.Context, semester int, department string, days int) ([]models.TrendingResource, error) {
	if semester <= 0 {
		semester = DefaultSemester
	}
	if department == "" {
		department = DefaultDepartment
	}
	if days <= 0 {
		days = s.cfg.TrendingWindowDays
	}

	trending, err := s.store.GetTrendingResources(ctx, models.TrendingQuery{
		Semester:        semester,
		Department:      department,
		WindowDays:      days,
		MinInteractions: s.cfg.TrendingMinInteractions,
		Limit:           s.cfg.CandidatesPerCollector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get trending resources: %w", err)
	}
	return trending, nil
}
