package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yishak-cs/studyhub/internal/models"
	"github.com/yishak-cs/studyhub/internal/search"
	"github.com/yishak-cs/studyhub/internal/textgen"
)

const (
	aiConfidence         = 0.75
	maxAISuggestions     = 5
	defaultEnrichTimeout = 3 * time.Second
	suggestionTemplate = `You are an academic advisor for a %s student in semester %d.
Their recent activity on the resource portal: %s.
It is currently %s for them.

Suggest %d study resources or topics they should look at next.
Use exactly this format for each suggestion, one field per line:
Title: <short title>
Description: <one sentence>
Type: <notes|video|practice|article|project>
Difficulty: <beginner|intermediate|advanced>
Estimated Time: <short|medium|long>
Reasoning: <why this helps them now>`
)

// ErrGenerationUnsuccessful is returned when the text-generation service answers without success
var ErrGenerationUnsuccessful = errors.New("text generation unsuccessful")

// TextGenerator sends a prompt to a text-generation service
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*textgen.Response, error)
}

// Enricher finds a link and thumbnail for a suggestion title
type Enricher interface {
	Lookup(ctx context.Context, query string) (*search.Result, error)
}

// AISuggestionCollector turns a templated prompt into candidates via the text-generation service
type AISuggestionCollector struct {
	generator     TextGenerator
	enricher      Enricher
	enrichTimeout time.Duration
	logger        zerolog.Logger
}

// NewAISuggestionCollector creates the collector; a nil generator disables it and a nil enricher skips enrichment
func NewAISuggestionCollector(generator TextGenerator, enricher Enricher, logger zerolog.Logger) *AISuggestionCollector {
	return &AISuggestionCollector{
		generator:     generator,
		enricher:      enricher,
		enrichTimeout: defaultEnrichTimeout,
		logger:        logger,
	}
}

// WithEnrichTimeout bounds all search lookups of one Collect call; d <= 0 keeps the default
func (c *AISuggestionCollector) WithEnrichTimeout(d time.Duration) *AISuggestionCollector {
	if d > 0 {
		c.enrichTimeout = d
	}
	return c
}

func (c *AISuggestionCollector) Name() string { return "ai_suggestions" }

// Collect generates, parses and optionally enriches AI suggestions
func (c *AISuggestionCollector) Collect(ctx context.Context, rc models.RankingContext) ([]models.Recommendation, error) {
	if c.generator == nil {
		return nil, nil
	}

	resp, err := c.generator.Generate(ctx, BuildSuggestionPrompt(rc))
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrGenerationUnsuccessful, resp.Error)
	}

	suggestions := ParseSuggestions(resp.Text, maxAISuggestions)
	if len(suggestions) == 0 {
		c.logger.Warn().Int("response_len", len(resp.Text)).Msg("AI response contained no recognizable suggestions")
	}

	recs := make([]models.Recommendation, 0, len(suggestions))
	for _, s := range suggestions {
		rec := models.Recommendation{
			ID:            "ai-" + uuid.NewString(),
			Title:         s.Title,
			Description:   s.Description,
			Type:          models.TypeAISuggested,
			Confidence:    aiConfidence,
			Reasoning:     s.Reasoning,
			EstimatedTime: s.EstimatedTime,
			Difficulty:    s.Difficulty,
			Tags:          compactTags("ai", s.Type),
			AIGenerated:   true,
			Source:        s,
		}
		recs = append(recs, rec)
	}

	c.enrich(ctx, recs, rc.Department)
	return recs, nil
}

// enrich fills URL/Thumbnail from the first search hit of each suggestion. Lookups run in
// parallel under enrichTimeout; failed or unfinished lookups leave the fields empty.
func (c *AISuggestionCollector) enrich(ctx context.Context, recs []models.Recommendation, department string) {
	if c.enricher == nil || len(recs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.enrichTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		found  = make([]*search.Result, len(recs))
		closed bool
	)

	var g errgroup.Group
	for i := range recs {
		i := i
		title := recs[i].Title
		g.Go(func() error {
			res, err := c.enricher.Lookup(ctx, fmt.Sprintf("%s %s", title, department))
			if err != nil {
				c.logger.Debug().Err(err).Str("title", title).Msg("search enrichment skipped")
				return nil
			}
			mu.Lock()
			if !closed {
				found[i] = res
			}
			mu.Unlock()
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		c.logger.Debug().Dur("timeout", c.enrichTimeout).Msg("search enrichment cut short")
	}

	// late lookups must not touch recs once they are handed back
	mu.Lock()
	closed = true
	for i, res := range found {
		if res != nil {
			recs[i].URL = res.Link
			recs[i].Thumbnail = res.Thumbnail
		}
	}
	mu.Unlock()
}

// BuildSuggestionPrompt renders the prompt for a ranking context
func BuildSuggestionPrompt(rc models.RankingContext) string {
	activity := "no activity yet"
	if len(rc.RecentActivityTypes) > 0 {
		activity = fmt.Sprintf("%d recent actions (%s)", rc.RecentActivityCount, strings.Join(rc.RecentActivityTypes, ", "))
	}
	return fmt.Sprintf(suggestionTemplate, rc.Department, rc.Semester, activity, rc.TimeOfDay, maxAISuggestions)
}
