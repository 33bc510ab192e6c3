package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yishak-cs/studyhub/internal/metrics"
	"github.com/yishak-cs/studyhub/internal/models"
)

// Collector produces recommendation candidates from one source
type Collector interface {
	Name() string
	Collect(ctx context.Context, rc models.RankingContext) ([]models.Recommendation, error)
}

var errCollectorPanic = errors.New("collector panicked")

type collectResult struct {
	recs []models.Recommendation
	err  error
}

// collectSafely runs one collector and collapses any failure (error, panic, timeout) to an empty list.
// ok is false when the collector failed. A collector that ignores ctx is abandoned at the deadline
// and left to finish on its own.
func collectSafely(ctx context.Context, c Collector, rc models.RankingContext, timeout time.Duration, logger zerolog.Logger) (recs []models.Recommendation, ok bool) {
	name := c.Name()
	start := time.Now()
	defer func() {
		metrics.CollectorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan collectResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- collectResult{err: fmt.Errorf("%w: %v", errCollectorPanic, r)}
			}
		}()
		recs, err := c.Collect(ctx, rc)
		done <- collectResult{recs: recs, err: err}
	}()

	var res collectResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = collectResult{err: ctx.Err()}
	}

	if res.err != nil {
		reason := "error"
		switch {
		case errors.Is(res.err, errCollectorPanic):
			reason = "panic"
		case errors.Is(res.err, context.DeadlineExceeded):
			reason = "timeout"
		}
		metrics.CollectorFailures.WithLabelValues(name, reason).Inc()
		logger.Warn().
			Err(res.err).
			Str("collector", name).
			Str("reason", reason).
			Msg("collector failed, continuing without its candidates")
		return nil, false
	}

	metrics.CollectorCandidates.WithLabelValues(name).Add(float64(len(res.recs)))
	return res.recs, true
}

// gatherCandidates runs all collectors concurrently and merges their output in collector order.
// failed counts the collectors that degraded to an empty list.
func gatherCandidates(ctx context.Context, rc models.RankingContext, collectors []Collector, timeout time.Duration, logger zerolog.Logger) (merged []models.Recommendation, failed int) {
	results := make([][]models.Recommendation, len(collectors))
	succeeded := make([]bool, len(collectors))

	var g errgroup.Group
	for i, c := range collectors {
		i, c := i, c
		g.Go(func() error {
			results[i], succeeded[i] = collectSafely(ctx, c, rc, timeout, logger)
			return nil
		})
	}
	_ = g.Wait()

	for i, recs := range results {
		if !succeeded[i] {
			failed++
		}
		for _, rec := range recs {
			merged = append(merged, normalize(rec))
		}
	}
	return merged, failed
}

// normalize enforces the candidate invariants the scorer relies on
func normalize(rec models.Recommendation) models.Recommendation {
	rec.Confidence = clamp01(rec.Confidence)
	if rec.Popularity < 0 {
		rec.Popularity = 0
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return rec
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// compactTags drops empty tags and duplicates, keeping order
func compactTags(tags ...string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
