package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/studyhub/internal/metrics"
	"github.com/yishak-cs/studyhub/internal/models"
)

func okCollector(name string, recs ...models.Recommendation) stubCollector {
	return stubCollector{name: name, fn: func(context.Context) ([]models.Recommendation, error) {
		return recs, nil
	}}
}

func TestGatherCandidates_MergesInCollectorOrder(t *testing.T) {
	collectors := []Collector{
		okCollector("first", models.Recommendation{ID: "a"}, models.Recommendation{ID: "b"}),
		stubCollector{name: "slow", fn: func(context.Context) ([]models.Recommendation, error) {
			time.Sleep(20 * time.Millisecond)
			return []models.Recommendation{{ID: "c"}}, nil
		}},
		okCollector("last", models.Recommendation{ID: "d"}),
	}

	got, failed := gatherCandidates(context.Background(), models.RankingContext{}, collectors, time.Second, zerolog.Nop())

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
	assert.Zero(t, failed)
}

func TestGatherCandidates_FailuresAreIsolated(t *testing.T) {
	tests := []struct {
		name   string
		failed Collector
		reason string
	}{
		{
			name: "error",
			failed: stubCollector{name: "iso_error", fn: func(context.Context) ([]models.Recommendation, error) {
				return nil, errors.New("boom")
			}},
			reason: "error",
		},
		{
			name: "panic",
			failed: stubCollector{name: "iso_panic", fn: func(context.Context) ([]models.Recommendation, error) {
				panic("nil map")
			}},
			reason: "panic",
		},
		{
			name: "timeout ignoring context",
			failed: stubCollector{name: "iso_hang", fn: func(context.Context) ([]models.Recommendation, error) {
				time.Sleep(500 * time.Millisecond)
				return []models.Recommendation{{ID: "late"}}, nil
			}},
			reason: "timeout",
		},
		{
			name: "timeout honoring context",
			failed: stubCollector{name: "iso_ctx", fn: func(ctx context.Context) ([]models.Recommendation, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}},
			reason: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collectors := []Collector{
				okCollector("before", models.Recommendation{ID: "a"}),
				tt.failed,
				okCollector("after", models.Recommendation{ID: "b"}),
			}
			counter := metrics.CollectorFailures.WithLabelValues(tt.failed.Name(), tt.reason)
			before := testutil.ToFloat64(counter)

			got, failed := gatherCandidates(context.Background(), models.RankingContext{}, collectors, 50*time.Millisecond, zerolog.Nop())

			assert.Equal(t, []string{"a", "b"}, ids(got))
			assert.Equal(t, 1, failed)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestGatherCandidates_Normalizes(t *testing.T) {
	collectors := []Collector{okCollector("raw",
		models.Recommendation{ID: "over", Confidence: 1.7, Popularity: -3},
		models.Recommendation{ID: "under", Confidence: -0.2},
	)}

	got, _ := gatherCandidates(context.Background(), models.RankingContext{}, collectors, time.Second, zerolog.Nop())

	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Confidence)
	assert.Zero(t, got[0].Popularity)
	assert.NotNil(t, got[0].Tags)
	assert.Equal(t, 0.0, got[1].Confidence)
}

func TestGatherCandidates_AllFail(t *testing.T) {
	collectors := []Collector{
		stubCollector{name: "all_fail", fn: func(context.Context) ([]models.Recommendation, error) {
			return nil, errors.New("down")
		}},
	}

	got, failed := gatherCandidates(context.Background(), models.RankingContext{}, collectors, time.Second, zerolog.Nop())

	assert.Empty(t, got)
	assert.Equal(t, 1, failed)
}

func TestCompactTags(t *testing.T) {
	assert.Equal(t, []string{"ai", "notes"}, compactTags("ai", "", "notes", "ai"))
	assert.Equal(t, []string{}, compactTags())
}
