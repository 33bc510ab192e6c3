package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/studyhub/internal/models"
	"github.com/yishak-cs/studyhub/internal/search"
	"github.com/yishak-cs/studyhub/internal/textgen"
)

var aiContext = models.RankingContext{
	UserID:              "u1",
	Semester:            3,
	Department:          "Computer Science",
	RecentActivityCount: 2,
	RecentActivityTypes: []string{"view", "download"},
	TimeOfDay:           models.Evening,
}

func TestAISuggestionCollector_Collect(t *testing.T) {
	gen := &fakeGenerator{resp: &textgen.Response{Success: true, Text: twoSuggestions}}
	c := NewAISuggestionCollector(gen, nil, zerolog.Nop())

	recs, err := c.Collect(context.Background(), aiContext)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.True(t, strings.HasPrefix(r.ID, "ai-"))
		assert.Equal(t, models.TypeAISuggested, r.Type)
		assert.True(t, r.AIGenerated)
		assert.InDelta(t, aiConfidence, r.Confidence, 1e-9)
		assert.Contains(t, r.Tags, "ai")
	}
	assert.Equal(t, "Graph Algorithms Review", recs[0].Title)
	assert.Equal(t, "short", recs[0].EstimatedTime)
	assert.NotEqual(t, recs[0].ID, recs[1].ID)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Computer Science")
	assert.Contains(t, gen.prompts[0], "semester 3")
	assert.Contains(t, gen.prompts[0], "evening")
}

func TestAISuggestionCollector_Unsuccessful(t *testing.T) {
	gen := &fakeGenerator{resp: &textgen.Response{Success: false, Error: "quota exceeded"}}
	c := NewAISuggestionCollector(gen, nil, zerolog.Nop())

	recs, err := c.Collect(context.Background(), aiContext)

	assert.ErrorIs(t, err, ErrGenerationUnsuccessful)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, recs)
}

func TestAISuggestionCollector_TransportError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	c := NewAISuggestionCollector(gen, nil, zerolog.Nop())

	recs, err := c.Collect(context.Background(), aiContext)

	assert.Error(t, err)
	assert.Empty(t, recs)
}

func TestAISuggestionCollector_NoGenerator(t *testing.T) {
	c := NewAISuggestionCollector(nil, nil, zerolog.Nop())

	recs, err := c.Collect(context.Background(), aiContext)

	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestAISuggestionCollector_UnparseableText(t *testing.T) {
	gen := &fakeGenerator{resp: &textgen.Response{Success: true, Text: "Sorry, I can't do that."}}
	c := NewAISuggestionCollector(gen, nil, zerolog.Nop())

	recs, err := c.Collect(context.Background(), aiContext)

	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestAISuggestionCollector_Enrichment(t *testing.T) {
	gen := &fakeGenerator{resp: &textgen.Response{Success: true, Text: twoSuggestions}}
	enr := &fakeEnricher{results: map[string]*search.Result{
		"Graph Algorithms Review Computer Science": {
			Link:      "https://example.org/graphs",
			Thumbnail: "https://example.org/graphs.png",
		},
	}}
	c := NewAISuggestionCollector(gen, enr, zerolog.Nop())

	recs, err := c.Collect(context.Background(), aiContext)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "https://example.org/graphs", recs[0].URL)
	assert.Equal(t, "https://example.org/graphs.png", recs[0].Thumbnail)
	// lookup miss leaves the suggestion without a link
	assert.Empty(t, recs[1].URL)
	assert.Equal(t, 2, enr.queryCount())
}

func TestBuildSuggestionPrompt_NoActivity(t *testing.T) {
	prompt := BuildSuggestionPrompt(models.RankingContext{Semester: 1, Department: "General", TimeOfDay: models.Morning})

	assert.Contains(t, prompt, "no activity yet")
	assert.Contains(t, prompt, "Title:")
	assert.Contains(t, prompt, "Estimated Time:")
}

func TestAISuggestionCollector_SlowEnrichmentKeepsSuggestions(t *testing.T) {
	gen := &fakeGenerator{resp: &textgen.Response{Success: true, Text: twoSuggestions}}
	enr := &fakeEnricher{
		delay: 300 * time.Millisecond,
		results: map[string]*search.Result{
			"Graph Algorithms Review Computer Science": {Link: "https://example.org/graphs"},
		},
	}
	c := NewAISuggestionCollector(gen, enr, zerolog.Nop()).WithEnrichTimeout(50 * time.Millisecond)

	start := time.Now()
	recs, err := c.Collect(context.Background(), aiContext)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
	for _, r := range recs {
		assert.Empty(t, r.URL)
	}
}

func TestAISuggestionCollector_EnrichmentRunsInParallel(t *testing.T) {
	gen := &fakeGenerator{resp: &textgen.Response{Success: true, Text: twoSuggestions}}
	enr := &fakeEnricher{
		delay: 100 * time.Millisecond,
		results: map[string]*search.Result{
			"Graph Algorithms Review Computer Science":       {Link: "https://example.org/graphs"},
			"Database Normalization Drills Computer Science": {Link: "https://example.org/db"},
		},
	}
	c := NewAISuggestionCollector(gen, enr, zerolog.Nop()).WithEnrichTimeout(180 * time.Millisecond)

	recs, err := c.Collect(context.Background(), aiContext)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "https://example.org/graphs", recs[0].URL)
	assert.Equal(t, "https://example.org/db", recs[1].URL)
}
