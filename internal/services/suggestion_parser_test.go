package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions_WellFormed(t *testing.T) {
	got := ParseSuggestions(twoSuggestions, 5)

	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{
		Title:         "Graph Algorithms Review",
		Description:   "Revisit BFS, DFS and shortest paths",
		Type:          "notes",
		Difficulty:    "advanced",
		EstimatedTime: "short",
		Reasoning:     "You viewed several algorithms resources",
	}, got[0])
	assert.Equal(t, "Database Normalization Drills", got[1].Title)
	assert.Equal(t, "practice", got[1].Type)
}

func TestParseSuggestions_MissingFieldsGetDefaults(t *testing.T) {
	got := ParseSuggestions("Title: Linear Algebra Basics\nDifficulty: beginner", 5)

	require.Len(t, got, 1)
	assert.Equal(t, "Linear Algebra Basics", got[0].Title)
	assert.Equal(t, "beginner", got[0].Difficulty)
	assert.Equal(t, defaultSuggestionDescription, got[0].Description)
	assert.Equal(t, defaultSuggestionType, got[0].Type)
	assert.Equal(t, defaultSuggestionTime, got[0].EstimatedTime)
	assert.Equal(t, defaultSuggestionReasoning, got[0].Reasoning)
}

func TestParseSuggestions_EmptyTitleGetsDefault(t *testing.T) {
	got := ParseSuggestions("Title:\nDescription: something", 5)

	require.Len(t, got, 1)
	assert.Equal(t, defaultSuggestionTitle, got[0].Title)
	assert.Equal(t, "something", got[0].Description)
}

func TestParseSuggestions_MarkdownDecoration(t *testing.T) {
	text := `1. **Title:** Operating Systems Scheduling
   - **Difficulty**: Intermediate
   - *Estimated_Time*: long
   - Reasoning: "Matches your syllabus"`

	got := ParseSuggestions(text, 5)

	require.Len(t, got, 1)
	assert.Equal(t, "Operating Systems Scheduling", got[0].Title)
	assert.Equal(t, "intermediate", got[0].Difficulty)
	assert.Equal(t, "long", got[0].EstimatedTime)
	assert.Equal(t, "Matches your syllabus", got[0].Reasoning)
}

func TestParseSuggestions_Limit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, "Title: Topic %d\nDescription: d%d\n\n", i, i)
	}

	got := ParseSuggestions(b.String(), 5)

	require.Len(t, got, 5)
	assert.Equal(t, "Topic 0", got[0].Title)
	assert.Equal(t, "Topic 4", got[4].Title)
	assert.Len(t, ParseSuggestions(b.String(), 0), 7)
}

func TestParseSuggestions_Garbage(t *testing.T) {
	for _, text := range []string{"", "I cannot help with that.", "Description: orphan field\nReasoning: no title"} {
		assert.Empty(t, ParseSuggestions(text, 5), "input %q", text)
	}
}
