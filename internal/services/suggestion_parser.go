package services

import (
	"regexp"
	"strings"
)

// Field defaults applied when the generated text omits a label
const (
	defaultSuggestionTitle       = "Recommended study topic"
	defaultSuggestionDescription = "AI-recommended study resource"
	defaultSuggestionType        = "study_material"
	defaultSuggestionDifficulty  = "intermediate"
	defaultSuggestionTime        = "medium"
	defaultSuggestionReasoning   = "Suggested based on your recent activity"
)

// Suggestion is one block of AI text after field extraction
type Suggestion struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Difficulty    string `json:"difficulty"`
	EstimatedTime string `json:"estimated_time"`
	Reasoning     string `json:"reasoning"`
}

// labelPattern matches "Label: value" lines, tolerating list markers and markdown bold around the label
var labelPattern = regexp.MustCompile(`(?i)^[\s\-*#>\d.)]*(title|description|type|difficulty|estimated[ _-]?time|reasoning)\s*\**\s*:\s*(.*)$`)

// ParseSuggestions extracts up to limit suggestions (all when limit <= 0) from loosely formatted text.
// Each "Title:" line starts a block; lines before the first title and unlabeled lines are ignored.
// Malformed input degrades to defaults and never fails.
func ParseSuggestions(text string, limit int) []Suggestion {
	var (
		out     []Suggestion
		current *Suggestion
	)

	flush := func() {
		if current != nil {
			out = append(out, withDefaults(*current))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		m := labelPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		label := strings.ToLower(m[1])
		value := cleanValue(m[2])

		if label == "title" {
			flush()
			if limit > 0 && len(out) >= limit {
				return out
			}
			current = &Suggestion{Title: value}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case label == "description":
			current.Description = value
		case label == "type":
			current.Type = value
		case label == "difficulty":
			current.Difficulty = strings.ToLower(value)
		case strings.HasPrefix(label, "estimated"):
			current.EstimatedTime = strings.ToLower(value)
		case label == "reasoning":
			current.Reasoning = value
		}
	}
	flush()

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cleanValue(v string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "*_`\""))
}

func withDefaults(s Suggestion) Suggestion {
	if s.Title == "" {
		s.Title = defaultSuggestionTitle
	}
	if s.Description == "" {
		s.Description = defaultSuggestionDescription
	}
	if s.Type == "" {
		s.Type = defaultSuggestionType
	}
	if s.Difficulty == "" {
		s.Difficulty = defaultSuggestionDifficulty
	}
	if s.EstimatedTime == "" {
		s.EstimatedTime = defaultSuggestionTime
	}
	if s.Reasoning == "" {
		s.Reasoning = defaultSuggestionReasoning
	}
	return s
}
