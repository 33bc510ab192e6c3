package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsHelpersTolerateMissingValues(t *testing.T) {
	assert.Equal(t, "", asString(nil))
	assert.Equal(t, 0, asInt(nil))
	assert.Equal(t, 0, asInt("7"))
	assert.Equal(t, 0.0, asFloat(nil))
	assert.True(t, asTime(nil).IsZero())
	assert.Nil(t, asMap("x"))
}

func TestAsIntConvertsDriverTypes(t *testing.T) {
	assert.Equal(t, 42, asInt(int64(42)))
	assert.Equal(t, 3, asInt(3.9))
	assert.Equal(t, 0.5, asFloat(0.5))
	assert.Equal(t, 2.0, asFloat(int64(2)))
}

func TestResourceFromProps(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	r := resourceFromProps(map[string]any{
		"id":         "res-1",
		"title":      "OS Notes",
		"subject":    "Operating Systems",
		"semester":   int64(4),
		"department": "CSE",
		"kind":       "file",
		"views":      int64(120),
		"likes":      int64(9),
		"created_at": created,
	})

	assert.Equal(t, "res-1", r.ID)
	assert.Equal(t, 4, r.Semester)
	assert.Equal(t, 120, r.Views)
	assert.Equal(t, 9, r.Likes)
	assert.Equal(t, 0, r.Downloads)
	assert.Equal(t, created, r.CreatedAt)
}

func TestUserFromProps(t *testing.T) {
	u := userFromProps(map[string]any{"id": "u1", "semester": int64(2), "department": "ECE", "role": "student"})
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, 2, u.Semester)
	assert.Equal(t, "ECE", u.Department)
	assert.Equal(t, "student", u.Role)
}
