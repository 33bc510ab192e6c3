package database

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/yishak-cs/studyhub/internal/models"
)

// Property readers tolerate missing or null values; the driver hands integers back as int64.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case dbtype.LocalDateTime:
		return t.Time()
	case dbtype.Date:
		return t.Time()
	default:
		return time.Time{}
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func resourceFromProps(p map[string]any) models.Resource {
	return models.Resource{
		ID:          asString(p["id"]),
		Title:       asString(p["title"]),
		Description: asString(p["description"]),
		Subject:     asString(p["subject"]),
		Semester:    asInt(p["semester"]),
		Department:  asString(p["department"]),
		Kind:        asString(p["kind"]),
		URL:         asString(p["url"]),
		Views:       asInt(p["views"]),
		Likes:       asInt(p["likes"]),
		Downloads:   asInt(p["downloads"]),
		Comments:    asInt(p["comments"]),
		CreatedAt:   asTime(p["created_at"]),
	}
}

func userFromProps(p map[string]any) models.UserProfile {
	return models.UserProfile{
		ID:         asString(p["id"]),
		Name:       asString(p["name"]),
		Email:      asString(p["email"]),
		Role:       asString(p["role"]),
		Semester:   asInt(p["semester"]),
		Department: asString(p["department"]),
	}
}
