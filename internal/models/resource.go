package models

import "time"

// UserProfile represents a student, faculty member or admin
type UserProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Semester   int    `json:"semester"`
	Department string `json:"department"`
}

// Resource represents an uploaded file or link
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject"`
	Semester    int       `json:"semester"`
	Department  string    `json:"department"`
	Kind        string    `json:"kind"` // file, link or placement
	URL         string    `json:"url,omitempty"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	Downloads   int       `json:"downloads"`
	Comments    int       `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// InteractionType is a tracked action on a resource
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionLike     InteractionType = "like"
	InteractionDownload InteractionType = "download"
	InteractionComment  InteractionType = "comment"
)

// Interaction is a single user action on a resource
type Interaction struct {
	UserID     string          `json:"user_id" validate:"required"`
	ResourceID string          `json:"resource_id" validate:"required"`
	Type       InteractionType `json:"type" validate:"required,oneof=view like download comment"`
	At         time.Time       `json:"at"`
}

// Activity is an entry of a user's recent history, newest first
type Activity struct {
	ResourceID    string          `json:"resource_id"`
	ResourceTitle string          `json:"resource_title"`
	Subject       string          `json:"subject"`
	Type          InteractionType `json:"type"`
	At            time.Time       `json:"at"`
}

// TrendingResource is a resource with its interaction count inside the trending window
type TrendingResource struct {
	Resource           Resource `json:"resource"`
	RecentInteractions int      `json:"recent_interactions"`
}

// PeerResource is a resource popular among users sharing a semester and department
type PeerResource struct {
	Resource         Resource `json:"resource"`
	PeerInteractions int      `json:"peer_interactions"`
	Similarity       float64  `json:"similarity"`
}

// TrendingQuery filters the trending lookup
type TrendingQuery struct {
	Semester        int
	Department      string
	WindowDays      int
	MinInteractions int
	Limit           int
}

// PeerQuery filters the peer activity lookup
type PeerQuery struct {
	UserID     string
	Semester   int
	Department string
	WindowDays int
	Limit      int
}

// ResourceStats is the counter snapshot after an interaction was recorded
type ResourceStats struct {
	ResourceID string `json:"resource_id"`
	Views      int    `json:"views"`
	Likes      int    `json:"likes"`
	Downloads  int    `json:"downloads"`
	Comments   int    `json:"comments"`
}
