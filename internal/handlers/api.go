package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yishak-cs/studyhub/internal/database"
	"github.com/yishak-cs/studyhub/internal/logging"
	"github.com/yishak-cs/studyhub/internal/models"
	"github.com/yishak-cs/studyhub/internal/services"
)

// Recommender is the part of the recommendation service the API uses
type Recommender interface {
	Recommend(ctx context.Context, userID string, opts services.RecommendOptions) *models.RecommendationResponse
	RecordFeedback(ctx context.Context, fb models.Feedback) error
	GetFeedback(ctx context.Context, userID, recommendationID string) (*models.Feedback, error)
}

// ResourceTracker is the part of the resource service the API uses
type ResourceTracker interface {
	RecordInteraction(ctx context.Context, in models.Interaction) (*models.ResourceStats, error)
	GetTrending(ctx context.Context, semester int, department string, days int) ([]models.TrendingResource, error)
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// APIHandler handles all API requests
type APIHandler struct {
	recommendations Recommender
	resources       ResourceTracker
	health          HealthChecker
	logger          zerolog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(recommendations Recommender, resources ResourceTracker, health HealthChecker) *APIHandler {
	return &APIHandler{
		recommendations: recommendations,
		resources:       resources,
		health:          health,
		logger:          logging.With("api"),
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/recommendations/trending", h.GetTrending)
		api.POST("/recommendations/feedback", h.PostFeedback)
		api.GET("/recommendations/feedback/:userId/:recommendationId", h.GetFeedback)
		api.GET("/recommendations/:userId", h.GetRecommendations)
		api.POST("/resources/:resourceId/interactions", h.PostInteraction)
	}
}

// Health reports service and database status
func (h *APIHandler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Health(c.Request.Context()); err != nil {
			h.logger.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}

// GetRecommendations handles ranked recommendation requests for a user
func (h *APIHandler) GetRecommendations(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	opts := services.RecommendOptions{}
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		opts.Limit = limit
	}
	if refreshParam := c.Query("refresh"); refreshParam != "" {
		refresh, err := strconv.ParseBool(refreshParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh must be a boolean"})
			return
		}
		opts.Refresh = refresh
	}

	c.JSON(http.StatusOK, h.recommendations.Recommend(c.Request.Context(), userID, opts))
}

// GetTrending handles requests for trending resources in a semester/department
func (h *APIHandler) GetTrending(c *gin.Context) {
	semester, ok := positiveIntQuery(c, "semester")
	if !ok {
		return
	}
	days, ok := positiveIntQuery(c, "days")
	if !ok {
		return
	}
	department := c.Query("department")

	trending, err := h.resources.GetTrending(c.Request.Context(), semester, department, days)
	if err != nil {
		h.respondError(c, err, "Failed to get trending resources")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"semester":   semester,
		"department": department,
		"days":       days,
		"resources":  trending,
	})
}

type feedbackRequest struct {
	UserID           string `json:"user_id"`
	RecommendationID string `json:"recommendation_id"`
	Feedback         string `json:"feedback"`
}

// PostFeedback records like/dislike/helpful/not_helpful for a recommendation
func (h *APIHandler) PostFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fb := models.Feedback{
		UserID:           req.UserID,
		RecommendationID: req.RecommendationID,
		Value:            models.FeedbackValue(req.Feedback),
	}
	if err := h.recommendations.RecordFeedback(c.Request.Context(), fb); err != nil {
		h.respondError(c, err, "Failed to record feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback recorded"})
}

// GetFeedback returns the latest feedback a user gave a recommendation
func (h *APIHandler) GetFeedback(c *gin.Context) {
	fb, err := h.recommendations.GetFeedback(c.Request.Context(), c.Param("userId"), c.Param("recommendationId"))
	if err != nil {
		h.respondError(c, err, "Failed to get feedback")
		return
	}
	c.JSON(http.StatusOK, fb)
}

type interactionRequest struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

// PostInteraction tracks a view, like, download or comment on a resource
func (h *APIHandler) PostInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stats, err := h.resources.RecordInteraction(c.Request.Context(), models.Interaction{
		UserID:     req.UserID,
		ResourceID: c.Param("resourceId"),
		Type:       models.InteractionType(req.Type),
	})
	if err != nil {
		h.respondError(c, err, "Failed to record interaction")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// respondError maps service errors to status codes; validation details are echoed, internals are not
func (h *APIHandler) respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, services.ErrInvalidFeedback), errors.Is(err, services.ErrInvalidInteraction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// positiveIntQuery reads an optional positive integer query parameter; 0 means absent
func positiveIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return v, true
}
