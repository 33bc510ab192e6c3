package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/studyhub/internal/models"
)

func TestStruct_Feedback(t *testing.T) {
	ok := models.Feedback{UserID: "u1", RecommendationID: "r1", Value: models.FeedbackHelpful}
	assert.NoError(t, Struct(ok))

	bad := models.Feedback{UserID: "u1", RecommendationID: "r1", Value: "meh"}
	err := Struct(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Value must be one of")

	missing := models.Feedback{Value: models.FeedbackLike}
	err = Struct(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UserID is required")
	assert.Contains(t, err.Error(), "RecommendationID is required")
}

func TestStruct_Interaction(t *testing.T) {
	assert.NoError(t, Struct(models.Interaction{UserID: "u", ResourceID: "r", Type: models.InteractionDownload}))
	assert.Error(t, Struct(models.Interaction{UserID: "u", ResourceID: "r", Type: "share"}))
}
