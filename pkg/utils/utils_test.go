package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "kgraph/pkg/errors"
)

type relationshipRequest struct {
	SourceID   int64    `json:"source_entity_id" validate:"required,gt=0"`
	Type       string   `json:"relationship_type" validate:"required,relationship_type"`
	EntityType string   `json:"entity_type" validate:"omitempty,entity_type"`
	Confidence *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
}

func TestValidateStruct_CustomTags(t *testing.T) {
	ok := relationshipRequest{SourceID: 1, Type: "works_for", EntityType: "person"}
	require.NoError(t, ValidateStruct(ok))

	bad := relationshipRequest{SourceID: 1, Type: "best_friends", EntityType: "planet"}
	err := ValidateStruct(bad)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	appErr := pkgerrors.GetAppError(err)
	assert.Contains(t, appErr.Details, "relationship_type")
	assert.Contains(t, appErr.Details, "entity_type")
	assert.Equal(t, "relationship_type is not a known relationship type", appErr.Details["relationship_type"])
}

func TestValidateStruct_Bounds(t *testing.T) {
	high := 1.5
	err := ValidateStruct(relationshipRequest{SourceID: 1, Type: "founded", Confidence: &high})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence must be less than or equal to 1")

	err = ValidateStruct(relationshipRequest{Type: "founded"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_entity_id is required")
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 500, time.FixedZone("x", 3600))
	assert.Equal(t, "2024-03-01T11:30:00.0000005Z", FormatTimestamp(ts))
}
