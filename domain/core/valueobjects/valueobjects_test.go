package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntityID(t *testing.T) {
	id, err := ParseEntityID("42")
	require.NoError(t, err)
	assert.Equal(t, EntityID(42), id)
	assert.Equal(t, "42", id.String())

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseEntityID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseRelationshipID(t *testing.T) {
	id, err := ParseRelationshipID("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.Int64())
	assert.False(t, id.IsZero())

	_, err = ParseRelationshipID("x")
	assert.Error(t, err)
}

func TestRelationshipType_LabelAndValidation(t *testing.T) {
	assert.Equal(t, "Works For", RelationshipWorksFor.Label())
	assert.True(t, RelationshipLocatedIn.IsKnown())

	unknown := RelationshipType("mentors")
	assert.False(t, unknown.IsKnown())
	assert.Equal(t, "mentors", unknown.Label())

	_, err := ParseRelationshipType("mentors")
	assert.Error(t, err)

	parsed, err := ParseRelationshipType("part_of")
	require.NoError(t, err)
	assert.Equal(t, RelationshipPartOf, parsed)
}

func TestRelationshipTypeChoices_AreUnique(t *testing.T) {
	seen := make(map[RelationshipType]bool)
	for _, c := range RelationshipTypeChoices {
		assert.False(t, seen[c.Code], "duplicate code %q", c.Code)
		assert.NotEmpty(t, c.Label)
		seen[c.Code] = true
	}
}

func TestEntityType_Parse(t *testing.T) {
	for _, known := range EntityTypes {
		parsed, err := ParseEntityType(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, parsed)
	}

	_, err := ParseEntityType("planet")
	assert.Error(t, err)
}
