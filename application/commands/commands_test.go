package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "kgraph/pkg/errors"
)

func TestCreateEntityCommand_ValidateRejectsUnknownType(t *testing.T) {
	err := CreateEntityCommand{Name: "Ada", EntityType: "spaceship"}.Validate()

	assert.True(t, pkgerrors.IsValidation(err))
	assert.Contains(t, err.Error(), `unknown entity type "spaceship"`)
	assert.NoError(t, CreateEntityCommand{Name: "Ada", EntityType: "person"}.Validate())
}

func TestPatchEntityCommand_Validate(t *testing.T) {
	blank, kind := "  ", "spaceship"

	assert.True(t, pkgerrors.IsValidation(PatchEntityCommand{}.Validate()))
	assert.True(t, pkgerrors.IsValidation(PatchEntityCommand{EntityID: 1, Name: &blank}.Validate()))
	assert.True(t, pkgerrors.IsValidation(PatchEntityCommand{EntityID: 1, EntityType: &kind}.Validate()))
	assert.NoError(t, PatchEntityCommand{EntityID: 1}.Validate())
}

func TestUpdateRelationshipCommand_Validate(t *testing.T) {
	valid := UpdateRelationshipCommand{RelationshipID: 3, SourceEntityID: 1, TargetEntityID: 2, RelationshipType: "founded"}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.RelationshipID = 0
	assert.True(t, pkgerrors.IsValidation(missingID.Validate()))

	unknown := valid
	unknown.RelationshipType = "mentors"
	err := unknown.Validate()
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Contains(t, err.Error(), `unknown relationship type "mentors"`)
}

func TestPatchRelationshipCommand_Validate(t *testing.T) {
	negative, kind := int64(-4), "mentors"

	assert.NoError(t, PatchRelationshipCommand{RelationshipID: 3}.Validate())
	assert.True(t, pkgerrors.IsValidation(PatchRelationshipCommand{RelationshipID: 3, TargetEntityID: &negative}.Validate()))
	assert.True(t, pkgerrors.IsValidation(PatchRelationshipCommand{RelationshipID: 3, RelationshipType: &kind}.Validate()))
}
