package valueobjects

import "fmt"

// EntityType classifies an entity. Values read back from storage are not
// restricted to the known set; writes are.
type EntityType string

const (
	EntityTypePerson       EntityType = "person"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeEvent        EntityType = "event"
	EntityTypeLocation     EntityType = "location"
	EntityTypeTime         EntityType = "time"
	EntityTypeOther        EntityType = "other"
)

// EntityTypes lists the accepted entity types in display order
var EntityTypes = []EntityType{
	EntityTypePerson,
	EntityTypeOrganization,
	EntityTypeEvent,
	EntityTypeLocation,
	EntityTypeTime,
	EntityTypeOther,
}

// ParseEntityType validates a type supplied by a writer
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsKnown() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}

// IsKnown reports whether the type belongs to the accepted set
func (t EntityType) IsKnown() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t EntityType) String() string { return string(t) }
