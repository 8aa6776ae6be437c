package valueobjects

import "fmt"

// RelationshipType is the closed set of relationship codes. The same table
// validates writes and supplies display labels.
type RelationshipType string

const (
	RelationshipWorksFor       RelationshipType = "works_for"
	RelationshipMemberOf       RelationshipType = "member_of"
	RelationshipFounded        RelationshipType = "founded"
	RelationshipLocatedIn      RelationshipType = "located_in"
	RelationshipParticipatedIn RelationshipType = "participated_in"
	RelationshipOccurredAt     RelationshipType = "occurred_at"
	RelationshipOccurredOn     RelationshipType = "occurred_on"
	RelationshipPartOf         RelationshipType = "part_of"
	RelationshipRelatedTo      RelationshipType = "related_to"
	RelationshipOther          RelationshipType = "other"
)

// RelationshipTypeChoice pairs a code with its display label
type RelationshipTypeChoice struct {
	Code  RelationshipType `json:"code"`
	Label string           `json:"label"`
}

// RelationshipTypeChoices is the ordered enumeration
var RelationshipTypeChoices = []RelationshipTypeChoice{
	{RelationshipWorksFor, "Works For"},
	{RelationshipMemberOf, "Member Of"},
	{RelationshipFounded, "Founded"},
	{RelationshipLocatedIn, "Located In"},
	{RelationshipParticipatedIn, "Participated In"},
	{RelationshipOccurredAt, "Occurred At"},
	{RelationshipOccurredOn, "Occurred On"},
	{RelationshipPartOf, "Part Of"},
	{RelationshipRelatedTo, "Related To"},
	{RelationshipOther, "Other"},
}

var relationshipLabels = func() map[RelationshipType]string {
	m := make(map[RelationshipType]string, len(RelationshipTypeChoices))
	for _, c := range RelationshipTypeChoices {
		m[c.Code] = c.Label
	}
	return m
}()

// ParseRelationshipType validates a code supplied by a writer
func ParseRelationshipType(s string) (RelationshipType, error) {
	t := RelationshipType(s)
	if !t.IsKnown() {
		return "", fmt.Errorf("unknown relationship type %q", s)
	}
	return t, nil
}

// IsKnown reports whether the code belongs to the enumeration
func (t RelationshipType) IsKnown() bool {
	_, ok := relationshipLabels[t]
	return ok
}

// Label returns the display label. Codes outside the enumeration render as
// themselves.
func (t RelationshipType) Label() string {
	if label, ok := relationshipLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t RelationshipType) String() string { return string(t) }
