package valueobjects

import (
	"fmt"
	"strconv"
)

// EntityID is the store-assigned identifier of an entity
type EntityID int64

// RelationshipID is the store-assigned identifier of a relationship
type RelationshipID int64

// ParseEntityID parses a decimal entity identifier
func ParseEntityID(s string) (EntityID, error) {
	v, err := parsePositiveID(s)
	if err != nil {
		return 0, fmt.Errorf("invalid entity ID %q: %w", s, err)
	}
	return EntityID(v), nil
}

// ParseRelationshipID parses a decimal relationship identifier
func ParseRelationshipID(s string) (RelationshipID, error) {
	v, err := parsePositiveID(s)
	if err != nil {
		return 0, fmt.Errorf("invalid relationship ID %q: %w", s, err)
	}
	return RelationshipID(v), nil
}

// Int64 returns the raw identifier
func (id EntityID) Int64() int64 { return int64(id) }

// String returns the decimal representation of the EntityID
func (id EntityID) String() string { return strconv.FormatInt(int64(id), 10) }

// IsZero reports whether the ID has not been assigned by the store yet
func (id EntityID) IsZero() bool { return id == 0 }

// Int64 returns the raw identifier
func (id RelationshipID) Int64() int64 { return int64(id) }

// String returns the decimal representation of the RelationshipID
func (id RelationshipID) String() string { return strconv.FormatInt(int64(id), 10) }

// IsZero reports whether the ID has not been assigned by the store yet
func (id RelationshipID) IsZero() bool { return id == 0 }

func parsePositiveID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return v, nil
}
