package projection

import "kgraph/domain/core/valueobjects"

const (
	// DefaultNodeSize applies to entity types missing from the size table
	DefaultNodeSize = 1
	// CenterNodeSize is forced on the ego-subgraph center regardless of type
	CenterNodeSize = 3
	// NeighborNodeSize is used for every ego-subgraph neighbor
	NeighborNodeSize = 2
)

var nodeSizes = map[valueobjects.EntityType]int{
	valueobjects.EntityTypePerson:       3,
	valueobjects.EntityTypeOrganization: 2,
	valueobjects.EntityTypeEvent:        2,
	valueobjects.EntityTypeLocation:     2,
	valueobjects.EntityTypeTime:         1,
}

// SizeFor returns the display size of a node of the given entity type
func SizeFor(t valueobjects.EntityType) int {
	if size, ok := nodeSizes[t]; ok {
		return size
	}
	return DefaultNodeSize
}
