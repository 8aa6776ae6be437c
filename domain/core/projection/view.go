// Package projection reshapes stored entities and relationships into the
// node/edge view model consumed by graph visualizations.
package projection

import (
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
)

// Direction tells whether an ego-subgraph edge leaves or enters the center
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// Node is the view of one entity
type Node struct {
	ID          valueobjects.EntityID `json:"id"`
	Label       string                `json:"label"`
	Type        string                `json:"type"`
	Description string                `json:"description"`
	Size        int                   `json:"size"`
	Center      bool                  `json:"center,omitempty"`
}

// Edge is the view of one relationship. Direction is only set in ego subgraphs.
type Edge struct {
	Source      valueobjects.EntityID `json:"source"`
	Target      valueobjects.EntityID `json:"target"`
	Label       string                `json:"label"`
	Description string                `json:"description"`
	Confidence  float64               `json:"confidence"`
	Direction   Direction             `json:"direction,omitempty"`
}

// Graph is the full-graph view
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CenterEntity summarizes the center of an ego subgraph
type CenterEntity struct {
	ID   valueobjects.EntityID `json:"id"`
	Name string                `json:"name"`
	Type string                `json:"type"`
}

// Subgraph is the ego-subgraph view: the center plus its one-hop neighbors
type Subgraph struct {
	CenterEntity CenterEntity `json:"center_entity"`
	Nodes        []Node       `json:"nodes"`
	Edges        []Edge       `json:"edges"`
}

func nodeFor(e *entities.Entity, size int) Node {
	return Node{
		ID:          e.ID(),
		Label:       e.Name(),
		Type:        e.Type().String(),
		Description: e.Description(),
		Size:        size,
	}
}

func edgeFor(r *entities.Relationship, source, target valueobjects.EntityID, dir Direction) Edge {
	return Edge{
		Source:      source,
		Target:      target,
		Label:       r.Label(),
		Description: r.Description(),
		Confidence:  r.Confidence(),
		Direction:   dir,
	}
}
