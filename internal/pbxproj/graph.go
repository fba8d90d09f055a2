package pbxproj

import "fmt"

// Graph owns every node of one descriptor for the duration of one
// generation run. Nodes are keyed by identifier and additionally kept in an
// explicit per-kind insertion-order list: insertion order, not identifier
// order, is what makes serialization reproducible across runs.
type Graph struct {
	nodes map[string]Node
	order map[Kind][]Node
	kinds []Kind
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		order: make(map[Kind][]Node),
	}
}

// Add declares a node under its own identifier. A duplicate identifier is a
// broken invariant, not a condition to recover from; it should be
// unreachable given the generator's uniqueness guarantee but is checked
// rather than assumed.
func (g *Graph) Add(n Node) error {
	id := n.ID()
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %s", ErrIdentifierCollision, id)
	}
	g.nodes[id] = n
	if _, seen := g.order[n.Isa()]; !seen {
		g.kinds = append(g.kinds, n.Isa())
	}
	g.order[n.Isa()] = append(g.order[n.Isa()], n)
	return nil
}

// Resolve returns the node declared under id.
func (g *Graph) Resolve(id string) (Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDeclared, id)
	}
	return n, nil
}

// Of enumerates the nodes of one kind in insertion order.
func (g *Graph) Of(kind Kind) []Node {
	return g.order[kind]
}

// Count returns the number of declared nodes of one kind.
func (g *Graph) Count(kind Kind) int {
	return len(g.order[kind])
}

// Len returns the total number of declared nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Kinds lists the node kinds present, in first-insertion order.
func (g *Graph) Kinds() []Kind {
	return g.kinds
}
