package graph

// Graph represents a directed graph in CSR (Compressed Sparse Row) format
// with non-negative float64 edge weights.
type Graph struct {
	NumNodes int32
	NumEdges int32
	Directed bool
	FirstOut []int32   // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []int32   // len: NumEdges; target node for each edge
	Weight   []float64 // len: NumEdges; finite, >= 0

	// Node coordinates for geographic graphs (nil for abstract graphs).
	NodeLat []float64 // len: NumNodes
	NodeLon []float64 // len: NumNodes
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u int32) (start, end int32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// Geographic reports whether the graph carries node coordinates.
func (g *Graph) Geographic() bool {
	return len(g.NodeLat) > 0 && len(g.NodeLon) > 0
}
