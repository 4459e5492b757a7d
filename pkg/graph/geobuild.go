package graph

import (
	"sort"

	"github.com/paulmach/osm"

	osmparser "bmssp_router/pkg/osm"
)

// BuildGeographic creates a CSR Graph from parsed OSM edges, remapping the
// sparse OSM node IDs to a compact [0,n) range and attaching coordinates.
func BuildGeographic(result *osmparser.ParseResult) *Graph {
	edges := result.Edges
	if len(edges) == 0 {
		return &Graph{Directed: true}
	}

	// Step 1: Collect all unique node IDs and build a compact mapping.
	nodeSet := make(map[osm.NodeID]int32)
	var nodeIDs []osm.NodeID

	addNode := func(id osm.NodeID) int32 {
		if idx, ok := nodeSet[id]; ok {
			return idx
		}
		idx := int32(len(nodeIDs))
		nodeSet[id] = idx
		nodeIDs = append(nodeIDs, id)
		return idx
	}

	for i := range edges {
		addNode(edges[i].FromNodeID)
		addNode(edges[i].ToNodeID)
	}

	n := int32(len(nodeIDs))

	// Step 2: Build compact edge list with remapped indices.
	compact := make([]InputEdge, len(edges))
	for i, e := range edges {
		compact[i] = InputEdge{
			U: nodeSet[e.FromNodeID],
			V: nodeSet[e.ToNodeID],
			W: e.Weight,
		}
	}

	// Step 3: Sort edges by source node for a deterministic CSR layout.
	sort.Slice(compact, func(i, j int) bool {
		if compact[i].U != compact[j].U {
			return compact[i].U < compact[j].U
		}
		return compact[i].V < compact[j].V
	})

	g := buildCSR(n, compact, true)

	// Step 4: Populate node coordinates.
	g.NodeLat = make([]float64, n)
	g.NodeLon = make([]float64, n)
	for id, idx := range nodeSet {
		g.NodeLat[idx] = result.NodeLat[id]
		g.NodeLon[idx] = result.NodeLon[id]
	}

	return g
}
