package routing

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"bmssp_router/pkg/geo"
	"bmssp_router/pkg/graph"
)

const maxSnapDistMeters = 500.0

// ErrPointTooFar is returned when the query point is too far from any road.
var ErrPointTooFar = errors.New("point too far from road")

// SnapResult represents a point snapped to a road segment.
type SnapResult struct {
	EdgeIdx int32   // index into the edge arrays
	NodeU   int32   // source node of the edge
	NodeV   int32   // target node of the edge
	Ratio   float64 // 0.0 = at NodeU, 1.0 = at NodeV
	Dist    float64 // distance in meters from query point to snapped point
}

// metersPerDegLat is the lat-axis scale; the lon axis shrinks by cos(lat).
const metersPerDegLat = 111_320.0

// Snapper provides nearest-road snapping backed by an R-tree over edge
// segment bounding boxes. Boxes are stored as (lon, lat) so the tree's
// axes match the usual x/y convention.
type Snapper struct {
	tr rtree.RTreeG[int32]
	g  *graph.Graph
}

// NewSnapper builds the spatial index from the graph's edges.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}
	for u := int32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			uLat, uLon := g.NodeLat[u], g.NodeLon[u]
			vLat, vLon := g.NodeLat[v], g.NodeLon[v]

			boxMin := [2]float64{math.Min(uLon, vLon), math.Min(uLat, vLat)}
			boxMax := [2]float64{math.Max(uLon, vLon), math.Max(uLat, vLat)}
			s.tr.Insert(boxMin, boxMax, e)
		}
	}
	return s
}

// edgeSource finds the source node of edge index e by binary search over
// the CSR row pointers.
func (s *Snapper) edgeSource(e int32) int32 {
	lo, hi := int32(0), s.g.NumNodes
	for lo < hi {
		mid := (lo + hi) / 2
		if s.g.FirstOut[mid+1] <= e {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Snap finds the nearest road segment to the given lat/lng.
func (s *Snapper) Snap(lat, lng float64) (SnapResult, error) {
	point := [2]float64{lng, lat}

	// Degree-space box distances underestimate meters by at most the lon
	// shrink factor, so scanning can stop once even the optimistic
	// conversion of the next candidate exceeds the best exact distance.
	minScale := metersPerDegLat * math.Cos(lat*math.Pi/180)
	if minScale < 1 {
		minScale = 1
	}

	bestDist := math.Inf(1)
	var best SnapResult
	found := false

	s.tr.Nearby(
		rtree.BoxDist[float64, int32](point, point, nil),
		func(min, max [2]float64, e int32, boxDist float64) bool {
			if found && boxDist*minScale > bestDist {
				return false
			}

			u := s.edgeSource(e)
			v := s.g.Head[e]
			exactDist, ratio := geo.PointToSegmentDist(
				lat, lng,
				s.g.NodeLat[u], s.g.NodeLon[u],
				s.g.NodeLat[v], s.g.NodeLon[v],
			)
			if exactDist < bestDist {
				bestDist = exactDist
				best = SnapResult{
					EdgeIdx: e,
					NodeU:   u,
					NodeV:   v,
					Ratio:   ratio,
					Dist:    exactDist,
				}
				found = true
			}
			return true
		},
	)

	if !found || bestDist > maxSnapDistMeters {
		return SnapResult{}, ErrPointTooFar
	}

	return best, nil
}

// NearestNode returns the graph vertex closest to the snapped point.
func (r SnapResult) NearestNode() int32 {
	if r.Ratio <= 0.5 {
		return r.NodeU
	}
	return r.NodeV
}
