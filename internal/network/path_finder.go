package network

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
)

// Path is a shortest path between two stations.
type Path struct {
	Stations []StationID
	Edges    []Edge
	Distance int
	Duration int
}

// Weight returns the total of the path under the given criterion.
func (p Path) Weight(c Criterion) int {
	if c == Duration {
		return p.Duration
	}
	return p.Distance
}

// ShortestPath runs Dijkstra from source to target over g.
// It fails with ErrInvalidQuery when source equals target and with ErrPathNotFound
// when the stations are not connected.
func ShortestPath(g *Graph, source, target StationID) (Path, error) {
	if source == target {
		return Path{}, fmt.Errorf("%w: station %d", ErrInvalidQuery, source)
	}
	from, to := g.g.Node(int64(source)), g.g.Node(int64(target))
	if from == nil || to == nil {
		return Path{}, fmt.Errorf("%w: %d -> %d", ErrPathNotFound, source, target)
	}

	nodes, weight := path.DijkstraFromTo(from, to, g.g)
	if len(nodes) < 2 || math.IsInf(weight, 1) {
		return Path{}, fmt.Errorf("%w: %d -> %d", ErrPathNotFound, source, target)
	}

	return g.reconstruct(nodes)
}

// reconstruct resolves each hop to its lightest segment and sums the raw weights.
func (g *Graph) reconstruct(nodes []graph.Node) (Path, error) {
	p := Path{
		Stations: make([]StationID, 0, len(nodes)),
		Edges:    make([]Edge, 0, len(nodes)-1),
	}
	p.Stations = append(p.Stations, StationID(nodes[0].ID()))
	for i := 1; i < len(nodes); i++ {
		u, v := StationID(nodes[i-1].ID()), StationID(nodes[i].ID())
		e, ok := g.lightestSegment(u, v)
		if !ok {
			return Path{}, fmt.Errorf("%w: no segment %d -> %d", ErrPathNotFound, u, v)
		}
		p.Edges = append(p.Edges, e)
		p.Stations = append(p.Stations, v)
		p.Distance += e.Distance
		p.Duration += e.Duration
	}
	return p, nil
}
