package network

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
)

// Edge is one traversable segment. Both raw weights are kept so totals can be
// reported independently of the criterion used for the search.
type Edge struct {
	From     StationID
	To       StationID
	LineID   int64
	Distance int
	Duration int
	weight   int
}

// Weight is the criterion-selected weight of the edge.
func (e Edge) Weight() int {
	return e.weight
}

// segmentLine carries a segment on a multigraph line. The uid is graph unique
// and follows insertion order.
type segmentLine struct {
	edge Edge
	uid  int64
}

func (l segmentLine) From() graph.Node { return multi.Node(l.edge.From) }
func (l segmentLine) To() graph.Node   { return multi.Node(l.edge.To) }
func (l segmentLine) ID() int64        { return l.uid }
func (l segmentLine) Weight() float64  { return float64(l.edge.weight) }

func (l segmentLine) ReversedLine() graph.Line {
	l.edge.From, l.edge.To = l.edge.To, l.edge.From
	return l
}

// Graph is an undirected multigraph of stations built for one criterion.
// Each segment is one line; parallel segments between a station pair are
// collapsed to their lightest line when searching.
type Graph struct {
	criterion Criterion
	g         *multi.WeightedUndirectedGraph
	edgeCount int
}

// BuildGraph adds one line per connecting segment of every line.
// Line-start sentinels are skipped and parallel segments are kept as distinct lines.
func BuildGraph(lines []Line, criterion Criterion) *Graph {
	g := &Graph{
		criterion: criterion,
		g:         multi.NewWeightedUndirectedGraph(),
	}
	g.g.EdgeWeightFunc = lightestLine
	for _, line := range lines {
		for _, seg := range line.Segments {
			if seg.IsLineStart() || seg.StationID == NoStation {
				continue
			}
			g.addSegment(line.ID, seg)
		}
	}
	return g
}

func (g *Graph) addSegment(lineID int64, seg Segment) {
	e := Edge{
		From:     seg.UpstreamID,
		To:       seg.StationID,
		LineID:   lineID,
		Distance: seg.Distance,
		Duration: seg.Duration,
	}
	e.weight = g.criterion.Weight(e)

	g.g.SetWeightedLine(segmentLine{edge: e, uid: int64(g.edgeCount)})
	g.edgeCount++
}

func lightestLine(lines graph.WeightedLines) float64 {
	w := math.Inf(1)
	for lines.Next() {
		w = math.Min(w, lines.WeightedLine().Weight())
	}
	lines.Reset()
	return w
}

// lightestSegment returns the lightest segment from u to v, oriented u -> v.
// Equal weights go to the earliest added segment.
func (g *Graph) lightestSegment(u, v StationID) (Edge, bool) {
	var (
		best  segmentLine
		found bool
	)
	lines := g.g.WeightedLines(int64(u), int64(v))
	for lines.Next() {
		l, ok := lines.WeightedLine().(segmentLine)
		if !ok {
			continue
		}
		if !found || l.edge.weight < best.edge.weight ||
			(l.edge.weight == best.edge.weight && l.uid < best.uid) {
			best, found = l, true
		}
	}
	if !found {
		return Edge{}, false
	}
	if best.edge.From != u {
		best = best.ReversedLine().(segmentLine)
	}
	return best.edge, true
}

// Criterion returns the weighting the graph was built with.
func (g *Graph) Criterion() Criterion {
	return g.criterion
}

// HasVertex reports whether any segment references the station.
func (g *Graph) HasVertex(id StationID) bool {
	return g.g.Node(int64(id)) != nil
}

// Edges returns the edges leaving a station in the order their segments were added.
func (g *Graph) Edges(id StationID) []Edge {
	var found []segmentLine
	neighbours := g.g.From(int64(id))
	for neighbours.Next() {
		lines := g.g.WeightedLines(int64(id), neighbours.Node().ID())
		for lines.Next() {
			if l, ok := lines.WeightedLine().(segmentLine); ok {
				found = append(found, l)
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].uid < found[j].uid })

	edges := make([]Edge, 0, len(found))
	for _, l := range found {
		if l.edge.From != id {
			l = l.ReversedLine().(segmentLine)
		}
		edges = append(edges, l.edge)
	}
	return edges
}

// VertexCount returns the number of stations in the graph.
func (g *Graph) VertexCount() int {
	return g.g.Nodes().Len()
}

// EdgeCount returns the number of segments in the graph.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}
