// README: Weighted city graph with zone tags and Dijkstra shortest paths.
package roadnet

import (
	"fmt"
	"math"

	"rideshare/internal/types"
)

// Node is a location in the city. Coordinates exist for visualization only
// and have no effect on routing.
type Node struct {
	ID   types.ID
	Name string
	Zone string
	X    float64
	Y    float64
}

// Edge is a road between two locations. Immutable once added.
type Edge struct {
	From     types.ID
	To       types.ID
	Distance float64
}

type neighbor struct {
	id   types.ID
	dist float64
}

// Network is the weighted road graph. Nodes carry a zone tag; the zone index
// is rebuilt incrementally as nodes are added.
type Network struct {
	Name string

	nodes     map[types.ID]*Node
	adjacency map[types.ID][]neighbor
	zones     map[string][]types.ID
	zoneOrder []string
	edges     []Edge
}

// NewNetwork creates an empty road network.
func NewNetwork(name string) *Network {
	return &Network{
		Name:      name,
		nodes:     make(map[types.ID]*Node),
		adjacency: make(map[types.ID][]neighbor),
		zones:     make(map[string][]types.ID),
	}
}

// AddNode registers a location. Fails with ErrDuplicateNode if the ID is
// already present.
func (n *Network) AddNode(id types.ID, name, zone string, x, y float64) (*Node, error) {
	if _, ok := n.nodes[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	node := &Node{ID: id, Name: name, Zone: zone, X: x, Y: y}
	n.nodes[id] = node
	n.adjacency[id] = nil

	if _, ok := n.zones[zone]; !ok {
		n.zoneOrder = append(n.zoneOrder, zone)
	}
	n.zones[zone] = append(n.zones[zone], id)
	return node, nil
}

// AddEdge adds a road between two existing locations. When bidirectional,
// the reverse adjacency is inserted as well.
func (n *Network) AddEdge(from, to types.ID, distance float64, bidirectional bool) error {
	if _, ok := n.nodes[from]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	if _, ok := n.nodes[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}
	if distance < 0 {
		return ErrNegativeWeight
	}
	n.adjacency[from] = append(n.adjacency[from], neighbor{id: to, dist: distance})
	n.edges = append(n.edges, Edge{From: from, To: to, Distance: distance})
	if bidirectional {
		n.adjacency[to] = append(n.adjacency[to], neighbor{id: from, dist: distance})
	}
	return nil
}

// Node returns a location by ID, or nil when unknown.
func (n *Network) Node(id types.ID) *Node {
	return n.nodes[id]
}

// Zone returns the zone tag of a location. ok is false when the location is
// unknown.
func (n *Network) Zone(id types.ID) (string, bool) {
	node, ok := n.nodes[id]
	if !ok {
		return "", false
	}
	return node.Zone, true
}

// NodesInZone returns the IDs of all locations tagged with the zone, in
// insertion order.
func (n *Network) NodesInZone(zone string) []types.ID {
	return n.zones[zone]
}

// Zones returns all zone tags in the order they first appeared.
func (n *Network) Zones() []string {
	return n.zoneOrder
}

// Nodes returns every location in the network.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(n.nodes))
	for _, zone := range n.zoneOrder {
		for _, id := range n.zones[zone] {
			out = append(out, n.nodes[id])
		}
	}
	return out
}

// Edges returns every recorded road.
func (n *Network) Edges() []Edge {
	return n.edges
}

// ShortestPath runs Dijkstra from start to end over the non-negative edge
// weights. It returns the path as an ordered node sequence plus the total
// distance, or an empty path and +Inf when end is unreachable. Both
// endpoints must exist.
//
// Stale queue entries are tolerated rather than removed: a node popped after
// its distance was finalized is skipped, and the search stops early once the
// destination itself is finalized.
func (n *Network) ShortestPath(start, end types.ID) ([]types.ID, float64, error) {
	if _, ok := n.nodes[start]; !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownNode, start)
	}
	if _, ok := n.nodes[end]; !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownNode, end)
	}

	dist := make(map[types.ID]float64, len(n.nodes))
	prev := make(map[types.ID]types.ID, len(n.nodes))
	visited := make(map[types.ID]bool, len(n.nodes))
	for id := range n.nodes {
		dist[id] = math.Inf(1)
	}
	dist[start] = 0

	heap := NewMinHeap()
	heap.Insert(0, start)

	for !heap.IsEmpty() {
		d, u, err := heap.ExtractMin()
		if err != nil {
			return nil, 0, err
		}
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == end {
			break
		}
		for _, nb := range n.adjacency[u] {
			if visited[nb.id] {
				continue
			}
			alt := d + nb.dist
			if alt < dist[nb.id] {
				dist[nb.id] = alt
				prev[nb.id] = u
				if heap.Contains(nb.id) {
					heap.DecreaseKey(nb.id, alt)
				} else {
					heap.Insert(alt, nb.id)
				}
			}
		}
	}

	if math.IsInf(dist[end], 1) {
		return []types.ID{}, math.Inf(1), nil
	}

	path := []types.ID{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[end], nil
}

// Distance returns the shortest-path distance between two locations,
// discarding the path itself.
func (n *Network) Distance(start, end types.ID) (float64, error) {
	_, d, err := n.ShortestPath(start, end)
	return d, err
}
