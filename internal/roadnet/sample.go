// README: Canned sample city used by the demo and tests.
package roadnet

import "rideshare/internal/types"

// SampleNetwork builds a small four-zone city:
//
//	Zone-A (north): A1, A2, A3
//	Zone-B (south): B1, B2, B3
//	Zone-C (east):  C1, C2
//	Zone-M:         M1, the central connector
func SampleNetwork() *Network {
	n := NewNetwork("Sample City")

	mustAddNode(n, "A1", "North Station", "Zone-A", 100, 50)
	mustAddNode(n, "A2", "North Mall", "Zone-A", 200, 50)
	mustAddNode(n, "A3", "North Park", "Zone-A", 300, 100)

	mustAddNode(n, "B1", "South Station", "Zone-B", 100, 300)
	mustAddNode(n, "B2", "South Mall", "Zone-B", 200, 300)
	mustAddNode(n, "B3", "South Park", "Zone-B", 300, 250)

	mustAddNode(n, "C1", "East Hub", "Zone-C", 400, 150)
	mustAddNode(n, "C2", "East Center", "Zone-C", 400, 250)

	mustAddNode(n, "M1", "Central Hub", "Zone-M", 250, 175)

	mustAddEdge(n, "A1", "A2", 5.0)
	mustAddEdge(n, "A2", "A3", 6.0)
	mustAddEdge(n, "A1", "A3", 10.0)

	mustAddEdge(n, "B1", "B2", 5.0)
	mustAddEdge(n, "B2", "B3", 4.0)
	mustAddEdge(n, "B1", "B3", 8.0)

	mustAddEdge(n, "C1", "C2", 6.0)

	mustAddEdge(n, "A2", "M1", 7.0)
	mustAddEdge(n, "B2", "M1", 7.0)
	mustAddEdge(n, "M1", "C1", 8.0)
	mustAddEdge(n, "A3", "C1", 6.0)
	mustAddEdge(n, "B3", "C2", 5.0)

	return n
}

func mustAddNode(n *Network, id types.ID, name, zone string, x, y float64) {
	if _, err := n.AddNode(id, name, zone, x, y); err != nil {
		panic(err)
	}
}

func mustAddEdge(n *Network, from, to types.ID, distance float64) {
	if err := n.AddEdge(from, to, distance, true); err != nil {
		panic(err)
	}
}
