package topology

import (
	"strconv"

	"github.com/ndn-campus/lab/pkg/sim"
)

// Graph of the network in node-link form.  Nodes are grouped by tier.
func (n *Network) Graph() sim.Graph {
	var g sim.Graph
	for _, id := range n.Nodes() {
		k := n.keys[id]
		g.Nodes = append(g.Nodes, &sim.Node{
			ID:     strconv.FormatUint(uint64(id), 10),
			Group:  int(k.Tier),
			Campus: k.Campus,
		})
	}

	for _, l := range n.Links() {
		g.Links = append(g.Links, &sim.Link{
			Source: strconv.FormatUint(uint64(l.A), 10),
			Target: strconv.FormatUint(uint64(l.B), 10),
			Value:  int(l.Kind),
			Subnet: l.Subnet.String(),
		})
	}

	return g
}
