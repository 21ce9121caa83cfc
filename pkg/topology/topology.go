// Package topology plans replicated campus networks joined in a ring,
// together with a collision-free IPv4 address plan.
//
// Planning is a pure function of the Spec.  Two calls with the same Spec
// produce identical networks, independent of any PRNG state.
package topology

import (
	"net/netip"
	"sort"

	lab "github.com/ndn-campus/lab/pkg"
	"github.com/ndn-campus/lab/pkg/graph"
)

// Key locates a node within the planned network.  Group is the LAN group
// for leaves, in campus LAN order, and zero for routers.
type Key struct {
	Campus int
	Tier   Tier
	Group  int
	Index  int
}

// Link between two nodes with its address block.
type Link struct {
	A, B   lab.NodeID
	Kind   LinkKind
	Subnet netip.Prefix
}

// LANGroup is a group of leaves hanging off a single gateway router.
type LANGroup struct {
	Tier    Tier // tier of the gateway
	Group   int  // group number within Tier
	Gateway lab.NodeID
	Leaves  lab.Population
}

// Campus is one replica of the hierarchy.
type Campus struct {
	Index   int
	Routers map[Tier]lab.Population
	LANs    []LANGroup
	Links   []Link
}

// Leaves of every LAN on the campus.
func (c *Campus) Leaves() lab.Population {
	var ps lab.Population
	for _, lan := range c.LANs {
		ps = append(ps, lan.Leaves...)
	}
	return ps
}

func (c *Campus) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"campus": c.Index,
		"lans":   len(c.LANs),
		"links":  len(c.Links),
	}
}

// Network is the output of Plan.
type Network struct {
	Spec      Spec
	Campuses  []*Campus
	Ring      []Link
	Addresses AddressPlan

	ring []graph.Edge
	ids  map[Key]lab.NodeID
	keys map[lab.NodeID]Key
}

// Plan the network described by spec.  The spec is validated first; on
// error nothing is built.
func Plan(spec Spec) (*Network, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	size := spec.Campuses * spec.NodesPerCampus()
	n := &Network{
		Spec:     spec,
		Campuses: make([]*Campus, 0, spec.Campuses),
		ids:      make(map[Key]lab.NodeID, size),
		keys:     make(map[lab.NodeID]Key, size),
	}

	var b builder
	for z := 0; z < spec.Campuses; z++ {
		n.Campuses = append(n.Campuses, b.campus(n, z))
	}

	n.ring = graph.Ring().Edges(spec.Campuses)
	for i, e := range n.ring {
		l := Link{
			A:      n.Campuses[e.From].Routers[Tier0][0],
			B:      n.Campuses[e.To].Routers[Tier0][0],
			Kind:   Ring,
			Subnet: block(RingOctet, RingSubOctet, uint8(i+1)),
		}

		n.Ring = append(n.Ring, l)
		n.Addresses = append(n.Addresses, Allocation{
			Campus: e.From,
			Tier:   Tier0,
			Kind:   Ring,
			Index:  i,
			Subnet: l.Subnet,
		})
	}

	return n, nil
}

func (n *Network) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"campuses": len(n.Campuses),
		"nodes":    len(n.keys),
		"links":    len(n.Addresses),
		"ring":     len(n.Ring),
	}
}

// Links of every campus in campus order, followed by the ring.
func (n *Network) Links() []Link {
	ls := make([]Link, 0, len(n.Addresses))
	for _, c := range n.Campuses {
		ls = append(ls, c.Links...)
	}
	return append(ls, n.Ring...)
}

// Nodes of the whole network in id order.
func (n *Network) Nodes() lab.Population {
	ps := make(lab.Population, 0, len(n.keys))
	for id := range n.keys {
		ps = append(ps, id)
	}
	sort.Sort(ps)
	return ps
}

// Leaves of every LAN in every campus.
func (n *Network) Leaves() lab.Population {
	var ps lab.Population
	for _, c := range n.Campuses {
		ps = append(ps, c.Leaves()...)
	}
	return ps
}

// Routers of tier t across all campuses.
func (n *Network) Routers(t Tier) lab.Population {
	var ps lab.Population
	for _, c := range n.Campuses {
		ps = append(ps, c.Routers[t]...)
	}
	return ps
}

// RingNeighbors of campus z, one entry per ring link touching it.  With two
// campuses the 2-cycle lists the other campus twice.
func (n *Network) RingNeighbors(z int) []int {
	return graph.Neighbors(n.ring, z)
}

// Lookup the node at k.
func (n *Network) Lookup(k Key) (lab.NodeID, bool) {
	id, ok := n.ids[k]
	return id, ok
}

// Locate the node with the given id.
func (n *Network) Locate(id lab.NodeID) (Key, bool) {
	k, ok := n.keys[id]
	return k, ok
}

// builder hands out node ids in creation order.
type builder struct {
	next lab.NodeID
}

func (b *builder) alloc(n *Network, k Key, count int) lab.Population {
	ps := make(lab.Population, count)
	for i := range ps {
		k.Index = i
		ps[i] = b.next
		n.ids[k] = b.next
		n.keys[b.next] = k
		b.next++
	}
	return ps
}

func (b *builder) campus(n *Network, z int) *Campus {
	spec := n.Spec
	c := &Campus{
		Index:   z,
		Routers: make(map[Tier]lab.Population, 5),
	}

	// Creation order mirrors the simulator's so that ids line up:
	// tier0, tier1, tier2, tier2 leaves, tier3, tier3 leaves, lone routers.
	c.Routers[Tier0] = b.alloc(n, Key{Campus: z, Tier: Tier0}, routers(spec, Tier0))
	c.Routers[Tier1] = b.alloc(n, Key{Campus: z, Tier: Tier1}, routers(spec, Tier1))
	for _, att := range Attachments {
		c.Routers[att.Tier] = b.alloc(n, Key{Campus: z, Tier: att.Tier}, routers(spec, att.Tier))

		for g := 0; g < spec.lans(att.Tier); g++ {
			key := Key{Campus: z, Tier: TierLeaf, Group: len(c.LANs)}
			c.LANs = append(c.LANs, LANGroup{
				Tier:    att.Tier,
				Group:   g,
				Gateway: c.Routers[att.Tier][att.FirstGateway+g],
				Leaves:  b.alloc(n, key, spec.LANClients),
			})
		}
	}
	c.Routers[TierLone] = b.alloc(n, Key{Campus: z, Tier: TierLone}, routers(spec, TierLone))

	index := map[[2]uint8]int{}
	next := func(t Tier, k LinkKind) int {
		key := [2]uint8{uint8(t), uint8(k)}
		i := index[key]
		index[key] = i + 1
		return i
	}

	link := func(x, y lab.NodeID, t Tier, k LinkKind, subnet netip.Prefix) {
		c.Links = append(c.Links, Link{A: x, B: y, Kind: k, Subnet: subnet})
		n.Addresses = append(n.Addresses, Allocation{
			Campus: z,
			Tier:   t,
			Kind:   k,
			Index:  next(t, k),
			Subnet: subnet,
		})
	}

	for _, w := range Adjacency {
		link(c.Routers[w.A.Tier][w.A.Index], c.Routers[w.B.Tier][w.B.Index],
			w.Tier, w.Kind, block(campusOctet(z), tierOctet[w.Tier], w.Third))
	}

	for _, lan := range c.LANs {
		for i, leaf := range lan.Leaves {
			link(leaf, lan.Gateway, lan.Tier, LAN,
				block(campusOctet(z), lanOctet(lan.Tier, lan.Group), uint8(i+1)))
		}
	}

	return c
}

func routers(s Spec, t Tier) int {
	switch t {
	case Tier0:
		return s.Tier0Routers
	case Tier1:
		return s.Tier1Routers
	case Tier2:
		return s.Tier2Routers
	case Tier3:
		return s.Tier3Routers
	case TierLone:
		return s.LoneRouters
	default:
		return 0
	}
}
