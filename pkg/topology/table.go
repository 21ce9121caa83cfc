package topology

// Router and LAN counts of a single campus.  The adjacency below is laid out
// against these counts.
const (
	Tier0Routers = 3
	Tier1Routers = 6
	Tier2Routers = 14
	Tier3Routers = 9
	LoneRouters  = 2
	Tier2LANs    = 7
	Tier3LANs    = 5
)

// Address octets.  A campus z owns 10+z.0.0.0/8 and the inter-campus ring
// owns 254.1.0.0/16.
const (
	CampusOctetBase = 10
	RingOctet       = 254
	RingSubOctet    = 1

	// LAN leaf links of group g on tier t live under second octet
	// tierOctet(t)*LANOctetScale + g.
	LANOctetScale = 10
)

// MaxCampuses keeps the campus octet below the ring range.
const MaxCampuses = RingOctet - CampusOctetBase

// MaxLANClients is the number of leaf /24s that fit under one LAN octet.
const MaxLANClients = 254

// tierOctet is the second octet of router links owned by a tier.
var tierOctet = map[Tier]uint8{
	Tier0:    1,
	Tier1:    2,
	TierLone: 3,
	Tier2:    4,
	Tier3:    5,
}

// End of a wire, local to a campus.
type End struct {
	Tier  Tier
	Index int
}

// Wire is a static router-to-router link within one campus.  Its subnet is
// 10+z.tierOctet(Tier).Third.0/24.
type Wire struct {
	A, B  End
	Tier  Tier
	Kind  LinkKind
	Third uint8
}

func at(t Tier, i int) End { return End{Tier: t, Index: i} }

// Adjacency of a campus, in the order links are laid down.
var Adjacency = []Wire{
	// tier0: ring of three core routers
	{A: at(Tier0, 0), B: at(Tier0, 1), Tier: Tier0, Kind: Intra, Third: 1},
	{A: at(Tier0, 1), B: at(Tier0, 2), Tier: Tier0, Kind: Intra, Third: 2},
	{A: at(Tier0, 2), B: at(Tier0, 0), Tier: Tier0, Kind: Intra, Third: 3},

	// tier1: routers 0 and 1 form the hub, 2-5 hang off them
	{A: at(Tier1, 0), B: at(Tier1, 1), Tier: Tier1, Kind: Intra, Third: 1},
	{A: at(Tier1, 2), B: at(Tier1, 0), Tier: Tier1, Kind: Intra, Third: 3},
	{A: at(Tier1, 3), B: at(Tier1, 0), Tier: Tier1, Kind: Intra, Third: 4},
	{A: at(Tier1, 4), B: at(Tier1, 1), Tier: Tier1, Kind: Intra, Third: 5},
	{A: at(Tier1, 5), B: at(Tier1, 1), Tier: Tier1, Kind: Intra, Third: 6},

	{A: at(Tier0, 1), B: at(Tier1, 0), Tier: Tier0, Kind: Inter, Third: 252},

	// tier2
	{A: at(Tier2, 0), B: at(Tier2, 1), Tier: Tier2, Kind: Intra, Third: 1},
	{A: at(Tier2, 2), B: at(Tier2, 0), Tier: Tier2, Kind: Intra, Third: 2},
	{A: at(Tier2, 1), B: at(Tier2, 3), Tier: Tier2, Kind: Intra, Third: 3},
	{A: at(Tier2, 3), B: at(Tier2, 2), Tier: Tier2, Kind: Intra, Third: 4},
	{A: at(Tier2, 4), B: at(Tier2, 2), Tier: Tier2, Kind: Intra, Third: 5},
	{A: at(Tier2, 5), B: at(Tier2, 3), Tier: Tier2, Kind: Intra, Third: 6},
	{A: at(Tier2, 6), B: at(Tier2, 5), Tier: Tier2, Kind: Intra, Third: 7},
	{A: at(Tier2, 7), B: at(Tier2, 2), Tier: Tier2, Kind: Intra, Third: 8},
	{A: at(Tier2, 8), B: at(Tier2, 3), Tier: Tier2, Kind: Intra, Third: 9},
	{A: at(Tier2, 9), B: at(Tier2, 4), Tier: Tier2, Kind: Intra, Third: 10},
	{A: at(Tier2, 10), B: at(Tier2, 5), Tier: Tier2, Kind: Intra, Third: 11},
	{A: at(Tier2, 11), B: at(Tier2, 6), Tier: Tier2, Kind: Intra, Third: 12},
	{A: at(Tier2, 12), B: at(Tier2, 6), Tier: Tier2, Kind: Intra, Third: 13},
	{A: at(Tier2, 13), B: at(Tier2, 6), Tier: Tier2, Kind: Intra, Third: 14},

	// tier3
	{A: at(Tier3, 0), B: at(Tier3, 1), Tier: Tier3, Kind: Intra, Third: 1},
	{A: at(Tier3, 1), B: at(Tier3, 2), Tier: Tier3, Kind: Intra, Third: 2},
	{A: at(Tier3, 2), B: at(Tier3, 3), Tier: Tier3, Kind: Intra, Third: 3},
	{A: at(Tier3, 3), B: at(Tier3, 1), Tier: Tier3, Kind: Intra, Third: 4},
	{A: at(Tier3, 4), B: at(Tier3, 0), Tier: Tier3, Kind: Intra, Third: 5},
	{A: at(Tier3, 5), B: at(Tier3, 0), Tier: Tier3, Kind: Intra, Third: 6},
	{A: at(Tier3, 6), B: at(Tier3, 2), Tier: Tier3, Kind: Intra, Third: 7},
	{A: at(Tier3, 7), B: at(Tier3, 3), Tier: Tier3, Kind: Intra, Third: 8},
	{A: at(Tier3, 8), B: at(Tier3, 3), Tier: Tier3, Kind: Intra, Third: 9},

	// lone routers: 0 bridges tier0 to tier2, 1 bridges tier0 to tier3
	{A: at(TierLone, 0), B: at(TierLone, 1), Tier: TierLone, Kind: Intra, Third: 1},
	{A: at(TierLone, 0), B: at(Tier0, 0), Tier: Tier0, Kind: Inter, Third: 253},
	{A: at(TierLone, 1), B: at(Tier0, 2), Tier: Tier0, Kind: Inter, Third: 254},
	{A: at(TierLone, 0), B: at(Tier2, 0), Tier: Tier2, Kind: Inter, Third: 253},
	{A: at(TierLone, 0), B: at(Tier2, 1), Tier: Tier2, Kind: Inter, Third: 254},
	{A: at(TierLone, 1), B: at(Tier3, 0), Tier: Tier3, Kind: Inter, Third: 253},
	{A: at(TierLone, 1), B: at(Tier3, 1), Tier: Tier3, Kind: Inter, Third: 254},
}

// Attachment of a tier's LAN groups: group g hangs off router FirstGateway+g.
type Attachment struct {
	Tier         Tier
	FirstGateway int
}

// Attachments in the order their leaves are created.
var Attachments = []Attachment{
	{Tier: Tier2, FirstGateway: 7},
	{Tier: Tier3, FirstGateway: 4},
}
