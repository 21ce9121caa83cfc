package topology

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tier of a node within a campus.
type Tier uint8

const (
	Tier0    Tier = iota // core ring
	Tier1                // distribution
	Tier2                // access, seven LANs
	Tier3                // access, five LANs
	TierLone             // lone routers bridging tier0 to tiers 2 and 3
	TierLeaf             // LAN leaf nodes
)

func (t Tier) String() string {
	switch t {
	case Tier0:
		return "tier0"
	case Tier1:
		return "tier1"
	case Tier2:
		return "tier2"
	case Tier3:
		return "tier3"
	case TierLone:
		return "lone"
	case TierLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
}

// LinkKind classifies a link.
type LinkKind uint8

const (
	Intra LinkKind = iota // router link inside a tier
	Inter                 // router link between tiers
	LAN                   // leaf to LAN gateway
	Ring                  // inter-campus ring
)

func (k LinkKind) String() string {
	switch k {
	case Intra:
		return "intra"
	case Inter:
		return "inter"
	case LAN:
		return "lan"
	case Ring:
		return "ring"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ErrConfiguration is matched by every *ConfigError.
var ErrConfiguration = errors.New("invalid topology spec")

// ConfigError reports a structurally invalid Spec.  It is returned before
// any node or link is built.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%d: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// Spec configures the planner.  Use NewSpec to obtain one with the fixed
// per-tier counts filled in.
type Spec struct {
	Campuses   int
	LANClients int

	Tier0Routers int
	Tier1Routers int
	Tier2Routers int
	Tier3Routers int
	LoneRouters  int
	Tier2LANs    int
	Tier3LANs    int
}

// NewSpec for the given number of campuses and leaves per LAN group.
func NewSpec(campuses, lanClients int) Spec {
	return Spec{
		Campuses:     campuses,
		LANClients:   lanClients,
		Tier0Routers: Tier0Routers,
		Tier1Routers: Tier1Routers,
		Tier2Routers: Tier2Routers,
		Tier3Routers: Tier3Routers,
		LoneRouters:  LoneRouters,
		Tier2LANs:    Tier2LANs,
		Tier3LANs:    Tier3LANs,
	}
}

// Loggable representation of the spec
func (s Spec) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"campuses":    s.Campuses,
		"lan_clients": s.LANClients,
	}
}

// Validate the spec.
func (s Spec) Validate() error {
	for _, f := range s.fields() {
		if f.value <= 0 {
			return &ConfigError{Field: f.name, Value: f.value, Reason: "must be positive"}
		}
	}

	for _, f := range s.fields()[2:] {
		if f.value != f.fixed {
			return &ConfigError{
				Field:  f.name,
				Value:  f.value,
				Reason: fmt.Sprintf("campus adjacency is laid out for %d", f.fixed),
			}
		}
	}

	if s.Campuses > MaxCampuses {
		return &ConfigError{
			Field:  "campuses",
			Value:  s.Campuses,
			Reason: fmt.Sprintf("at most %d campuses fit below the ring range", MaxCampuses),
		}
	}

	if s.LANClients > MaxLANClients {
		return &ConfigError{
			Field:  "lan_clients",
			Value:  s.LANClients,
			Reason: fmt.Sprintf("at most %d leaves fit in a LAN group", MaxLANClients),
		}
	}

	return nil
}

// NodesPerCampus is the number of nodes a single campus contributes.
func (s Spec) NodesPerCampus() int {
	return s.Tier0Routers + s.Tier1Routers + s.Tier2Routers + s.Tier3Routers +
		s.LoneRouters + (s.Tier2LANs+s.Tier3LANs)*s.LANClients
}

func (s Spec) lans(t Tier) int {
	if t == Tier2 {
		return s.Tier2LANs
	}
	return s.Tier3LANs
}

type field struct {
	name         string
	value, fixed int
}

func (s Spec) fields() []field {
	return []field{
		{"campuses", s.Campuses, 0},
		{"lan_clients", s.LANClients, 0},
		{"tier0_routers", s.Tier0Routers, Tier0Routers},
		{"tier1_routers", s.Tier1Routers, Tier1Routers},
		{"tier2_routers", s.Tier2Routers, Tier2Routers},
		{"tier3_routers", s.Tier3Routers, Tier3Routers},
		{"lone_routers", s.LoneRouters, LoneRouters},
		{"tier2_lans", s.Tier2LANs, Tier2LANs},
		{"tier3_lans", s.Tier3LANs, Tier3LANs},
	}
}
