package lab

import (
	"math/rand"
	"os"
	"time"
)

// NodeID identifies a simulated node.  It matches the id the simulator
// assigns at creation time, so it is stable for the lifetime of a scenario.
type NodeID uint32

// Population is an ordered set of nodes.
type Population []NodeID

func (ps Population) Len() int {
	return len(ps)
}

func (ps Population) Less(i, j int) bool {
	return ps[i] < ps[j]
}

func (ps Population) Swap(i, j int) {
	ps[i], ps[j] = ps[j], ps[i]
}

// Clone returns a copy of ps that shares no memory with it.
func (ps Population) Clone() Population {
	copied := make(Population, len(ps))
	copy(copied, ps)
	return copied
}

// Contains reports whether id is a member of ps.
func (ps Population) Contains(id NodeID) bool {
	for _, x := range ps {
		if x == id {
			return true
		}
	}
	return false
}

// Loggable representation of the population
func (ps Population) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"size": len(ps),
	}
}

// Source of uniformly distributed integers.  *rand.Rand satisfies Source.
//
// A Source is not safe for concurrent use; each scenario run owns one.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewSource returns a PRNG seeded with seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DefaultSeed derives a seed from the wall clock and the process id.
func DefaultSeed() int64 {
	return time.Now().UnixNano() ^ int64(os.Getpid())<<32
}
