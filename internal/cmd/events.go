package cmd

import (
	"github.com/google/uuid"

	lab "github.com/ndn-campus/lab/pkg"
	"github.com/ndn-campus/lab/pkg/scenario"
	"github.com/ndn-campus/lab/pkg/sim"
)

// PlanChanged is pushed to websocket clients.  The first message of a
// session carries the graph; later ones carry role assignments.
type PlanChanged struct {
	Session uuid.UUID  `json:"session"`
	Graph   *sim.Graph `json:"graph,omitempty"`
	Roles   *Roles     `json:"roles,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func (pc PlanChanged) Loggable() map[string]interface{} {
	m := map[string]interface{}{
		"session": pc.Session,
	}

	if pc.Graph != nil {
		m["nodes"] = len(pc.Graph.Nodes)
	}

	if pc.Roles != nil {
		m["clients"] = len(pc.Roles.Clients)
		m["servers"] = len(pc.Roles.Servers)
	}

	return m
}

// Roles assigned by a single request.
type Roles struct {
	Seed      int64              `json:"seed"`
	Placement scenario.Placement `json:"placement"`
	Clients   lab.Population     `json:"clients"`
	Servers   lab.Population     `json:"servers"`
}

// UserEvent is read from websocket clients.
type UserEvent struct {
	Assign *AssignRequest `json:"assign,omitempty"`
}

// AssignRequest asks for a fresh client/server placement on the served
// network.  A nil Seed continues the session's PRNG.
type AssignRequest struct {
	Clients   int                `json:"clients"`
	Servers   int                `json:"servers"`
	Placement scenario.Placement `json:"placement,omitempty"`
	Seed      *int64             `json:"seed,omitempty"`
}

func (ar AssignRequest) Loggable() map[string]interface{} {
	m := map[string]interface{}{
		"event":     "assign",
		"clients":   ar.Clients,
		"servers":   ar.Servers,
		"placement": ar.Placement,
	}

	if ar.Seed != nil {
		m["seed"] = *ar.Seed
	}

	return m
}
