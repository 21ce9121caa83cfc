// Package sim contains the JSON graph model handed to visualisation and
// network-builder front ends.
package sim

import "encoding/json"

// Graph in node-link form.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []*Link `json:"links"`
}

func (g Graph) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"type":  "graph",
		"nodes": len(g.Nodes),
		"links": len(g.Links),
	}
}

// Marshal the graph as JSON.
func (g Graph) Marshal() ([]byte, error) {
	return json.Marshal(g)
}

// Node in the graph.  Group is used by front ends to color nodes by tier.
type Node struct {
	ID     string `json:"id"`
	Group  int    `json:"group"`
	Campus int    `json:"campus"`
}

func (n Node) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"type":   "node",
		"id":     n.ID,
		"group":  n.Group,
		"campus": n.Campus,
	}
}

// Link between two nodes.  Value carries the link kind.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
	Subnet string `json:"subnet,omitempty"`
}

func (l Link) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"type":   "link",
		"source": l.Source,
		"target": l.Target,
		"value":  l.Value,
		"subnet": l.Subnet,
	}
}
