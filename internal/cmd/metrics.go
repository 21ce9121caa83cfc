package cmd

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ndn-campus/lab/pkg/scenario"
	"github.com/ndn-campus/lab/pkg/topology"
)

type metrics struct {
	Campuses    prometheus.Gauge
	Nodes       prometheus.Gauge
	Links       prometheus.Gauge
	Assignments *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		Campuses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campus_plan_campuses",
			Help: "Number of campuses in the served plan.",
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campus_plan_nodes",
			Help: "Number of nodes in the served plan.",
		}),
		Links: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campus_plan_links",
			Help: "Number of links, and therefore /24 blocks, in the served plan.",
		}),
		Assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_assignments_total",
			Help: "Role assignment requests, labeled by placement and outcome (ok, error, invalid).",
		}, []string{"placement", "outcome"}),
	}

	for name, c := range map[string]prometheus.Collector{
		"campus_plan_campuses":     m.Campuses,
		"campus_plan_nodes":        m.Nodes,
		"campus_plan_links":        m.Links,
		"campus_assignments_total": m.Assignments,
	} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(err, "register %s", name)
		}
	}

	return m, nil
}

func (m *metrics) Observe(n *topology.Network) {
	m.Campuses.Set(float64(len(n.Campuses)))
	m.Nodes.Set(float64(len(n.Nodes())))
	m.Links.Set(float64(len(n.Addresses)))
}

// observe an assignment request.  Placements outside the known set share
// the "unknown" label.
func (m *metrics) observe(p scenario.Placement, outcome string) {
	switch p {
	case scenario.Filtered, scenario.Random:
	default:
		p = "unknown"
	}

	m.Assignments.WithLabelValues(string(p), outcome).Inc()
}
