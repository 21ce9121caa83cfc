package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	lab "github.com/ndn-campus/lab/pkg"
	"github.com/ndn-campus/lab/pkg/sample"
	"github.com/ndn-campus/lab/pkg/scenario"
	"github.com/ndn-campus/lab/pkg/sim"
	"github.com/ndn-campus/lab/pkg/topology"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// Serve command
func Serve(log *Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the planned network to visualisation and builder clients",
		Flags: append(scenarioFlags(),
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "listen address",
				Value:   "localhost:2021",
				EnvVars: []string{"CAMPUS_ADDR"},
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}

			reg := prometheus.NewRegistry()
			svr, err := newServer(log, cfg, reg)
			if err != nil {
				return cli.Exit(err, 1)
			}

			l, err := net.Listen("tcp", c.String("addr"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			log = log.WithField("addr", l.Addr().String())
			log.With(svr.net).Info("server started")

			s := http.Server{Addr: c.String("addr"), Handler: svr.Router(reg)}
			if err = s.Serve(l); err != http.ErrServerClosed {
				return cli.Exit(err, 1)
			}

			return nil
		},
	}
}

type server struct {
	log     *Logger
	cfg     scenario.Config
	net     *topology.Network
	graph   sim.Graph
	metrics *metrics
}

func newServer(log *Logger, cfg scenario.Config, reg prometheus.Registerer) (*server, error) {
	n, err := topology.Plan(cfg.Spec())
	if err != nil {
		return nil, err
	}

	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	m.Observe(n)

	return &server{
		log:     log,
		cfg:     cfg,
		net:     n,
		graph:   n.Graph(),
		metrics: m,
	}, nil
}

// Router for the server's endpoints.  Metrics are gathered from g.
func (s *server) Router(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer r.Body.Close()
			defer io.Copy(io.Discard, r.Body)

			lw := newLogWriter(w)
			next.ServeHTTP(lw, r)
			s.log.WithRequest(r).With(lw).Debug("request served")
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/plan", http.StatusMovedPermanently)
	})
	r.Get("/plan", s.ServePlan)
	r.Get("/addresses", s.ServeAddresses)
	r.Get("/assign", s.ServeAssign)
	r.Get("/events", s.ServeEvents)
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	return r
}

func (s *server) ServePlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.graph)
}

func (s *server) ServeAddresses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := s.net.Addresses.WriteTo(w); err != nil {
		s.log.WithRequest(r).WithError(err).Error("failed to write address plan")
	}
}

// ServeAssign places roles for a single request.  Each request is its own
// run and gets its own PRNG.
func (s *server) ServeAssign(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		req AssignRequest
		err error
	)

	if req.Clients, err = queryInt(q.Get("clients")); err != nil {
		http.Error(w, "clients: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Servers, err = queryInt(q.Get("servers")); err != nil {
		http.Error(w, "servers: "+err.Error(), http.StatusBadRequest)
		return
	}

	req.Placement = scenario.Placement(q.Get("placement"))

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "seed: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Seed = &seed
	}

	seed := lab.DefaultSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	roles, err := s.assign(req, seed, lab.NewSource(seed))
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	writeJSON(w, http.StatusOK, roles)
}

// ServeEvents upgrades to a websocket, pushes the graph, then answers
// assign requests until the client goes away.  The session owns a single
// PRNG; requests without a seed continue its sequence.
func (s *server) ServeEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithRequest(r).WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	var (
		id   = uuid.New()
		log  = s.log.WithSession(id)
		seed = lab.DefaultSeed()
		rng  = lab.NewSource(seed)
	)

	if err = conn.WriteJSON(PlanChanged{Session: id, Graph: &s.graph}); err != nil {
		log.WithError(err).Error("failed to send graph")
		return
	}

	if err = s.handleUserEvents(conn, log, id, seed, rng); err != nil && !isClosed(err) {
		log.WithError(err).Error("session aborted")
	}
}

func (s *server) handleUserEvents(conn *websocket.Conn, log *Logger, id uuid.UUID, seed int64, rng lab.Source) error {
	for {
		var ev UserEvent
		if err := conn.ReadJSON(&ev); err != nil {
			return err
		}

		if ev.Assign == nil {
			continue
		}

		log.With(ev.Assign).Info("got user event")

		src, sd := rng, seed
		if ev.Assign.Seed != nil {
			sd = *ev.Assign.Seed
			src = lab.NewSource(sd)
		}

		out := PlanChanged{Session: id}
		roles, err := s.assign(*ev.Assign, sd, src)
		if err != nil {
			log.WithError(err).Warn("assignment failed")
			out.Error = err.Error()
		} else {
			out.Roles = roles
		}

		if err = conn.WriteJSON(out); err != nil {
			return err
		}
	}
}

func (s *server) assign(req AssignRequest, seed int64, rng lab.Source) (*Roles, error) {
	cfg := s.cfg
	cfg.Clients = req.Clients
	cfg.Servers = req.Servers
	if req.Placement != "" {
		cfg.Placement = req.Placement
	}

	if err := cfg.Validate(); err != nil {
		s.metrics.observe(cfg.Placement, "invalid")
		return nil, err
	}

	a, err := scenario.Place(cfg, s.net, rng)
	if err != nil {
		s.metrics.observe(cfg.Placement, "error")
		return nil, err
	}
	s.metrics.observe(cfg.Placement, "ok")

	return &Roles{
		Seed:      seed,
		Placement: cfg.Placement,
		Clients:   a.Clients(),
		Servers:   a.Servers(),
	}, nil
}

func statusOf(err error) int {
	if errors.Is(err, sample.ErrInsufficientPopulation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived) || errors.Is(err, io.EOF)
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
