package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/lthibault/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ndn-campus/lab/pkg/results"
	"github.com/ndn-campus/lab/pkg/scenario"
	"github.com/ndn-campus/lab/pkg/topology"
)

func quietLogger() *Logger {
	return &Logger{log.New(log.WithLevel(log.FatalLevel))}
}

func runApp(t *testing.T, out io.Writer, c *cli.Command, args ...string) error {
	t.Helper()

	app := &cli.App{
		Name:           "campus",
		Writer:         out,
		Commands:       []*cli.Command{c},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app.Run(append([]string{"campus", c.Name}, args...))
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
campuses = 4
lan_clients = 8
clients = 4
`), 0o644))

	var cfg scenario.Config
	c := &cli.Command{
		Name:  "load",
		Flags: scenarioFlags(),
		Action: func(c *cli.Context) (err error) {
			cfg, err = loadConfig(c)
			return
		},
	}

	require.NoError(t, runApp(t, io.Discard, c,
		"--config", path,
		"--clients", "6",
		"--seed", "12",
		"--placement", "random"))

	assert.Equal(t, 4, cfg.Campuses, "file value should be kept")
	assert.Equal(t, 8, cfg.LANClients)
	assert.Equal(t, 6, cfg.Clients, "flag should override file")
	assert.Equal(t, scenario.Random, cfg.Placement)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(12), *cfg.Seed)

	assert.Error(t, runApp(t, io.Discard, c, "--campuses", "0"))
}

func TestPlanCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, runApp(t, &buf, Plan(quietLogger()),
		"--campuses", "2", "--lan", "1", "--graph"))

	var g struct {
		Nodes []json.RawMessage `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &g))
	assert.Len(t, g.Nodes, 2*(34+12))
	assert.Len(t, g.Links, 2*(len(topology.Adjacency)+12)+2)

	buf.Reset()
	require.NoError(t, runApp(t, &buf, Plan(quietLogger()),
		"--campuses", "1", "--lan", "1", "--addresses"))
	assert.Contains(t, buf.String(), "10.1.252.0/24")
}

func TestAssignCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, runApp(t, io.Discard, Assign(quietLogger()),
		"--campuses", "2",
		"--lan", "4",
		"--clients", "5",
		"--servers", "2",
		"--seed", "1",
		"--results", dir))

	k := results.Key{Prefix: "disaster-tcp", Campuses: 2, Servers: 2, Clients: 5}

	f, err := os.Open(results.Filename(dir, "clients", k))
	require.NoError(t, err)
	defer f.Close()

	clients, err := results.ReadIDs(f)
	require.NoError(t, err)
	assert.Len(t, clients, 5)

	f, err = os.Open(results.Filename(dir, "servers", k))
	require.NoError(t, err)
	defer f.Close()

	servers, err := results.ReadIDs(f)
	require.NoError(t, err)
	assert.Len(t, servers, 2)
}

func newTestServer(t *testing.T) (*server, *httptest.Server) {
	t.Helper()

	cfg := scenario.Default()
	cfg.Campuses = 2
	cfg.LANClients = 3

	reg := prometheus.NewRegistry()
	s, err := newServer(quietLogger(), cfg, reg)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router(reg))
	t.Cleanup(ts.Close)
	return s, ts
}

func TestServePlan(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/plan")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var g struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&g))
	assert.Len(t, g.Nodes, len(s.net.Nodes()))

	res, err = http.Get(ts.URL + "/addresses")
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "254.1.2.0/24")
}

func TestServeAssign(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t)

	get := func(q string) (*http.Response, Roles) {
		res, err := http.Get(ts.URL + "/assign?" + q)
		require.NoError(t, err)
		defer res.Body.Close()

		var roles Roles
		if res.StatusCode == http.StatusOK {
			require.NoError(t, json.NewDecoder(res.Body).Decode(&roles))
		}
		return res, roles
	}

	res, a := get("clients=4&servers=2&seed=5")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, a.Clients, 4)
	assert.Len(t, a.Servers, 2)
	assert.Equal(t, int64(5), a.Seed)

	leaves := s.net.Leaves()
	for _, id := range a.Clients {
		assert.True(t, leaves.Contains(id))
	}

	_, b := get("clients=4&servers=2&seed=5")
	assert.Equal(t, a, b, "same seed should give the same roles")

	res, _ = get("servers=13")
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode,
		"only 12 tier1 routers exist")

	res, _ = get("clients=x")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = get("placement=nowhere")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestServeEvents(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello PlanChanged
	require.NoError(t, conn.ReadJSON(&hello))
	require.NotNil(t, hello.Graph)
	assert.NotEmpty(t, hello.Graph.Nodes)

	seed := int64(3)
	require.NoError(t, conn.WriteJSON(UserEvent{Assign: &AssignRequest{
		Clients:   10,
		Servers:   10,
		Placement: scenario.Random,
		Seed:      &seed,
	}}))

	var got PlanChanged
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, hello.Session, got.Session)
	require.NotNil(t, got.Roles)
	assert.Empty(t, got.Error)
	assert.Len(t, got.Roles.Clients, 10)
	assert.Len(t, got.Roles.Servers, 10)

	require.NoError(t, conn.WriteJSON(UserEvent{Assign: &AssignRequest{Clients: 1000}}))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Contains(t, got.Error, "insufficient population")
}

func TestServeMetrics(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/assign?clients=1&servers=1")
	require.NoError(t, err)
	res.Body.Close()

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "campus_plan_campuses 2")
	assert.Contains(t, string(b), `campus_assignments_total{outcome="ok",placement="filtered"} 1`)
}

func TestServeMetricsInvalid(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	for _, q := range []string{"placement=nowhere", "clients=-1"} {
		res, err := http.Get(ts.URL + "/assign?" + q)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, q)
	}

	res, err := http.Get(ts.URL + "/assign?servers=13")
	require.NoError(t, err)
	res.Body.Close()

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `campus_assignments_total{outcome="invalid",placement="unknown"} 1`)
	assert.Contains(t, string(b), `campus_assignments_total{outcome="invalid",placement="filtered"} 1`)
	assert.Contains(t, string(b), `campus_assignments_total{outcome="error",placement="filtered"} 1`)
}
