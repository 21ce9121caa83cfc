package sample_test

import (
	"errors"
	"testing"

	mapset "github.com/deckarep/golang-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lab "github.com/ndn-campus/lab/pkg"
	"github.com/ndn-campus/lab/pkg/sample"
)

func TestSamplerDisjoint(t *testing.T) {
	t.Parallel()

	ps := population(10)
	s := sample.New(lab.NewSource(11), ps)

	clients, err := s.Assign(sample.RoleClient, 3)
	require.NoError(t, err)
	servers, err := s.Assign(sample.RoleServer, 3)
	require.NoError(t, err)

	union := mapset.NewThreadUnsafeSet()
	for _, id := range append(clients, servers...) {
		union.Add(id)
	}
	assert.Equal(t, 6, union.Cardinality(), "roles should not overlap")
	assert.Len(t, s.Remaining(), 4)

	a := s.Assignment()
	assert.Equal(t, []string{sample.RoleClient, sample.RoleServer}, a.Roles())
	assert.Equal(t, clients, a.Clients())
	assert.Equal(t, servers, a.Servers())
	assert.NoError(t, a.Validate(ps))
}

func TestSamplerInsufficient(t *testing.T) {
	t.Parallel()

	s := sample.New(lab.NewSource(1), population(5))
	_, err := s.Assign(sample.RoleClient, 4)
	require.NoError(t, err)

	_, err = s.Assign(sample.RoleServer, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sample.ErrInsufficientPopulation))

	var ipe *sample.InsufficientPopulationError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, sample.RoleServer, ipe.Role)
	assert.Equal(t, 1, ipe.Available)

	assert.Len(t, s.Remaining(), 1, "failed draw should leave the pool untouched")
	assert.Equal(t, []string{sample.RoleClient}, s.Assignment().Roles())
}

func TestSamplerDuplicateRole(t *testing.T) {
	t.Parallel()

	s := sample.New(lab.NewSource(1), population(5))
	_, err := s.Assign(sample.RoleClient, 1)
	require.NoError(t, err)

	_, err = s.Assign(sample.RoleClient, 1)
	assert.Error(t, err)
	assert.Len(t, s.Remaining(), 4)
}

func TestSamplerOwnsPopulation(t *testing.T) {
	t.Parallel()

	ps := population(6)
	s := sample.New(lab.NewSource(5), ps)
	ps[0] = 99

	selected, err := s.Assign(sample.RoleClient, 6)
	require.NoError(t, err)
	assert.NotContains(t, selected, lab.NodeID(99))

	selected[0] = 42
	assert.NotEqual(t, selected, s.Assignment().Clients(),
		"callers should not be able to alias the assignment")
}

func TestClientsAndServers(t *testing.T) {
	t.Parallel()

	ps := population(30)
	for seed := int64(0); seed < 25; seed++ {
		a, err := sample.ClientsAndServers(lab.NewSource(seed), ps, 10, 20)
		require.NoError(t, err)
		assert.Len(t, a.Clients(), 10)
		assert.Len(t, a.Servers(), 20)
		require.NoError(t, a.Validate(ps))
	}

	_, err := sample.ClientsAndServers(lab.NewSource(1), ps, 10, 21)
	assert.True(t, errors.Is(err, sample.ErrInsufficientPopulation))
}

func TestAssignmentValidate(t *testing.T) {
	t.Parallel()

	a, err := sample.ClientsAndServers(lab.NewSource(2), population(8), 2, 2)
	require.NoError(t, err)

	assert.Error(t, a.Validate(population(2)),
		"nodes outside the origin should be rejected")
	assert.Equal(t, map[string]interface{}{
		sample.RoleClient: 2,
		sample.RoleServer: 2,
	}, a.Loggable())
}
