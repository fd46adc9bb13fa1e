package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/balance-sim/balance-sim/sim"
)

func TestBuildSpec_FlagDefaults_MatchDefaultExperiment(t *testing.T) {
	spec, err := buildSpec()
	require.NoError(t, err)
	require.NoError(t, spec.Validate())

	assert.Equal(t, uint64(42), spec.Seed)
	assert.Equal(t, 1000, spec.Requests.Count)
	assert.Equal(t, float64(500), spec.Requests.Distribution.Params["min"])
	assert.Equal(t, float64(1000), spec.Requests.Distribution.Params["max"])
	assert.Equal(t, sim.AvailablePolicies(), spec.Policies)
}

func TestBuildSpec_PolicyFlagOverridesDefaults(t *testing.T) {
	policies = []string{"round-robin"}
	defer func() { policies = nil }()

	spec, err := buildSpec()
	require.NoError(t, err)
	assert.Equal(t, []string{"round-robin"}, spec.Policies)
	require.NoError(t, spec.Validate())
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"], "run subcommand must be registered")
	assert.True(t, names["policies"], "policies subcommand must be registered")
}
