package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp yaml: %v", err)
	}
	return path
}

func TestLoadExperimentSpec_ValidYAML(t *testing.T) {
	yaml := `
title: Small comparison
description: Two servers, two policies.
seed: 7
servers:
  - name: S1
    bandwidth: 1000
  - name: S2
    bandwidth: 500
requests:
  count: 100
  distribution:
    type: uniform
    params:
      min: 500
      max: 1000
policies:
  - round-robin
  - least-connections
`
	path := writeTempYAML(t, yaml)
	spec, err := LoadExperimentSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "Small comparison", spec.Title)
	assert.Equal(t, uint64(7), spec.Seed)
	require.Len(t, spec.Servers, 2)
	assert.Equal(t, "S1", spec.Servers[0].Name)
	assert.Equal(t, float64(500), spec.Servers[1].Bandwidth)
	assert.Equal(t, 100, spec.Requests.Count)
	assert.Equal(t, "uniform", spec.Requests.Distribution.Type)
	assert.Equal(t, []string{"round-robin", "least-connections"}, spec.Policies)
	assert.NoError(t, spec.Validate())
}

func TestLoadExperimentSpec_UnknownField_Rejected(t *testing.T) {
	yaml := `
title: Bad spec
servers:
  - name: S1
    bandwidth: 1000
    weight: 3
`
	path := writeTempYAML(t, yaml)
	_, err := LoadExperimentSpec(path)
	assert.Error(t, err, "strict decoding must reject unknown fields")
}

func TestLoadExperimentSpec_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadExperimentSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExperimentSpec_Validate_Errors(t *testing.T) {
	base := func() *ExperimentSpec { return DefaultSpec() }

	cases := []struct {
		name    string
		mutate  func(*ExperimentSpec)
		sentinel error
	}{
		{"no servers", func(s *ExperimentSpec) { s.Servers = nil }, ErrEmptyServerPool},
		{"empty server name", func(s *ExperimentSpec) { s.Servers[0].Name = "" }, nil},
		{"duplicate server name", func(s *ExperimentSpec) { s.Servers[1].Name = s.Servers[0].Name }, nil},
		{"non-positive bandwidth", func(s *ExperimentSpec) { s.Servers[0].Bandwidth = 0 }, nil},
		{"non-positive count", func(s *ExperimentSpec) { s.Requests.Count = 0 }, nil},
		{"no policies", func(s *ExperimentSpec) { s.Policies = nil }, nil},
		{"unknown policy", func(s *ExperimentSpec) { s.Policies = []string{"fastest-first"} }, ErrUnknownPolicy},
		{"bad distribution", func(s *ExperimentSpec) { s.Requests.Distribution.Type = "zipf" }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := base()
			tc.mutate(spec)
			err := spec.Validate()
			require.Error(t, err)
			if tc.sentinel != nil {
				assert.True(t, errors.Is(err, tc.sentinel), "want %v in chain, got %v", tc.sentinel, err)
			}
		})
	}
}

func TestDefaultSpec_IsValid(t *testing.T) {
	spec := DefaultSpec()
	require.NoError(t, spec.Validate())
	assert.Len(t, spec.Servers, 4)
	assert.Equal(t, 1000, spec.Requests.Count)
	assert.Equal(t, AvailablePolicies(), spec.Policies)
}
