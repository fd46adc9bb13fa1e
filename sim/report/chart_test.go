package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balance-sim/balance-sim/sim"
)

func TestRenderChart_WritesPNG(t *testing.T) {
	rep := testReport(t)
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, RenderChart(path, rep))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderChart_EmptyReport_ReturnsError(t *testing.T) {
	err := RenderChart(filepath.Join(t.TempDir(), "chart.png"), &sim.Report{})
	assert.Error(t, err)
}
