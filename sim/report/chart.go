package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/balance-sim/balance-sim/sim"
)

// RenderChart draws the per-server average processing latency as grouped bars,
// one group per server and one bar per policy, and saves a PNG at path.
func RenderChart(path string, rep *sim.Report) error {
	if len(rep.Runs) == 0 {
		return fmt.Errorf("render chart: report has no runs")
	}

	p := plot.New()
	p.Title.Text = rep.Title
	p.Y.Label.Text = "average processing latency (s)"

	barWidth := vg.Points(15)
	// Center each policy's bars within its server group.
	firstOffset := -float64(len(rep.Runs)-1) / 2

	for i, run := range rep.Runs {
		values := make(plotter.Values, len(run.Servers))
		for j, s := range run.Servers {
			values[j] = s.AvgLatency
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return fmt.Errorf("bar chart for %q: %w", run.Policy, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Points((firstOffset + float64(i)) * 15)
		p.Add(bars)
		p.Legend.Add(run.Policy, bars)
	}

	labels := make([]string, len(rep.Servers))
	for i, s := range rep.Servers {
		labels[i] = fmt.Sprintf("%s\n%.0f B/s", s.Name, s.Bandwidth)
	}
	p.NominalX(labels...)
	p.Legend.Top = true

	if err := p.Save(14*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}
