// Package report persists an experiment Report as a structured JSON document
// and renders the per-server comparison chart.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/balance-sim/balance-sim/sim"
)

// document is the on-disk JSON schema.
type document struct {
	MetaInfo meta                     `json:"metainfo"`
	Requests []requestEntry           `json:"requests"`
	Summary  map[string]policySummary `json:"summary"`
}

type meta struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Servers      []serverIdent `json:"servers"`
	TotalRequest int           `json:"total_request"`
	Algorithms   []string      `json:"algorithms"`
}

type serverIdent struct {
	Name      string  `json:"name"`
	Bandwidth float64 `json:"bandwidth"`
}

type requestEntry struct {
	RequestID int            `json:"request_id"`
	Size      float64        `json:"size"`
	Algorithm []outcomeEntry `json:"algorithm"`
}

type outcomeEntry struct {
	Name    string  `json:"name"`
	Server  string  `json:"server"`
	Latency float64 `json:"latency"`
	Time    float64 `json:"time"`
}

type policySummary struct {
	AverageLatency float64        `json:"average_latency"`
	Throughput     float64        `json:"throughput"`
	FairnessIndex  float64        `json:"fairness_index"`
	Servers        []serverRecord `json:"servers"`
}

type serverRecord struct {
	Server        string  `json:"server"`
	Bandwidth     float64 `json:"bandwidth"`
	AvgLatency    float64 `json:"avg_latency"`
	AvgTime       float64 `json:"avg_time"`
	TotalRequests int     `json:"total_requests"`
}

// build maps a sim.Report onto the JSON document shape.
func build(rep *sim.Report) *document {
	doc := &document{
		MetaInfo: meta{
			Title:        rep.Title,
			Description:  rep.Description,
			TotalRequest: rep.Trace.Len(),
			Algorithms:   rep.Policies,
		},
		Summary: make(map[string]policySummary, len(rep.Runs)),
	}
	for _, s := range rep.Servers {
		doc.MetaInfo.Servers = append(doc.MetaInfo.Servers, serverIdent{Name: s.Name, Bandwidth: s.Bandwidth})
	}
	for _, rt := range rep.Trace.Requests() {
		entry := requestEntry{
			RequestID: rt.RequestID,
			Size:      rt.Size,
			Algorithm: make([]outcomeEntry, 0, len(rt.Records)),
		}
		for _, rec := range rt.Records {
			entry.Algorithm = append(entry.Algorithm, outcomeEntry{
				Name:    rec.Policy,
				Server:  rec.Server,
				Latency: rec.Latency,
				Time:    rec.Elapsed,
			})
		}
		doc.Requests = append(doc.Requests, entry)
	}
	for _, run := range rep.Runs {
		ps := policySummary{
			AverageLatency: run.Metrics.AverageLatency,
			Throughput:     run.Metrics.Throughput,
			FairnessIndex:  run.Metrics.FairnessIndex,
			Servers:        make([]serverRecord, 0, len(run.Servers)),
		}
		for _, s := range run.Servers {
			ps.Servers = append(ps.Servers, serverRecord{
				Server:        s.Name,
				Bandwidth:     s.Bandwidth,
				AvgLatency:    s.AvgLatency,
				AvgTime:       s.AvgTime,
				TotalRequests: s.TotalRequests,
			})
		}
		doc.Summary[run.Policy] = ps
	}
	return doc
}

// Write persists the report as indented JSON at path.
func Write(path string, rep *sim.Report) error {
	data, err := json.MarshalIndent(build(rep), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	logrus.Debugf("report written to %s", path)
	return nil
}

// NextChartPath returns the first free try<N>.png path under dir, starting at
// try1.png, creating dir if needed.
func NextChartPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating chart dir %s: %w", dir, err)
	}
	for i := 1; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("try%d.png", i))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("probing chart path %s: %w", path, err)
		}
	}
}
