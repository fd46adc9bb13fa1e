package trace

import "testing"

func TestSummarize_NilTrace_ReturnsZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalRequests != 0 || summary.TotalRecords != 0 || summary.Policies != 0 {
		t.Errorf("Summarize(nil): got %+v, want zero values", summary)
	}
	if summary.TargetDistribution == nil {
		t.Error("TargetDistribution must be non-nil even for nil traces")
	}
}

func TestSummarize_CountsPerPolicyPerServer(t *testing.T) {
	// GIVEN three requests traced under two policies
	tr := New([]float64{500, 600, 700})
	tr.Record(1, Record{Policy: "round-robin", Server: "S1"})
	tr.Record(2, Record{Policy: "round-robin", Server: "S2"})
	tr.Record(3, Record{Policy: "round-robin", Server: "S1"})
	tr.Record(1, Record{Policy: "least-connections", Server: "S2"})
	tr.Record(2, Record{Policy: "least-connections", Server: "S2"})
	tr.Record(3, Record{Policy: "least-connections", Server: "S1"})

	// WHEN the trace is summarized
	summary := Summarize(tr)

	// THEN counts are grouped by policy then server
	if summary.TotalRequests != 3 {
		t.Errorf("TotalRequests: got %d, want 3", summary.TotalRequests)
	}
	if summary.TotalRecords != 6 {
		t.Errorf("TotalRecords: got %d, want 6", summary.TotalRecords)
	}
	if summary.Policies != 2 {
		t.Errorf("Policies: got %d, want 2", summary.Policies)
	}
	if got := summary.TargetDistribution["round-robin"]["S1"]; got != 2 {
		t.Errorf("round-robin→S1: got %d, want 2", got)
	}
	if got := summary.TargetDistribution["least-connections"]["S2"]; got != 2 {
		t.Errorf("least-connections→S2: got %d, want 2", got)
	}
}
