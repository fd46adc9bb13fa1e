package trace

// Summary aggregates statistics from an ExperimentTrace.
type Summary struct {
	TotalRequests      int
	TotalRecords       int
	Policies           int                       // distinct policies seen across records
	TargetDistribution map[string]map[string]int // policy → server name → requests routed
}

// Summarize computes aggregate statistics from an ExperimentTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *ExperimentTrace) *Summary {
	summary := &Summary{
		TargetDistribution: make(map[string]map[string]int),
	}
	if t == nil {
		return summary
	}

	summary.TotalRequests = len(t.requests)
	for _, rt := range t.requests {
		for _, rec := range rt.Records {
			summary.TotalRecords++
			byServer, ok := summary.TargetDistribution[rec.Policy]
			if !ok {
				byServer = make(map[string]int)
				summary.TargetDistribution[rec.Policy] = byServer
			}
			byServer[rec.Server]++
		}
	}
	summary.Policies = len(summary.TargetDistribution)

	return summary
}
