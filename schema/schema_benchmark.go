package schema

// BenchmarkSummary reports which metrics a benchmark run changed.
// Entries are metric display names in catalog order.
type BenchmarkSummary struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
}

// BenchmarkChange describes the old and new ranges of one metric for previews.
type BenchmarkChange struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Unit    Unit   `json:"unit,omitempty"`
	Updated bool   `json:"updated"`
	Before  Ranges `json:"before"`
	After   Ranges `json:"after"`
}
