package domain

// SourceOutcome is the per-source result of one aggregation run.
// Status is either "ok" or "error: <message>".
type SourceOutcome struct {
	Fetched int
	Status  string
}

// RunSummary is the outcome of one aggregation run across some subset of
// sources: per-source outcomes plus the aggregate insert statistics.
type RunSummary struct {
	Sources           map[string]SourceOutcome
	Fetched           int
	Inserted          int
	SkippedDuplicates int
}

// StatusOK marks a source whose fetch completed without error.
const StatusOK = "ok"
