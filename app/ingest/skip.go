package ingest

import "fmt"

// SkipReason classifies why a single record was dropped during ingestion.
// Skips are recoverable by design: the record is counted and the batch moves on.
type SkipReason string

const (
	// SkipMissingField: a required key was absent from the upstream payload.
	SkipMissingField SkipReason = "missing_field"
	// SkipInvalidField: a field failed validation after normalization.
	SkipInvalidField SkipReason = "invalid_field"
	// SkipDuplicate: the record already exists (create-once semantics).
	SkipDuplicate SkipReason = "duplicate"
	// SkipDataError: the store rejected the record (integrity or size violation).
	SkipDataError SkipReason = "data_error"
)

// SkipError is the tagged per-record failure threaded back to the
// orchestrator's skip counters instead of being silently swallowed.
type SkipError struct {
	Reason SkipReason
	Field  string
	Err    error
}

func (e *SkipError) Error() string {
	msg := fmt.Sprintf("record skipped (%s)", e.Reason)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// Stats accumulates the outcome of one ingestion run.
type Stats struct {
	CategoriesCreated int
	ProductsCreated   int
	LinksCreated      int
	LinksSkipped      int
	Skipped           map[SkipReason]int
}

func newStats() *Stats {
	return &Stats{Skipped: make(map[SkipReason]int)}
}

func (s *Stats) skip(reason SkipReason) {
	s.Skipped[reason]++
}
