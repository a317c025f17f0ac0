package domain

import "fmt"

// SourceError records one recovered failure during a run, attributed to the
// source (or stage) it came from.
type SourceError struct {
	Source  string
	Message string
}

func (e SourceError) String() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// IngestReport is the structured summary returned for every ingestion run.
// Partial failures live in Errors; the run itself still completes.
type IngestReport struct {
	Imported int
	Skipped  int
	Errors   []SourceError
}

// CommitResult describes the outcome of one continue-on-error bulk insert.
type CommitResult struct {
	Inserted   int
	Duplicates int
	Errors     []SourceError
}

// StoreUnavailableError marks the one fatal condition of a run: the store
// could not be reached at commit time.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}
