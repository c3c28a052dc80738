package constants

// RunState is the canonical state of an extraction run.
type RunState string

// Stable values (reported in logs and summaries).
const (
	RunStatePending    RunState = "PENDING"    // documents queued, nothing attempted yet
	RunStateProcessing RunState = "PROCESSING" // a document is being worked on
	RunStateDone       RunState = "DONE"       // every document attempted exactly once
)
