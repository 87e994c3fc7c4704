package gate

import "schema-gate/internal/schema"

// Status is the aggregate result of one gate run.
type Status int

const (
	StatusSuccess Status = iota
	StatusWarnings
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusWarnings:
		return "SUCCESS (with warnings)"
	default:
		return "FATAL"
	}
}

// Warning records a tolerated failure: which stage, which object or
// entity, and why it was let through.
type Warning struct {
	Stage   Stage
	Subject string
	Reason  string
}

// Outcome is what a run produces. Only the CLI boundary turns it into a
// process exit status; everything below returns it as a value so the
// pipeline stays testable without spawning processes.
type Outcome struct {
	Status   Status
	Stage    Stage // stage that aborted, when Status is StatusFatal
	Warnings []Warning
	Results  []schema.VerificationResult
	Err      error
	Hint     string
}

// ExitCode maps the outcome to the contract with the deployment
// pipeline: 0 means proceed (warnings included), non-zero means abort.
func (o *Outcome) ExitCode() int {
	if o.Status == StatusFatal {
		return 1
	}
	return 0
}
