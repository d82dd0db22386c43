// Package job holds the records threaded through a test run: the jobs
// themselves, their classification and the read-only context they run in.
package job

import "time"

// Job is a single test case. ExpectedOutput comes from the test document in
// check mode and from the reference program in differential mode;
// ActualOutput is always filled in by the dispatcher.
type Job struct {
	ID             int    `json:"id"`
	Input          []byte `json:"input"`
	ExpectedOutput []byte `json:"expected_output"`
	ActualOutput   []byte `json:"actual_output"`
}

// ExecContext is shared by every job of one run and never modified during it.
type ExecContext struct {
	Program   string        `json:"program"`
	Reference string        `json:"reference,omitempty"`
	WorkDir   string        `json:"work_dir"`
	Timeout   time.Duration `json:"timeout"`
}

// HasReference reports whether a reference program was built for this run.
func (c ExecContext) HasReference() bool {
	return c.Reference != ""
}

// Entry is a classified job as kept in a run store.
type Entry struct {
	Job    Job    `json:"job"`
	Result Result `json:"result"`
	Shown  bool   `json:"shown"`
}
