package dispatch

import "github.com/programme-lv/pal/internal/job"

// Report is the outcome of one run. Entries are in completion order.
type Report struct {
	Passed  []job.Entry
	Failed  []job.Entry
	Total   int
	Workers int
}

// Executed is the number of jobs that ran to a result.
func (r *Report) Executed() int {
	return len(r.Passed) + len(r.Failed)
}

// CutShort reports whether some jobs were never run.
func (r *Report) CutShort() bool {
	return r.Executed() < r.Total
}

// ReferenceErrors counts failed entries caused by the reference program.
func (r *Report) ReferenceErrors() int {
	n := 0
	for _, e := range r.Failed {
		if e.Result.Kind == job.ReferenceProgramError {
			n++
		}
	}
	return n
}

// CandidateFailures counts failed entries attributed to the candidate.
func (r *Report) CandidateFailures() int {
	return len(r.Failed) - r.ReferenceErrors()
}
