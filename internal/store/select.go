package store

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/programme-lv/pal/internal/job"
)

// Show picks up to n failed entries with the given kind code that were not
// shown before, marks them as shown and returns copies of them. An empty code
// selects the kind of the first failed entry.
func (s *RunStore) Show(code string, n int) []job.Entry {
	if len(s.Failed) == 0 || n <= 0 {
		return nil
	}
	if code == "" {
		code = s.Failed[0].Result.Code()
	}

	var res []job.Entry
	for i := range s.Failed {
		e := &s.Failed[i]
		if e.Shown || e.Result.Code() != code {
			continue
		}
		e.Shown = true
		res = append(res, *e)
		if len(res) >= n {
			break
		}
	}
	return res
}

// DefaultCode is the code Show selects when none is given.
func (s *RunStore) DefaultCode() string {
	if len(s.Failed) == 0 {
		return ""
	}
	return s.Failed[0].Result.Code()
}

// FailureCodes is the set of kind codes present among failed entries.
func (s *RunStore) FailureCodes() mapset.Set[string] {
	codes := mapset.NewThreadUnsafeSet[string]()
	for _, e := range s.Failed {
		codes.Add(e.Result.Code())
	}
	return codes
}

// FailuresByCode counts failed entries per kind code.
func (s *RunStore) FailuresByCode() map[string]int {
	res := make(map[string]int)
	for _, e := range s.Failed {
		res[e.Result.Code()]++
	}
	return res
}

// FailedJobs returns the failed jobs for another run.
func (s *RunStore) FailedJobs() []job.Job {
	return jobsOf(s.Failed)
}

// AllJobs returns passed then failed jobs for another run.
func (s *RunStore) AllJobs() []job.Job {
	return append(jobsOf(s.Passed), jobsOf(s.Failed)...)
}

func jobsOf(entries []job.Entry) []job.Job {
	res := make([]job.Job, len(entries))
	for i, e := range entries {
		res[i] = e.Job
	}
	return res
}
