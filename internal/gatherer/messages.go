// Package gatherer holds the pieces shared by the streaming gatherers.
package gatherer

import (
	"github.com/programme-lv/pal/api"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/job"
)

// FinishJob maps a classified job to its wire message.
func FinishJob(runUuid string, j job.Job, r job.Result) api.FinishJob {
	var msg *string
	switch r.Kind {
	case job.OtherError, job.ReferenceProgramError:
		s := r.String()
		msg = &s
	}
	verdict := r.Code()
	if r.Kind == job.Success {
		verdict = string(job.Success)
	}
	return api.NewFinishJob(runUuid, j.ID, verdict, r.Passed(), msg,
		j.Input, j.ExpectedOutput, j.ActualOutput)
}

// FinishRun maps a run report to its wire message.
func FinishRun(runUuid string, rep *dispatch.Report) api.FinishRun {
	return api.NewFinishRun(runUuid,
		len(rep.Passed),
		rep.CandidateFailures(),
		rep.ReferenceErrors(),
		rep.Total-rep.Executed(),
	)
}
