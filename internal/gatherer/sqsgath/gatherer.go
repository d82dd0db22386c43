package sqsgath

import (
	"context"

	"github.com/programme-lv/pal/api"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/gatherer"
	"github.com/programme-lv/pal/internal/job"
)

type sqsResQueueGatherer struct {
	ctx      context.Context
	client   Sender
	queueUrl string
	runUuid  string
	mode     string
}

var _ dispatch.Gatherer = (*sqsResQueueGatherer)(nil)

func (s *sqsResQueueGatherer) StartRun(jobCount int, workers int) {
	s.send(api.NewStartRun(s.runUuid, s.mode, jobCount, workers))
}

// FinishJob only forwards jobs that did not pass.
func (s *sqsResQueueGatherer) FinishJob(j job.Job, r job.Result) {
	if r.Passed() {
		return
	}
	s.send(gatherer.FinishJob(s.runUuid, j, r))
}

func (s *sqsResQueueGatherer) FinishRun(rep *dispatch.Report) {
	s.send(gatherer.FinishRun(s.runUuid, rep))
}
