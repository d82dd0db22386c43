package natsgath

import (
	"github.com/programme-lv/pal/api"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/gatherer"
	"github.com/programme-lv/pal/internal/job"
)

type natsGatherer struct {
	pub     Publisher
	subject string
	runUuid string
	mode    string
}

var _ dispatch.Gatherer = (*natsGatherer)(nil)

func (s *natsGatherer) StartRun(jobCount int, workers int) {
	s.send(api.NewStartRun(s.runUuid, s.mode, jobCount, workers))
}

// FinishJob publishes every job, passed or not.
func (s *natsGatherer) FinishJob(j job.Job, r job.Result) {
	s.send(gatherer.FinishJob(s.runUuid, j, r))
}

func (s *natsGatherer) FinishRun(rep *dispatch.Report) {
	s.send(gatherer.FinishRun(s.runUuid, rep))
}
