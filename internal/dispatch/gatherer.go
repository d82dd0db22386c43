package dispatch

import "github.com/programme-lv/pal/internal/job"

// Gatherer is told about the progress of a run. All calls are made from the
// goroutine that called Run, in completion order.
type Gatherer interface {
	StartRun(jobCount int, workers int)
	FinishJob(j job.Job, r job.Result)
	FinishRun(rep *Report)
}

type multiGatherer []Gatherer

// Gatherers fans every call out to each of gs in order.
func Gatherers(gs ...Gatherer) Gatherer {
	var res multiGatherer
	for _, g := range gs {
		if g != nil {
			res = append(res, g)
		}
	}
	return res
}

func (m multiGatherer) StartRun(jobCount int, workers int) {
	for _, g := range m {
		g.StartRun(jobCount, workers)
	}
}

func (m multiGatherer) FinishJob(j job.Job, r job.Result) {
	for _, g := range m {
		g.FinishJob(j, r)
	}
}

func (m multiGatherer) FinishRun(rep *Report) {
	for _, g := range m {
		g.FinishRun(rep)
	}
}
