// Package dispatch runs a list of jobs on a worker pool and classifies them,
// stopping new work at the first job that does not pass.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/sandbox"
	"github.com/programme-lv/pal/internal/workerpool"
)

type Mode int

const (
	// Check compares the candidate's output with the job's expected output.
	Check Mode = iota
	// Differential compares the candidate's output with the reference's.
	Differential
)

func (m Mode) String() string {
	if m == Differential {
		return "differential"
	}
	return "check"
}

var ErrNoReference = errors.New("differential run without a reference program")

type runFunc func(program string, workDir string, timeout time.Duration, input []byte) ([]byte, *sandbox.Failure)

type Dispatcher struct {
	maxWorkers int
	run        runFunc
	gath       Gatherer
}

type Option func(*Dispatcher)

// WithMaxWorkers caps the number of concurrently evaluated jobs.
func WithMaxWorkers(n int) Option {
	return func(d *Dispatcher) { d.maxWorkers = n }
}

func WithGatherer(g Gatherer) Option {
	return func(d *Dispatcher) { d.gath = g }
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		maxWorkers: runtime.NumCPU(),
		run:        sandbox.Run,
		gath:       Gatherers(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type outcome struct {
	job    job.Job
	result job.Result
}

// Run evaluates jobs in mode and returns the classified entries. After the
// first non-passing result no further job is started; jobs that were never
// started appear in neither list. Cancelling ctx has the same effect.
func (d *Dispatcher) Run(ctx context.Context, mode Mode, ec job.ExecContext, jobs []job.Job) (*Report, error) {
	if mode == Differential && !ec.HasReference() {
		return nil, ErrNoReference
	}

	workers := min(len(jobs), d.maxWorkers)
	if workers < 1 {
		workers = 1
	}
	pool := workerpool.New(workers, len(jobs))
	rep := &Report{Total: len(jobs), Workers: pool.Workers()}
	d.gath.StartRun(len(jobs), rep.Workers)

	results := make(chan outcome, len(jobs))
	for _, j := range jobs {
		pool.Execute(func() {
			res, r := d.evaluate(mode, ec, j)
			results <- outcome{job: res, result: r}
		})
	}

	go func() {
		pool.Wait()
		close(results)
	}()

	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	received := 0
	for o := range results {
		received++
		entry := job.Entry{Job: o.job, Result: o.result}
		if o.result.Passed() {
			rep.Passed = append(rep.Passed, entry)
		} else {
			rep.Failed = append(rep.Failed, entry)
			pool.Shutdown()
		}
		d.gath.FinishJob(o.job, o.result)
	}

	if n := pool.Panicked(); n > 0 {
		slog.Error("worker tasks panicked", "count", n)
	}
	if int64(received) != pool.Executed() {
		return nil, fmt.Errorf("lost results: %d jobs ran but %d reported", pool.Executed(), received)
	}
	if rep.CutShort() {
		slog.Debug("run stopped early", "executed", received, "total", len(jobs))
	}

	d.gath.FinishRun(rep)
	return rep, nil
}

func (d *Dispatcher) evaluate(mode Mode, ec job.ExecContext, j job.Job) (res job.Job, r job.Result) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("job evaluation panicked", "job", j.ID, "panic", p)
			res, r = j, job.Panicked(p)
		}
	}()

	out, failure := d.run(ec.Program, ec.WorkDir, ec.Timeout, j.Input)
	if failure != nil {
		return j, job.FromCandidateFailure(failure)
	}

	if mode == Differential {
		expected, failure := d.run(ec.Reference, ec.WorkDir, ec.Timeout, j.Input)
		if failure != nil {
			j.ActualOutput = out
			return j, job.FromReferenceFailure(failure)
		}
		j.ExpectedOutput = expected
	}

	r = job.Compare(&j, out)
	return j, r
}
