package termgath_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/gatherer/termgath"
	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/session"
	"github.com/programme-lv/pal/internal/store"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestProgressMarks(t *testing.T) {
	var buf bytes.Buffer
	g := termgath.New(&buf)

	g.StartRun(3, 2)
	g.FinishJob(job.Job{ID: 0}, job.Result{Kind: job.Accepted})
	g.FinishJob(job.Job{ID: 1}, job.Result{Kind: job.Accepted})
	g.FinishJob(job.Job{ID: 2}, job.Result{Kind: job.WrongAnswer})
	g.FinishRun(&dispatch.Report{
		Failed: []job.Entry{{Job: job.Job{ID: 2}, Result: job.Result{Kind: job.WrongAnswer}}},
		Total:  3,
	})

	want := "Running jobs using 2 workers...\n" +
		"A \".\" indicates a passed test. A \"X\" indicates a failed test:\n" +
		"..X\n" +
		"first failure: job 2: WA\n" +
		"Of failed tests:\n" +
		"WA: 1\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, g.Count(job.Accepted))
	assert.Equal(t, 1, g.Count(job.WrongAnswer))
	assert.Equal(t, 0, g.Count(job.RuntimeError))
}

func TestFailureBreakdown(t *testing.T) {
	var buf bytes.Buffer
	g := termgath.New(&buf)

	g.StartRun(4, 4)
	g.FinishJob(job.Job{ID: 0}, job.Result{Kind: job.TimeLimitExceeded})
	g.FinishJob(job.Job{ID: 1}, job.Result{Kind: job.Accepted})
	g.FinishJob(job.Job{ID: 2}, job.Result{Kind: job.WrongAnswer})
	g.FinishJob(job.Job{ID: 3}, job.Result{Kind: job.TimeLimitExceeded})
	g.FinishRun(&dispatch.Report{
		Passed: []job.Entry{{Job: job.Job{ID: 1}, Result: job.Result{Kind: job.Accepted}}},
		Failed: []job.Entry{
			{Job: job.Job{ID: 0}, Result: job.Result{Kind: job.TimeLimitExceeded}},
			{Job: job.Job{ID: 2}, Result: job.Result{Kind: job.WrongAnswer}},
			{Job: job.Job{ID: 3}, Result: job.Result{Kind: job.TimeLimitExceeded}},
		},
		Total: 4,
	})

	assert.True(t, strings.HasSuffix(buf.String(),
		"X.XX\nfirst failure: job 0: TLE\nOf failed tests:\nTLE: 2\nWA: 1\n"), buf.String())
}

func TestAllPassedHasNoBreakdown(t *testing.T) {
	var buf bytes.Buffer
	g := termgath.New(&buf)
	g.StartRun(1, 1)
	g.FinishJob(job.Job{}, job.Result{Kind: job.Accepted})
	g.FinishRun(&dispatch.Report{Passed: make([]job.Entry, 1), Total: 1})
	assert.NotContains(t, buf.String(), "Of failed tests")
}

func TestSummaryPassed(t *testing.T) {
	var buf bytes.Buffer
	rep := &dispatch.Report{Passed: make([]job.Entry, 4), Total: 4}
	termgath.PrintSummary(&buf, rep, termgath.Timings{
		Parse:   2 * time.Millisecond,
		Compile: 300 * time.Millisecond,
		Run:     40 * time.Millisecond,
	})
	assert.Equal(t,
		"PASSED: pass = 4, fail = 0\n"+
			"time: 342ms(total) = 2ms(parse) + 300ms(compile) + 40ms(run)\n",
		buf.String())
}

func TestSummaryFailedCutShort(t *testing.T) {
	var buf bytes.Buffer
	rep := &dispatch.Report{
		Passed: make([]job.Entry, 2),
		Failed: []job.Entry{
			{Result: job.Result{Kind: job.TimeLimitExceeded}},
			{Result: job.Result{Kind: job.ReferenceProgramError}},
		},
		Total: 10,
	}
	termgath.PrintSummary(&buf, rep, termgath.Timings{})
	out := buf.String()
	assert.Contains(t, out, "FAILED: pass = 2, fail = 1\n")
	assert.Contains(t, out, "note: 6 of 10 jobs were not executed (stopped at first failure)\n")
	assert.Contains(t, out, "reference errors: 1\n")
}

func TestPrintSession(t *testing.T) {
	var buf bytes.Buffer
	s := &session.Session{Uuid: "abc", Kind: session.Pal, Source: "/w/a.c", Reference: "/w/a_std.c", TestFile: "/w/a.test"}
	st := &store.RunStore{
		Passed: make([]job.Entry, 3),
		Failed: []job.Entry{
			{Result: job.Result{Kind: job.WrongAnswer}},
			{Result: job.Result{Kind: job.WrongAnswer}},
			{Result: job.Result{Kind: job.TimeLimitExceeded}},
		},
	}
	termgath.PrintSession(&buf, s, st)
	out := buf.String()
	assert.Contains(t, out, "session abc (pal)")
	assert.Contains(t, out, "PASSED: 3, FAILED: 3")
	assert.Contains(t, out, "wrong_answer")
	assert.Contains(t, out, "time_limit_exceeded")
}
