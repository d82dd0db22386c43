package termgath

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/job"
)

var (
	passMark = color.New(color.FgGreen, color.Bold)
	failMark = color.New(color.FgRed, color.Bold)
)

// TerminalGatherer prints one mark per finished job and, once the run is
// over, how many failed jobs there were of each kind.
type TerminalGatherer struct {
	w     io.Writer
	tally map[job.Kind]int
}

func New(w io.Writer) *TerminalGatherer {
	return &TerminalGatherer{
		w:     w,
		tally: make(map[job.Kind]int),
	}
}

var _ dispatch.Gatherer = (*TerminalGatherer)(nil)

func (t *TerminalGatherer) StartRun(jobCount int, workers int) {
	fmt.Fprintf(t.w, "Running jobs using %d workers...\n", workers)
	fmt.Fprintln(t.w, `A "." indicates a passed test. A "X" indicates a failed test:`)
}

func (t *TerminalGatherer) FinishJob(j job.Job, r job.Result) {
	t.tally[r.Kind]++
	if r.Passed() {
		passMark.Fprint(t.w, ".")
	} else {
		failMark.Fprint(t.w, "X")
	}
}

func (t *TerminalGatherer) FinishRun(rep *dispatch.Report) {
	fmt.Fprintln(t.w)
	if len(rep.Failed) == 0 {
		return
	}
	first := rep.Failed[0]
	fmt.Fprintf(t.w, "first failure: job %d: %s\n", first.Job.ID, first.Result.String())

	var codes []string
	counts := make(map[string]int)
	for k, n := range t.tally {
		r := job.Result{Kind: k}
		if r.Passed() {
			continue
		}
		codes = append(codes, r.Code())
		counts[r.Code()] = n
	}
	sort.Strings(codes)
	fmt.Fprintln(t.w, "Of failed tests:")
	for _, c := range codes {
		fmt.Fprintf(t.w, "%s: %d\n", c, counts[c])
	}
}

// Count is the number of finished jobs of kind k.
func (t *TerminalGatherer) Count(k job.Kind) int {
	return t.tally[k]
}
