package termgath

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	pretty_table "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/session"
	"github.com/programme-lv/pal/internal/store"
)

var (
	passed = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	failed = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

// Timings are the wall-clock durations of the phases of one run.
type Timings struct {
	Parse   time.Duration
	Compile time.Duration
	Run     time.Duration
}

func (t Timings) Total() time.Duration {
	return t.Parse + t.Compile + t.Run
}

// PrintSummary writes the verdict line, the timing breakdown and notes on
// jobs that were skipped or blamed on the reference program.
func PrintSummary(w io.Writer, rep *dispatch.Report, t Timings) {
	counts := fmt.Sprintf("pass = %d, fail = %d", len(rep.Passed), rep.CandidateFailures())
	if len(rep.Failed) == 0 {
		fmt.Fprintf(w, "%s %s\n", passed("PASSED:"), counts)
	} else {
		fmt.Fprintf(w, "%s %s\n", failed("FAILED:"), counts)
	}
	fmt.Fprintf(w, "time: %dms(total) = %dms(parse) + %dms(compile) + %dms(run)\n",
		t.Total().Milliseconds(), t.Parse.Milliseconds(), t.Compile.Milliseconds(), t.Run.Milliseconds())
	if rep.CutShort() {
		fmt.Fprintf(w, "note: %d of %d jobs were not executed (stopped at first failure)\n",
			rep.Total-rep.Executed(), rep.Total)
	}
	if n := rep.ReferenceErrors(); n > 0 {
		fmt.Fprintf(w, "reference errors: %d\n", n)
	}
}

// PrintSession describes the last session and its failures grouped by kind.
func PrintSession(w io.Writer, s *session.Session, st *store.RunStore) {
	fmt.Fprintf(w, "session %s (%s)\n", s.Uuid, s.Kind)
	fmt.Fprintf(w, "source: %s\n", s.Source)
	if s.Reference != "" {
		fmt.Fprintf(w, "reference: %s\n", s.Reference)
	}
	fmt.Fprintf(w, "tests: %s\n", s.TestFile)
	fmt.Fprintf(w, "PASSED: %d, FAILED: %d\n", len(st.Passed), len(st.Failed))
	if len(st.Failed) == 0 {
		return
	}

	byCode := st.FailuresByCode()
	codes := st.FailureCodes().ToSlice()
	sort.Strings(codes)

	t := pretty_table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(pretty_table.Row{"Code", "Kind", "Jobs"})
	for _, c := range codes {
		kind, _ := job.KindForCode(c)
		t.AppendRow(pretty_table.Row{c, string(kind), byCode[c]})
	}
	t.SetStyle(pretty_table.StyleLight)
	t.SetColumnConfigs([]pretty_table.ColumnConfig{
		{Name: "Code", Align: text.AlignCenter},
		{Name: "Jobs", Align: text.AlignRight},
	})
	t.Render()
}
