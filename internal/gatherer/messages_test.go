package gatherer_test

import (
	"strings"
	"testing"

	"github.com/programme-lv/pal/api"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/gatherer"
	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishJobVerdicts(t *testing.T) {
	j := job.Job{ID: 3, Input: []byte("x\n")}

	m := gatherer.FinishJob("r", j, job.Result{Kind: job.Accepted})
	assert.Equal(t, ".", m.Verdict)
	assert.True(t, m.Passed)
	assert.Nil(t, m.Message)

	m = gatherer.FinishJob("r", j, job.Result{Kind: job.Success})
	assert.Equal(t, "success", m.Verdict)
	assert.True(t, m.Passed)

	m = gatherer.FinishJob("r", j, job.Result{Kind: job.OtherError, Msg: "boom"})
	assert.Equal(t, "OE", m.Verdict)
	require.NotNil(t, m.Message)
	assert.Equal(t, "OE(boom)", *m.Message)

	code := 3
	m = gatherer.FinishJob("r", j, job.FromReferenceFailure(&sandbox.Failure{Kind: sandbox.InvalidExit, Code: &code}))
	assert.Equal(t, "STDERR", m.Verdict)
	assert.False(t, m.Passed)
	require.NotNil(t, m.Message)
	assert.Contains(t, *m.Message, "3")
}

func TestFinishJobTrimsData(t *testing.T) {
	long := strings.Repeat("0123456789\n", 100)
	m := gatherer.FinishJob("r", job.Job{Input: []byte(long)}, job.Result{Kind: job.WrongAnswer})
	lines := strings.Split(m.Input, "\n")
	assert.Len(t, lines, api.MaxDataHeight+1)
	assert.Equal(t, "[...]", lines[len(lines)-1])
}

func TestFinishRunCounts(t *testing.T) {
	rep := &dispatch.Report{
		Passed: []job.Entry{{}, {}},
		Failed: []job.Entry{
			{Result: job.Result{Kind: job.WrongAnswer}},
			{Result: job.Result{Kind: job.ReferenceProgramError}},
		},
		Total: 10,
	}
	m := gatherer.FinishRun("r", rep)
	assert.Equal(t, api.FinishRunMsg, m.MsgType)
	assert.Equal(t, 2, m.Passed)
	assert.Equal(t, 1, m.Failed)
	assert.Equal(t, 1, m.ReferenceErrors)
	assert.Equal(t, 6, m.NotExecuted)
}
