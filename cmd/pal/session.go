package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/programme-lv/pal/internal/gatherer/termgath"
	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/session"
	"github.com/programme-lv/pal/internal/store"
)

func (a *palApp) sessionCommand() *cli.Command {
	return &cli.Command{
		Name:   "session",
		Usage:  "inspect the results of the previous run, or rerun it after fixing bugs",
		Action: a.sessionSummary,
		Commands: []*cli.Command{
			{
				Name:  "load",
				Usage: "write input, actual output and expected output of failed jobs to the test info directory",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "num",
						Aliases: []string{"n"},
						Value:   1,
						Usage:   "number of failed jobs to load",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "kind of failure to load (WA, TLE, REG, OE, STDERR)",
					},
				},
				Action: a.sessionLoad,
			},
			{
				Name:   "continue",
				Usage:  "rerun the failed jobs",
				Action: a.sessionContinue,
			},
			{
				Name:   "retest",
				Usage:  "rerun passed and failed jobs",
				Action: a.sessionRetest,
			},
		},
	}
}

func (a *palApp) openSession() (*session.Session, *store.RunStore, error) {
	sess, err := session.Load(a.dataDir)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(a.out, "Session id: %s\n", sess.Uuid)
	fmt.Fprintf(a.out, "Reading results from: %s...\n", sess.StorePath)
	st, err := store.Load(sess.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return sess, st, nil
}

func (a *palApp) sessionSummary(ctx context.Context, cmd *cli.Command) error {
	sess, st, err := a.openSession()
	if err != nil {
		return err
	}
	termgath.PrintSession(a.out, sess, st)
	return nil
}

func (a *palApp) sessionLoad(ctx context.Context, cmd *cli.Command) error {
	sess, st, err := a.openSession()
	if err != nil {
		return err
	}
	if len(st.Failed) == 0 {
		fmt.Fprintln(a.out, "No failed test to load.")
		return nil
	}

	code := cmd.String("type")
	if code == "" {
		code = st.DefaultCode()
	}
	if _, ok := job.KindForCode(code); !ok {
		return fmt.Errorf("unknown job type %q", code)
	}
	fmt.Fprintf(a.out, "job_type: %s\n", code)

	if !st.FailureCodes().Contains(code) {
		fmt.Fprintf(a.out, "No such job type: %s\n", code)
		return nil
	}

	shown := st.Show(code, int(cmd.Int("num")))
	if len(shown) == 0 {
		fmt.Fprintf(a.out, "No such job type: %s\n", code)
		return nil
	}
	for _, e := range shown {
		files, err := session.WriteJobFiles(sess.TestInfoDir, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "job %d: %s\n", e.Job.ID, e.Result.String())
		fmt.Fprintf(a.out, "  input: %s\n", files.Input)
		fmt.Fprintf(a.out, "  actual output: %s\n", files.Actual)
		fmt.Fprintf(a.out, "  expected output: %s\n", files.Expected)
	}
	return store.Save(sess.StorePath, st)
}

func (a *palApp) sessionContinue(ctx context.Context, cmd *cli.Command) error {
	sess, st, err := a.openSession()
	if err != nil {
		return err
	}
	jobs := st.FailedJobs()
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No failed test to run.")
		return nil
	}
	return a.runJobs(ctx, sess, jobs, termgath.Timings{})
}

func (a *palApp) sessionRetest(ctx context.Context, cmd *cli.Command) error {
	sess, st, err := a.openSession()
	if err != nil {
		return err
	}
	return a.runJobs(ctx, sess, st.AllJobs(), termgath.Timings{})
}
