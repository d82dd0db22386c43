package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/pal/internal/compile"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/gatherer/natsgath"
	"github.com/programme-lv/pal/internal/gatherer/sqsgath"
	"github.com/programme-lv/pal/internal/gatherer/termgath"
	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/session"
	"github.com/programme-lv/pal/internal/store"
	"github.com/programme-lv/pal/internal/testspec"
)

func (a *palApp) checkAction(ctx context.Context, cmd *cli.Command) error {
	return a.testSource(ctx, cmd, session.Check)
}

func (a *palApp) palAction(ctx context.Context, cmd *cli.Command) error {
	return a.testSource(ctx, cmd, session.Pal)
}

func (a *palApp) randomPalAction(ctx context.Context, cmd *cli.Command) error {
	return a.testSource(ctx, cmd, session.RandomPal)
}

func (a *palApp) testSource(ctx context.Context, cmd *cli.Command, kind session.Kind) error {
	args := cmd.Args()
	if args.Len() == 0 {
		return errors.New("missing source file")
	}
	p := session.Params{
		Kind:         kind,
		Source:       args.Get(0),
		Compiler:     a.cfg.Compiler,
		CompilerArgs: a.cfg.CompilerArgs,
		TimeoutSec:   a.cfg.TimeoutSec,
		DataDir:      a.dataDir,
	}
	if kind == session.Check {
		p.TestFile = args.Get(1)
	} else {
		p.Reference = args.Get(1)
		p.TestFile = args.Get(2)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	p.WorkDir = wd

	sess, err := session.New(p)
	if err != nil {
		return err
	}
	return a.runSession(ctx, sess)
}

// runSession parses the session's test file and runs every job in it.
func (a *palApp) runSession(ctx context.Context, sess *session.Session) error {
	fmt.Fprintf(a.out, "Current working directory: %s\n", sess.WorkDir)

	start := time.Now()
	doc, err := os.ReadFile(sess.TestFile)
	if err != nil {
		return fmt.Errorf("cannot read test file: %w", err)
	}
	jobs, err := testspec.Parse(string(doc), sess.Kind.ParseMode())
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", sess.TestFile, err)
	}
	slog.Debug("parsed test file", "file", sess.TestFile, "jobs", len(jobs))

	return a.runJobs(ctx, sess, jobs, termgath.Timings{Parse: time.Since(start)})
}

// runJobs compiles the session's programs, runs jobs and replaces the stored
// results of the session with the outcome.
func (a *palApp) runJobs(ctx context.Context, sess *session.Session, jobs []job.Job, timings termgath.Timings) error {
	start := time.Now()
	fmt.Fprintf(a.out, "Compiling using: %s\n", sess.CompileConfig().Command())
	prog, ref, err := compile.BuildPair(ctx, sess.CompileConfig(), sess.WorkDir, sess.Source, sess.Reference)
	if err != nil {
		return err
	}
	timings.Compile = time.Since(start)

	ec := job.ExecContext{
		Program:   prog,
		Reference: ref,
		WorkDir:   sess.WorkDir,
		Timeout:   sess.Timeout(),
	}

	gath, closeGath, err := a.gatherers(ctx, sess)
	if err != nil {
		return err
	}
	defer closeGath()

	start = time.Now()
	rep, err := dispatch.New(dispatch.WithGatherer(gath)).Run(ctx, sess.Kind.DispatchMode(), ec, jobs)
	if err != nil {
		return fmt.Errorf("failed to run jobs: %w", err)
	}
	timings.Run = time.Since(start)

	if err := store.Save(sess.StorePath, store.FromReport(rep, ec)); err != nil {
		return err
	}
	sess.Run = true
	if err := session.Save(a.dataDir, sess); err != nil {
		return err
	}

	termgath.PrintSummary(a.out, rep, timings)
	if len(rep.Failed) > 0 {
		return errRunFailed
	}
	return nil
}

// gatherers builds the terminal gatherer plus any configured streams.
func (a *palApp) gatherers(ctx context.Context, sess *session.Session) (dispatch.Gatherer, func(), error) {
	runUuid := uuid.NewString()
	mode := sess.Kind.DispatchMode().String()
	gs := []dispatch.Gatherer{termgath.New(a.out)}
	closers := []func(){}

	if url := a.cfg.Nats.URL; url != "" {
		nc, closeNats, err := natsgath.Connect(url)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, closeNats)
		gs = append(gs, natsgath.New(nc, runUuid, mode, a.cfg.Nats.Subject))
	}
	if queue := a.cfg.Sqs.QueueURL; queue != "" {
		client, err := sqsgath.NewClient(ctx, a.cfg.Sqs.Region)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, err
		}
		gs = append(gs, sqsgath.New(ctx, client, runUuid, mode, queue))
	}

	slog.Debug("streaming run", "run", runUuid, "gatherers", len(gs))
	return dispatch.Gatherers(gs...), func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
