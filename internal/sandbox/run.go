package sandbox

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Run executes program inside workDir, feeds it input on standard input and
// returns everything it wrote to standard output.
//
// The wait is bounded by timeout of wall-clock time; on expiry the process
// (and its process group) is killed before Run returns. A non-nil Failure is
// returned for every abnormal outcome, checked in this order: timeout, spawn,
// piping I/O, signal termination, non-zero exit code.
func Run(program string, workDir string, timeout time.Duration, input []byte) ([]byte, *Failure) {
	cmd := Command(program, workDir)
	if err := cmd.Start(); err != nil {
		return nil, newSpawnFailure(err)
	}

	writeDone := make(chan error, 1)
	go func() {
		stdin := cmd.Stdin()
		_, err := stdin.Write(input)
		if closeErr := stdin.Close(); err == nil {
			err = closeErr
		}
		writeDone <- err
	}()

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr error
	select {
	case waitErr = <-waitDone:
	case <-timer.C:
		cmd.Kill()
		<-waitDone
		<-writeDone
		slog.Debug("child process timed out", "program", program, "timeout", timeout)
		return nil, newTimedOut(timeout)
	}

	if err := <-writeDone; err != nil && !childStoppedReading(err) {
		return nil, newIOFailure("cannot write to child stdin: %v", err)
	}

	if stderr := cmd.Stderr(); len(stderr) > 0 {
		slog.Debug("child process wrote to stderr", "program", program, "bytes", len(stderr))
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, newIOFailure("cannot read from child stdout: %v", waitErr)
		}
		code := exitErr.ExitCode()
		if code < 0 {
			return nil, newInvalidExit(nil)
		}
		return nil, newInvalidExit(&code)
	}

	out := cmd.Stdout()
	res := make([]byte, len(out))
	copy(res, out)
	return res, nil
}

// childStoppedReading reports whether a stdin write failed only because the
// child closed its end or already exited.
func childStoppedReading(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}
