package sandbox

import (
	"fmt"
	"time"
)

// FailureKind tells why a child process did not produce an output.
type FailureKind string

const (
	TimedOut     FailureKind = "timed_out"
	SpawnFailure FailureKind = "spawn_failure"
	IOFailure    FailureKind = "io_failure"
	InvalidExit  FailureKind = "invalid_exit"
)

// Failure is the abnormal outcome of a single sandboxed run.
//
// Only the fields relevant to Kind are set: Timeout for TimedOut, Msg for
// SpawnFailure and IOFailure, Code for InvalidExit. A nil Code on an
// InvalidExit means the process was terminated by a signal.
type Failure struct {
	Kind    FailureKind   `json:"kind"`
	Timeout time.Duration `json:"timeout,omitempty"`
	Msg     string        `json:"msg,omitempty"`
	Code    *int          `json:"code,omitempty"`
}

func (f *Failure) Error() string {
	switch f.Kind {
	case TimedOut:
		return fmt.Sprintf("child process haven't exited for %d secs", int64(f.Timeout/time.Second))
	case SpawnFailure:
		return fmt.Sprintf("failed to spawn child process: %s", f.Msg)
	case IOFailure:
		return fmt.Sprintf("failed to talk to child process: %s", f.Msg)
	case InvalidExit:
		if f.Code == nil {
			return "child terminated by signal"
		}
		return fmt.Sprintf("child returned: %d", *f.Code)
	}
	return fmt.Sprintf("unknown child failure %q", f.Kind)
}

func newTimedOut(timeout time.Duration) *Failure {
	return &Failure{Kind: TimedOut, Timeout: timeout}
}

func newSpawnFailure(err error) *Failure {
	return &Failure{Kind: SpawnFailure, Msg: err.Error()}
}

func newIOFailure(format string, args ...any) *Failure {
	return &Failure{Kind: IOFailure, Msg: fmt.Sprintf(format, args...)}
}

func newInvalidExit(code *int) *Failure {
	return &Failure{Kind: InvalidExit, Code: code}
}
