package sandbox

import (
	"bytes"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

// pipeGrace bounds how long Wait keeps draining output after the child
// exited while a grandchild still holds the pipes open.
const pipeGrace = 200 * time.Millisecond

type Cmd struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	started bool
	waited  bool
}

// Command prepares program to run inside workDir with all three standard
// streams captured. The program is started without arguments.
func Command(program string, workDir string) *Cmd {
	cmd := exec.Command(program)
	cmd.Dir = workDir
	cmd.WaitDelay = pipeGrace
	setProcessGroup(cmd)

	c := &Cmd{cmd: cmd}
	cmd.Stdout = &c.stdout
	cmd.Stderr = &c.stderr
	return c
}

func (process *Cmd) Start() error {
	if process.started {
		panic("process should not be started twice")
	}
	process.started = true

	var err error
	process.stdin, err = process.cmd.StdinPipe()
	if err != nil {
		return err
	}

	err = process.cmd.Start()
	if err != nil {
		return err
	}
	slog.Debug("spawned child process", "program", process.cmd.Path, "pid", process.cmd.Process.Pid)
	return nil
}

// Wait blocks until the process exits and its output has been collected.
// The returned error is the one of exec.Cmd.Wait.
func (process *Cmd) Wait() error {
	if !process.started {
		panic("process should be started before waiting")
	}
	process.waited = true
	return process.cmd.Wait()
}

// Kill terminates the process together with everything it spawned.
func (process *Cmd) Kill() {
	if !process.started || process.cmd.Process == nil {
		return
	}
	slog.Debug("killing child process", "program", process.cmd.Path, "pid", process.cmd.Process.Pid)
	if err := killProcessGroup(process.cmd); err != nil {
		slog.Debug("failed to kill child process", "pid", process.cmd.Process.Pid, "error", err)
	}
}

func (process *Cmd) Stdin() io.WriteCloser {
	if process.stdin == nil {
		panic("process should be started before retrieving stdin")
	}
	return process.stdin
}

func (process *Cmd) Stdout() []byte {
	if !process.waited {
		panic("process should be waited before retrieving stdout")
	}
	return process.stdout.Bytes()
}

func (process *Cmd) Stderr() []byte {
	if !process.waited {
		panic("process should be waited before retrieving stderr")
	}
	return process.stderr.Bytes()
}
