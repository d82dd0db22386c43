package sandbox_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/programme-lv/pal/internal/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	require.NoError(t, err)
	return path
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not runnable on windows")
	}
}

func TestRunEchoesInput(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "echo.sh", "cat")

	out, failure := sandbox.Run(prog, dir, 5*time.Second, []byte("Hello world!"))
	require.Nil(t, failure)
	assert.Equal(t, "Hello world!", string(out))
}

func TestRunTimesOut(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "sleep.sh", "sleep 5")

	start := time.Now()
	out, failure := sandbox.Run(prog, dir, time.Second, nil)
	elapsed := time.Since(start)

	require.NotNil(t, failure)
	assert.Nil(t, out)
	assert.Equal(t, sandbox.TimedOut, failure.Kind)
	assert.Equal(t, time.Second, failure.Timeout)
	assert.Less(t, elapsed, 4*time.Second)
}

func TestRunNonZeroExit(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "exit1.sh", "exit 1")

	_, failure := sandbox.Run(prog, dir, 5*time.Second, nil)
	require.NotNil(t, failure)
	assert.Equal(t, sandbox.InvalidExit, failure.Kind)
	require.NotNil(t, failure.Code)
	assert.Equal(t, 1, *failure.Code)
	assert.Equal(t, "child returned: 1", failure.Error())
}

func TestRunKilledBySignal(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "segv.sh", "kill -SEGV $$")

	_, failure := sandbox.Run(prog, dir, 5*time.Second, nil)
	require.NotNil(t, failure)
	assert.Equal(t, sandbox.InvalidExit, failure.Kind)
	assert.Nil(t, failure.Code)
}

func TestRunSpawnFailure(t *testing.T) {
	dir := t.TempDir()

	_, failure := sandbox.Run(filepath.Join(dir, "missing"), dir, time.Second, nil)
	require.NotNil(t, failure)
	assert.Equal(t, sandbox.SpawnFailure, failure.Kind)
	assert.NotEmpty(t, failure.Msg)
}

func TestRunNotExecutable(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("echo hi\n"), 0o644))

	_, failure := sandbox.Run(path, dir, time.Second, nil)
	require.NotNil(t, failure)
	assert.Equal(t, sandbox.SpawnFailure, failure.Kind)
}

func TestRunIgnoresUnreadInput(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "noread.sh", "echo done")

	input := bytes.Repeat([]byte("0123456789\n"), 100_000)
	out, failure := sandbox.Run(prog, dir, 5*time.Second, input)
	require.Nil(t, failure)
	assert.Equal(t, "done\n", string(out))
}

func TestRunDiscardsStderr(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "stderr.sh", "echo oops >&2\necho out")

	out, failure := sandbox.Run(prog, dir, 5*time.Second, nil)
	require.Nil(t, failure)
	assert.Equal(t, "out\n", string(out))
}

func TestRunUsesWorkDir(t *testing.T) {
	skipWithoutShell(t)
	progDir := t.TempDir()
	workDir := t.TempDir()
	prog := writeScript(t, progDir, "pwd.sh", "pwd")

	out, failure := sandbox.Run(prog, workDir, 5*time.Second, nil)
	require.Nil(t, failure)

	want, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(string(bytes.TrimSpace(out)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunLargeOutput(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	prog := writeScript(t, dir, "cat.sh", "cat")

	input := bytes.Repeat([]byte("abcdefghij"), 200_000)
	out, failure := sandbox.Run(prog, dir, 10*time.Second, input)
	require.Nil(t, failure)
	assert.Equal(t, len(input), len(out))
}
