package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/job"
	"github.com/programme-lv/pal/internal/session"
	"github.com/programme-lv/pal/internal/testspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolvesDefaults(t *testing.T) {
	s, err := session.New(session.Params{
		Kind:         session.Pal,
		WorkDir:      "/home/u/work",
		Source:       "task/foo.c",
		Compiler:     "gcc",
		CompilerArgs: "-O2",
		TimeoutSec:   2,
		DataDir:      "/home/u/.local/share/pal",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(s.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, "/home/u/work/task/foo.c", s.Source)
	assert.Equal(t, "/home/u/work/task/foo_std.c", s.Reference)
	assert.Equal(t, "/home/u/work/task/foo.test", s.TestFile)
	assert.Equal(t, "/home/u/work/task/tests_info/foo", s.TestInfoDir)
	assert.Equal(t, "/home/u/.local/share/pal/foo_store.json.zst", s.StorePath)
	assert.Equal(t, 2*time.Second, s.Timeout())
	assert.Equal(t, "gcc -O2", s.CompileConfig().Command())
	assert.False(t, s.Run)
}

func TestNewExplicitPaths(t *testing.T) {
	s, err := session.New(session.Params{
		Kind:      session.RandomPal,
		WorkDir:   "/w",
		Source:    "/abs/bar.cpp",
		Reference: "ref/slow.cpp",
		TestFile:  "cases.txt",
		DataDir:   "/d",
	})
	require.NoError(t, err)
	assert.Equal(t, "/abs/bar.cpp", s.Source)
	assert.Equal(t, "/w/ref/slow.cpp", s.Reference)
	assert.Equal(t, "/w/cases.txt", s.TestFile)
}

func TestCheckHasNoReference(t *testing.T) {
	s, err := session.New(session.Params{Kind: session.Check, WorkDir: "/w", Source: "a.c", DataDir: "/d"})
	require.NoError(t, err)
	assert.Empty(t, s.Reference)

	_, err = session.New(session.Params{Kind: session.Check, WorkDir: "/w", DataDir: "/d"})
	assert.Error(t, err)
}

func TestKindModes(t *testing.T) {
	assert.Equal(t, testspec.Literal, session.Check.ParseMode())
	assert.Equal(t, testspec.Differential, session.Pal.ParseMode())
	assert.Equal(t, testspec.Random, session.RandomPal.ParseMode())
	assert.Equal(t, dispatch.Check, session.Check.DispatchMode())
	assert.Equal(t, dispatch.Differential, session.Pal.DispatchMode())
	assert.Equal(t, dispatch.Differential, session.RandomPal.DispatchMode())
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := session.Load(dir)
	assert.True(t, errors.Is(err, session.ErrNoSession))

	s, err := session.New(session.Params{Kind: session.Pal, WorkDir: dir, Source: "foo.c", DataDir: dir, TimeoutSec: 10})
	require.NoError(t, err)
	s.Run = true
	require.NoError(t, session.Save(dir, s))

	loaded, err := session.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{"), 0o644))
	_, err = session.Load(dir)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, session.ErrNoSession))
}

func TestWriteJobFiles(t *testing.T) {
	dir := t.TempDir()
	e := job.Entry{
		Job: job.Job{
			ID:             7,
			Input:          []byte("1 2\n"),
			ExpectedOutput: []byte("3\n"),
			ActualOutput:   []byte("4\n"),
		},
		Result: job.Result{Kind: job.WrongAnswer},
	}

	files, err := session.WriteJobFiles(filepath.Join(dir, "tests_info", "foo"), e)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tests_info", "foo", "7", "in.txt"), files.Input)

	for path, want := range map[string]string{
		files.Input:    "1 2\n",
		files.Actual:   "4\n",
		files.Expected: "3\n",
	} {
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}

	// a second dump overwrites
	e.Job.ActualOutput = []byte("5\n")
	files, err = session.WriteJobFiles(filepath.Join(dir, "tests_info", "foo"), e)
	require.NoError(t, err)
	got, err := os.ReadFile(files.Actual)
	require.NoError(t, err)
	assert.Equal(t, "5\n", string(got))
}
