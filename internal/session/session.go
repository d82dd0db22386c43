// Package session remembers how the last run was set up so that later
// invocations can inspect, continue or retest it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/programme-lv/pal/internal/compile"
	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/testspec"
)

const fileName = "session.json"

var ErrNoSession = errors.New("no previous session")

type Kind string

const (
	Check     Kind = "check"
	Pal       Kind = "pal"
	RandomPal Kind = "random-pal"
)

func (k Kind) ParseMode() testspec.Mode {
	switch k {
	case Pal:
		return testspec.Differential
	case RandomPal:
		return testspec.Random
	}
	return testspec.Literal
}

func (k Kind) DispatchMode() dispatch.Mode {
	if k == Check {
		return dispatch.Check
	}
	return dispatch.Differential
}

type Session struct {
	Uuid         string `json:"uuid"`
	Kind         Kind   `json:"kind"`
	WorkDir      string `json:"work_dir"`
	Compiler     string `json:"compiler"`
	CompilerArgs string `json:"compiler_args"`
	TimeoutSec   int64  `json:"timeout_sec"`
	Source       string `json:"source"`
	Reference    string `json:"reference,omitempty"`
	TestFile     string `json:"test_file"`
	TestInfoDir  string `json:"test_info_dir"`
	StorePath    string `json:"store_path"`
	Run          bool   `json:"run"`
}

type Params struct {
	Kind         Kind
	WorkDir      string
	Source       string
	Reference    string
	TestFile     string
	Compiler     string
	CompilerArgs string
	TimeoutSec   int64
	DataDir      string
}

// New resolves every path of a fresh session. Relative paths are taken
// relative to WorkDir. The test file defaults to <stem>.test and the
// reference to <stem>_std<ext>, both next to the source.
func New(p Params) (*Session, error) {
	if p.Source == "" {
		return nil, errors.New("source file is required")
	}
	source := absIn(p.WorkDir, p.Source)
	stem := compile.Stem(source)
	if stem == "" {
		return nil, fmt.Errorf("invalid source filename: %s", source)
	}
	srcDir := filepath.Dir(source)

	testFile := filepath.Join(srcDir, stem+".test")
	if p.TestFile != "" {
		testFile = absIn(p.WorkDir, p.TestFile)
	}

	var reference string
	if p.Kind != Check {
		reference = filepath.Join(srcDir, stem+"_std"+filepath.Ext(source))
		if p.Reference != "" {
			reference = absIn(p.WorkDir, p.Reference)
		}
	}

	return &Session{
		Uuid:         uuid.NewString(),
		Kind:         p.Kind,
		WorkDir:      p.WorkDir,
		Compiler:     p.Compiler,
		CompilerArgs: p.CompilerArgs,
		TimeoutSec:   p.TimeoutSec,
		Source:       source,
		Reference:    reference,
		TestFile:     testFile,
		TestInfoDir:  filepath.Join(srcDir, "tests_info", stem),
		StorePath:    filepath.Join(p.DataDir, stem+"_store.json.zst"),
	}, nil
}

func absIn(dir string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func (s *Session) CompileConfig() compile.Config {
	return compile.Config{Compiler: s.Compiler, Args: s.CompilerArgs}
}

func (s *Session) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

func Save(dataDir string, s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, fileName), data, 0644); err != nil {
		return fmt.Errorf("failed to save session data: %w", err)
	}
	return nil
}

func Load(dataDir string) (*Session, error) {
	path := filepath.Join(dataDir, fileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: session file %s does not exist, run a test first", ErrNoSession, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &s, nil
}
