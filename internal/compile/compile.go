// Package compile builds the candidate and reference programs before a run.
package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Compiler string
	Args     string
}

// Command is the compiler invocation without the source and output paths.
func (c Config) Command() string {
	return strings.TrimSpace(c.Compiler + " " + c.Args)
}

// Error is a build that the compiler rejected.
type Error struct {
	Source string
	Output string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s compile failed: \n%s", filepath.Base(e.Source), e.Output)
}

// OutDir is the directory executables built from source are placed in.
func OutDir(source string) string {
	return filepath.Join(filepath.Dir(source), "out")
}

// Stem is the file name of source without its extension.
func Stem(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Build compiles source inside workDir into outDir and returns the path of
// the executable.
func Build(ctx context.Context, cfg Config, workDir string, source string, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}
	output := filepath.Join(outDir, Stem(source))

	args, err := shlex.Split(cfg.Args)
	if err != nil {
		return "", fmt.Errorf("invalid compiler arguments %q: %w", cfg.Args, err)
	}
	args = append(args, source, "-o", output)
	cmd := exec.CommandContext(ctx, cfg.Compiler, args...)
	cmd.Dir = workDir
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	slog.Debug("compiling", "compiler", cfg.Compiler, "source", source, "output", output)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &Error{Source: source, Output: combined.String()}
		}
		return "", fmt.Errorf("failed to launch compiler: %w", err)
	}
	return output, nil
}

// BuildPair compiles the candidate and, when reference is not empty, the
// reference program concurrently. Both executables land in the candidate's
// output directory.
func BuildPair(ctx context.Context, cfg Config, workDir string, source string, reference string) (string, string, error) {
	outDir := OutDir(source)
	var prog, ref string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prog, err = Build(gctx, cfg, workDir, source, outDir)
		return err
	})
	if reference != "" {
		refOutDir := outDir
		if Stem(reference) == Stem(source) {
			refOutDir = filepath.Join(outDir, "ref")
		}
		g.Go(func() error {
			var err error
			ref, err = Build(gctx, cfg, workDir, reference, refOutDir)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return prog, ref, nil
}
