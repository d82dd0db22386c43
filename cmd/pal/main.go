package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/pal/internal/config"
	"github.com/programme-lv/pal/internal/xdg"
)

const appName = "pal"

// errRunFailed marks a run that completed but had failing jobs.
var errRunFailed = errors.New("some jobs failed")

type palApp struct {
	out     io.Writer
	cfg     config.Config
	dataDir string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &palApp{out: os.Stdout}
	err := app.command().Run(ctx, os.Args)
	switch {
	case err == nil:
	case errors.Is(err, errRunFailed):
		os.Exit(2)
	default:
		slog.Error("pal failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})))
}

func (a *palApp) command() *cli.Command {
	return &cli.Command{
		Name:  appName,
		Usage: "test a program against expected outputs or a reference program",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "compiler",
				Aliases: []string{"c"},
				Usage:   "compiler used to build the sources (default: gcc)",
			},
			&cli.StringFlag{
				Name:  "compiler-args",
				Usage: "arguments passed to the compiler (default: -Wall -Wextra -lm)",
			},
			&cli.Int64Flag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "time limit in seconds for one run of a program (default: 10)",
				Local:   true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "compare the program's output with the expected output in the test file",
				ArgsUsage: "SOURCE [TEST_FILE]",
				Action:    a.checkAction,
			},
			{
				Name:      "pal",
				Usage:     "compare the program's output with a reference program for every input in the test file",
				ArgsUsage: "SOURCE [REFERENCE] [TEST_FILE]",
				Action:    a.palAction,
			},
			{
				Name:      "random-pal",
				Usage:     "compare the program's output with a reference program for randomly generated inputs",
				ArgsUsage: "SOURCE [REFERENCE] [TEST_FILE]",
				Action:    a.randomPalAction,
			},
			a.sessionCommand(),
		},
	}
}

func (a *palApp) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	setupLogging(cmd.Bool("verbose"))

	dirs := xdg.NewDirs()
	cfg, err := config.Load(filepath.Join(dirs.AppConfigDir(appName), "config.toml"), ".env")
	if err != nil {
		return ctx, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.IsSet("compiler") {
		cfg.Compiler = cmd.String("compiler")
	}
	if cmd.IsSet("compiler-args") {
		cfg.CompilerArgs = cmd.String("compiler-args")
	}
	if cmd.IsSet("timeout") {
		cfg.TimeoutSec = cmd.Int64("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}
	a.cfg = cfg

	a.dataDir = dirs.AppDataDir(appName)
	if err := dirs.EnsureDir(a.dataDir); err != nil {
		return ctx, fmt.Errorf("failed to create data directory: %w", err)
	}

	fmt.Fprintf(a.out, "Running on: %s, CPU cores: %d\n", runtime.GOOS, runtime.NumCPU())
	fmt.Fprintf(a.out, "Data directory: %s\n", a.dataDir)
	slog.Debug("configuration loaded",
		"compiler", cfg.Compiler,
		"compiler_args", cfg.CompilerArgs,
		"timeout_sec", cfg.TimeoutSec,
		"nats", cfg.Nats.URL != "",
		"sqs", cfg.Sqs.QueueURL != "")
	return ctx, nil
}
