package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultCompiler     = "gcc"
	DefaultCompilerArgs = "-Wall -Wextra -lm"
	DefaultTimeoutSec   = 10
	DefaultNatsSubject  = "pal.results"
	DefaultSqsRegion    = "eu-central-1"
)

type NatsConfig struct {
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
}

type SqsConfig struct {
	QueueURL string `toml:"queue_url"`
	Region   string `toml:"region"`
}

type Config struct {
	Compiler     string     `toml:"compiler"`
	CompilerArgs string     `toml:"compiler_args"`
	TimeoutSec   int64      `toml:"timeout_sec"`
	Nats         NatsConfig `toml:"nats"`
	Sqs          SqsConfig  `toml:"sqs"`
}

func Default() Config {
	return Config{
		Compiler:     DefaultCompiler,
		CompilerArgs: DefaultCompilerArgs,
		TimeoutSec:   DefaultTimeoutSec,
		Nats:         NatsConfig{Subject: DefaultNatsSubject},
		Sqs:          SqsConfig{Region: DefaultSqsRegion},
	}
}

// Load layers, from lowest to highest precedence: defaults, the TOML file at
// tomlPath, variables from the dotenv file at envPath and the process
// environment. Missing files are skipped.
func Load(tomlPath string, envPath string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(tomlPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	dotenv, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to read env file: %w", err)
	}
	getEnv := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := getEnv("PAL_COMPILER"); ok {
		cfg.Compiler = v
	}
	if v, ok := getEnv("PAL_COMPILER_ARGS"); ok {
		cfg.CompilerArgs = v
	}
	if v, ok := getEnv("PAL_TIMEOUT"); ok {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid PAL_TIMEOUT %q: %w", v, err)
		}
		cfg.TimeoutSec = sec
	}
	if v, ok := getEnv("PAL_NATS_URL"); ok {
		cfg.Nats.URL = v
	}
	if v, ok := getEnv("PAL_NATS_SUBJECT"); ok {
		cfg.Nats.Subject = v
	}
	if v, ok := getEnv("PAL_SQS_QUEUE_URL"); ok {
		cfg.Sqs.QueueURL = v
	}
	if v, ok := getEnv("PAL_SQS_REGION"); ok {
		cfg.Sqs.Region = v
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Compiler == "" {
		return errors.New("compiler must not be empty")
	}
	if c.TimeoutSec <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSec)
	}
	return nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}
