// Package config holds the settings for a funsh runtime, read from .env
// files and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel = "FUNSH_LOG_LEVEL"
	EnvColor    = "FUNSH_COLOR"
	EnvPrompt   = "FUNSH_PROMPT"
	EnvTrace    = "FUNSH_TRACE"

	DefaultEnvFile = ".env"
	DefaultPrompt  = "Enter an integer: "
)

type Config struct {
	// LogLevel is one of DEBUG, INFO, WARN, ERROR or OFF.  Empty leaves the
	// process wide level as it is.
	LogLevel string

	// Color enables ANSI colours in the console output.
	Color bool

	// Prompt is written before each line read for a read() expression.
	Prompt string

	// Trace records an execution trace for every run.
	Trace bool
}

func Default() *Config {
	return &Config{Prompt: DefaultPrompt}
}

// Load builds a Config from the given env files, falling back to .env in the
// working directory (if present) when no files are named.  Variables already
// set in the process environment take precedence over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			files = []string{DefaultEnvFile}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	fileVals := map[string]string{}
	if len(files) > 0 {
		vals, err := godotenv.Read(files...)
		if err != nil {
			return nil, fmt.Errorf("loading env files %v: %w", files, err)
		}
		fileVals = vals
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	})
}

// FromLookup builds a Config from an arbitrary key lookup.
func FromLookup(lookup func(key string) (string, bool)) (*Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvPrompt); ok {
		cfg.Prompt = v
	}
	var err error
	if cfg.Color, err = boolVar(lookup, EnvColor); err != nil {
		return nil, err
	}
	if cfg.Trace, err = boolVar(lookup, EnvTrace); err != nil {
		return nil, err
	}
	return cfg, nil
}

func boolVar(lookup func(string) (string, bool), key string) (bool, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return b, nil
}
