package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".simplf.yml"

// Config is the contents of the optional YAML config file.
type Config struct {
	LogLevel string     `yaml:"log_level"`
	REPL     REPLConfig `yaml:"repl"`
}

type REPLConfig struct {
	Prompt         string `yaml:"prompt"`
	ContinuePrompt string `yaml:"continue_prompt"`
	HistoryFile    string `yaml:"history_file"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "warn",
		REPL: REPLConfig{
			Prompt:         "> ",
			ContinuePrompt: "... ",
			HistoryFile:    ".simplf_history",
		},
	}
}

// loadConfig reads path on top of the defaults. With an empty path the
// default file is used when it exists.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}
