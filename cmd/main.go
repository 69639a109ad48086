package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.simplf.dev/pkg"
)

const (
	exitOK       = 0
	exitFailure  = 1 // I/O problems and interpreter defects
	exitUsage    = 2
	exitSyntax   = 65
	exitSoftware = 70 // the script failed at runtime
)

const usage = `usage: simplf [flags] <command> [args]

commands:
  run FILE        run a script (also: simplf FILE)
  check FILE...   parse and desugar files without running them
  repl            start an interactive session (default)

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("simplf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "path to a YAML config file (default "+defaultConfigFile+" if present)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "simplf:", err)
		return exitFailure
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "simplf:", err)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) == 0 {
		return runREPL(cfg.REPL, stdout, stderr, logger)
	}

	switch cmd := rest[0]; cmd {
	case "run":
		if len(rest) != 2 {
			fs.Usage()
			return exitUsage
		}

		return runFile(rest[1], stdout, stderr, logger)
	case "check":
		if len(rest) < 2 {
			fs.Usage()
			return exitUsage
		}

		return checkFiles(rest[1:], stdout, stderr, logger)
	case "repl":
		return runREPL(cfg.REPL, stdout, stderr, logger)
	default:
		if len(rest) != 1 {
			fs.Usage()
			return exitUsage
		}

		return runFile(cmd, stdout, stderr, logger)
	}
}

func runFile(filename string, stdout, stderr io.Writer, logger *slog.Logger) int {
	runner := simplf.NewRunner(simplf.WithOutput(stdout), simplf.WithLogger(logger))

	if err := runner.RunFile(filename); err != nil {
		return printError(stderr, logger, err)
	}

	return exitOK
}

// printError reports err to the user and returns the exit code for it.
func printError(w io.Writer, logger *slog.Logger, err error) int {
	var (
		syntaxErrs   simplf.SyntaxErrors
		runtimeErr   *simplf.RuntimeError
		invariantErr *simplf.InvariantError
	)

	switch {
	case errors.As(err, &syntaxErrs):
		for _, e := range syntaxErrs {
			fmt.Fprintln(w, e)
		}

		return exitSyntax
	case errors.As(err, &runtimeErr):
		fmt.Fprintln(w, runtimeErr)
		return exitSoftware
	case errors.As(err, &invariantErr):
		logger.Error("interpreter defect", "error", invariantErr)
		fmt.Fprintln(w, "internal error, please report it:", invariantErr)
		return exitFailure
	default:
		fmt.Fprintln(w, "simplf:", err)
		return exitFailure
	}
}
