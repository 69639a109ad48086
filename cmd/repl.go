package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"go.simplf.dev/pkg"
)

const banner = "Simplf REPL. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit, :env to list variables."

// prompter is the part of liner.State the REPL loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runREPL(cfg REPLConfig, stdout, stderr io.Writer, logger *slog.Logger) int {
	fmt.Fprintln(stdout, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg.HistoryFile)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				logger.Warn("could not save history", "file", histPath, "error", err)
			}
		}()
	}

	session := newSession(cfg, stdout, stderr, logger)
	session.loop(ln)

	return exitOK
}

// historyPath resolves a relative history file against the home directory.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, name)
}

type session struct {
	cfg    REPLConfig
	runner *simplf.Runner
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func newSession(cfg REPLConfig, stdout, stderr io.Writer, logger *slog.Logger) *session {
	return &session{
		cfg:    cfg,
		runner: simplf.NewRunner(simplf.WithOutput(stdout), simplf.WithLogger(logger)),
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

func (s *session) loop(p prompter) {
	for {
		src, ok := s.read(p)
		if !ok {
			fmt.Fprintln(s.stdout)
			return
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}

		p.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if !s.command(trimmed) {
				return
			}

			continue
		}

		s.eval(src)
	}
}

// read collects lines until they form a complete program, prompting with the
// continuation prompt while the parser reports the input as unfinished.
func (s *session) read(p prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := s.cfg.Prompt
		if b.Len() > 0 {
			prompt = s.cfg.ContinuePrompt
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the pending input
			b.Reset()
			continue
		}

		if err != nil {
			s.logger.Error("reading input", "error", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}

		_, perr := simplf.Parse("", strings.NewReader(src))
		var syntaxErrs simplf.SyntaxErrors
		if errors.As(perr, &syntaxErrs) && syntaxErrs.Incomplete() {
			continue
		}

		return src, true
	}
}

func (s *session) eval(src string) {
	if err := s.runner.RunString(src); err != nil {
		printError(s.stderr, s.logger, err)
	}
}

// command runs a ":" command and reports whether the session continues.
func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return false
	case ":env":
		for env := s.runner.Interpreter().Environment(); env != nil; env = env.Enclosing() {
			for _, name := range env.Names() {
				v, err := env.Get(simplf.Token{Typ: simplf.TokenIdentifier, Value: name})
				if err != nil {
					continue
				}

				fmt.Fprintf(s.stdout, "%s = %s\n", name, simplf.Stringify(v))
			}
		}
	default:
		fmt.Fprintf(s.stdout, "unknown command %s. Type :quit to exit.\n", cmd)
	}

	return true
}
