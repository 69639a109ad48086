package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.simplf.dev/pkg"
)

// checkFiles parses and desugars every file concurrently and reports the
// results in argument order.
func checkFiles(files []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	results := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			results[i] = checkFile(file, logger)
			return nil
		})
	}
	// Failures are recorded per file in results, so Wait has nothing to report
	_ = g.Wait()

	code := exitOK
	for i, err := range results {
		if err == nil {
			fmt.Fprintln(stdout, files[i]+": ok")
			continue
		}

		if c := printError(stderr, logger, err); c > code {
			code = c
		}
	}

	return code
}

func checkFile(filename string, logger *slog.Logger) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	ast, err := simplf.Parse(filename, f)
	if err != nil {
		return err
	}

	stmts := simplf.Desugar(ast.Statements)
	logger.Debug("checked", "file", filename, "statements", len(stmts))

	return nil
}
