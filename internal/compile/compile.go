// Package compile runs the whole pcc pipeline: read, parse, lower, emit.
package compile

import (
	"log/slog"
	"os"

	"github.com/tinyrange/pcc/internal/diag"
	"github.com/tinyrange/pcc/internal/emit"
	_ "github.com/tinyrange/pcc/internal/emit/factory"
	"github.com/tinyrange/pcc/internal/lower"
)

type Options struct {
	// Target selects the backend; empty means emit.DefaultTarget.
	Target emit.Target
	// Strict requires string-literal arguments and escapes them on output.
	Strict bool
}

// File reads path and compiles it. Read failures are reported as
// diag.KindIO.
func File(path string, opts Options) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", &diag.Error{Kind: diag.KindIO, Err: err}
	}
	return Source(path, src, opts)
}

// Source compiles src, using filename for positions in diagnostics. On
// failure no output is returned.
func Source(filename string, src []byte, opts Options) (string, error) {
	target := opts.Target
	if target == "" {
		target = emit.DefaultTarget
	}
	backend, err := emit.Lookup(target)
	if err != nil {
		return "", err
	}

	slog.Debug("Lowering source", "file", filename, "bytes", len(src), "strict", opts.Strict)
	prog, err := lower.Source(filename, src, lower.Options{Strict: opts.Strict})
	if err != nil {
		return "", err
	}
	slog.Debug("Program lowered", "functions", len(prog.Functions), "commands", prog.CommandCount())

	out := backend.Emit(prog)
	slog.Debug("Program emitted", "target", target, "bytes", len(out))
	return out, nil
}
