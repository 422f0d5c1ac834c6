package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tinyrange/pcc/internal/compile"
	"github.com/tinyrange/pcc/internal/config"
	"github.com/tinyrange/pcc/internal/diag"
	"github.com/tinyrange/pcc/internal/emit"
	"github.com/tinyrange/pcc/internal/emit/factory"
	"golang.org/x/term"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, diag.Format("pcc", err, colorEnabled(w)))
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type stringFlag struct {
	v   string
	set bool
}

func (f *stringFlag) String() string { return f.v }

func (f *stringFlag) Set(s string) error {
	f.v = s
	f.set = true
	return nil
}

type boolFlag struct {
	v   bool
	set bool
}

func (f *boolFlag) String() string { return strconv.FormatBool(f.v) }

func (f *boolFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.v = v
	f.set = true
	return nil
}

func (f *boolFlag) IsBoolFlag() bool { return true }

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pcc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var targetFlag stringFlag
	var strictFlag boolFlag
	fs.Var(&targetFlag, "target", fmt.Sprintf("Output format: %s (default %s)", strings.Join(emit.Targets(), ", "), emit.DefaultTarget))
	fs.Var(&strictFlag, "strict", "Require string literal arguments and escape them in the output")
	configPath := fs.String("config", "", "Path to a config file (default: "+config.Filename+" next to the source file)")
	dbg := fs.Bool("debug", false, "Enable debug logging")
	showVersion := fs.Bool("version", false, "Print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pcc [flags] <file.go>\n\n")
		fmt.Fprintf(stderr, "Translate a Go file made of println calls into assembly or C.\n\n")
		fmt.Fprintf(stderr, "Examples:\n")
		fmt.Fprintf(stderr, "  pcc hello.go > hello.s\n")
		fmt.Fprintf(stderr, "  pcc -target c hello.go > hello.c\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *dbg {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if *showVersion {
		fmt.Fprintf(stdout, "pcc %s\n", version)
		return nil
	}

	switch fs.NArg() {
	case 0:
		fmt.Fprintln(stdout, "Please supply the file to compile")
		fmt.Fprintln(stdout, "Usage: pcc [flags] <file.go>")
		return nil
	case 1:
	default:
		return fmt.Errorf("expected one source file, got %d arguments", fs.NArg())
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath, path)
	if err != nil {
		return err
	}
	if err := cfg.CheckVersion(version); err != nil {
		return err
	}

	// Explicit flags win over the config file.
	targetName := cfg.Target
	if targetFlag.set {
		targetName = targetFlag.v
	}
	target, err := factory.ParseTarget(targetName)
	if err != nil {
		return err
	}
	strict := cfg.Strict
	if strictFlag.set {
		strict = strictFlag.v
	}

	slog.Debug("Compiling", "file", path, "target", target, "strict", strict)
	out, err := compile.File(path, compile.Options{Target: target, Strict: strict})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// loadConfig reads the explicit config path if given, otherwise pcc.yaml
// beside the source file. A missing implicit config yields defaults.
func loadConfig(explicit, sourcePath string) (config.Config, error) {
	path := explicit
	if path == "" {
		found, ok := config.Find(sourcePath)
		if !ok {
			return config.Config{Version: config.CurrentVersion}, nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	slog.Debug("Loaded config", "path", path, "target", cfg.Target, "strict", cfg.Strict)
	return cfg, nil
}
