package compile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/tinyrange/pcc/internal/diag"
	"github.com/tinyrange/pcc/internal/emit"
	"golang.org/x/tools/txtar"
)

// goldenCase is one testdata/*.txtar archive. The archive comment holds
// key=value options (target, strict); the files are input.go plus either
// want (expected output) or error (expected diag kind).
type goldenCase struct {
	opts      Options
	input     []byte
	want      string
	wantKind  string
	hasOutput bool
}

func loadGolden(t *testing.T, path string) goldenCase {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}

	var gc goldenCase
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		switch key {
		case "target":
			gc.opts.Target = emit.Target(value)
		case "strict":
			strict, err := strconv.ParseBool(value)
			if err != nil {
				t.Fatalf("%s: bad strict value %q", path, value)
			}
			gc.opts.Strict = strict
		default:
			t.Fatalf("%s: unknown option %q", path, key)
		}
	}

	for _, f := range ar.Files {
		switch f.Name {
		case "input.go":
			gc.input = f.Data
		case "want":
			gc.want = string(f.Data)
			gc.hasOutput = true
		case "error":
			gc.wantKind = strings.TrimSpace(string(f.Data))
		default:
			t.Fatalf("%s: unexpected file %q", path, f.Name)
		}
	}
	if gc.input == nil {
		t.Fatalf("%s: missing input.go", path)
	}
	if gc.hasOutput == (gc.wantKind != "") {
		t.Fatalf("%s: need exactly one of want or error", path)
	}
	return gc
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden files found")
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			gc := loadGolden(t, path)

			got, err := Source("input.go", gc.input, gc.opts)
			if gc.wantKind != "" {
				if err == nil {
					t.Fatalf("expected %s, got output:\n%s", gc.wantKind, got)
				}
				if got != "" {
					t.Fatalf("output produced alongside error: %q", got)
				}
				if kind := diag.KindOf(err).String(); kind != gc.wantKind {
					t.Fatalf("kind=%s, want %s (err: %v)", kind, gc.wantKind, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Source returned error: %v", err)
			}
			if got != gc.want {
				t.Fatalf("output mismatch\n got:\n%s\nwant:\n%s", got, gc.want)
			}

			again, err := Source("input.go", gc.input, gc.opts)
			if err != nil {
				t.Fatalf("second run: %v", err)
			}
			if again != got {
				t.Fatalf("second run differs\nfirst:\n%s\nsecond:\n%s", got, again)
			}
		})
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.go"), Options{})
	if got := diag.KindOf(err); got != diag.KindIO {
		t.Fatalf("kind=%s, want %s (err: %v)", got, diag.KindIO, err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error %v does not wrap fs.ErrNotExist", err)
	}
}

func TestFileReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.go")
	src := "package main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	got, err := File(path, Options{Target: emit.TargetC})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if !strings.Contains(got, "puts(\"hello\");\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestUnknownTarget(t *testing.T) {
	_, err := Source("input.go", []byte("package main\n"), Options{Target: "wasm"})
	if err == nil {
		t.Fatal("unknown target accepted")
	}
}
