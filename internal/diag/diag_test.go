package diag

import (
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestErrorMessages(t *testing.T) {
	pos := token.Position{Filename: "main.go", Line: 4, Column: 2}
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindUnknownOperation, Pos: pos, Name: "fmt.Println"}, `main.go:4:2: unknown operation "fmt.Println"`},
		{&Error{Kind: KindMissingArgument, Pos: pos, Name: "println"}, "main.go:4:2: println requires an argument"},
		{&Error{Kind: KindUnsupportedStatement, Pos: pos, Detail: "assignment"}, "main.go:4:2: unsupported statement: assignment"},
		{&Error{Kind: KindUnsupportedItem, Detail: "type declaration"}, "unsupported top-level item: type declaration"},
		{&Error{Kind: KindIO, Err: fs.ErrNotExist}, "read source: file does not exist"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: Error()=%q, want %q", tt.err.Kind, got, tt.want)
		}
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := &Error{Kind: KindMissingArgument, Name: "println"}
	wrapped := fmt.Errorf("compile main.go: %w", base)

	if got := KindOf(wrapped); got != KindMissingArgument {
		t.Fatalf("KindOf=%s, want %s", got, KindMissingArgument)
	}
	if got := KindOf(errors.New("plain")); got != KindInvalid {
		t.Fatalf("KindOf(plain)=%s, want %s", got, KindInvalid)
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	err := &Error{Kind: KindIO, Err: fs.ErrPermission}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatal("errors.Is did not reach the wrapped cause")
	}
}

func TestKindStrings(t *testing.T) {
	want := map[Kind]string{
		KindIO:                   "IoError",
		KindHostParse:            "HostParseError",
		KindUnsupportedItem:      "UnsupportedItem",
		KindUnsupportedStatement: "UnsupportedStatement",
		KindUnknownOperation:     "UnknownOperation",
		KindMissingArgument:      "MissingArgument",
		Kind(99):                 "Invalid",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("Kind(%d).String()=%q, want %q", int(k), k.String(), s)
		}
	}
}

func TestFormatColor(t *testing.T) {
	err := &Error{Kind: KindUnknownOperation, Name: "print"}

	plain := Format("pcc", err, false)
	if plain != `pcc: unknown operation "print"` {
		t.Fatalf("plain=%q", plain)
	}

	colored := Format("pcc", err, true)
	if colored == plain {
		t.Fatal("colored output has no styling")
	}
	if !strings.HasPrefix(colored, "\x1b[") {
		t.Fatalf("colored output does not start with an SGR sequence: %q", colored)
	}
	if got := ansi.Strip(colored); got != plain {
		t.Fatalf("Strip(colored)=%q, want %q", got, plain)
	}
}
