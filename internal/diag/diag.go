// Package diag defines the failure kinds reported by the pcc pipeline and
// renders them for humans.
package diag

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/charmbracelet/x/ansi"
)

// Kind enumerates the ways a run can fail before producing output.
type Kind int

const (
	KindInvalid Kind = iota
	KindIO
	KindHostParse
	KindUnsupportedItem
	KindUnsupportedStatement
	KindUnknownOperation
	KindMissingArgument
	KindMultipleFunctions
	KindNotStringLiteral
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindHostParse:
		return "HostParseError"
	case KindUnsupportedItem:
		return "UnsupportedItem"
	case KindUnsupportedStatement:
		return "UnsupportedStatement"
	case KindUnknownOperation:
		return "UnknownOperation"
	case KindMissingArgument:
		return "MissingArgument"
	case KindMultipleFunctions:
		return "MultipleFunctions"
	case KindNotStringLiteral:
		return "NotStringLiteral"
	default:
		return "Invalid"
	}
}

// Error is a pipeline failure. Name holds the offending operation or
// declaration name when there is one; Detail describes the offending node.
type Error struct {
	Kind   Kind
	Pos    token.Position
	Name   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.message()
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

func (e *Error) message() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("read source: %v", e.Err)
	case KindHostParse:
		return fmt.Sprintf("parse: %v", e.Err)
	case KindUnsupportedItem:
		return fmt.Sprintf("unsupported top-level item: %s", e.Detail)
	case KindUnsupportedStatement:
		return fmt.Sprintf("unsupported statement: %s", e.Detail)
	case KindUnknownOperation:
		return fmt.Sprintf("unknown operation %q", e.Name)
	case KindMissingArgument:
		return fmt.Sprintf("%s requires an argument", e.Name)
	case KindMultipleFunctions:
		return fmt.Sprintf("only single-function programs are supported (found second function %q)", e.Name)
	case KindNotStringLiteral:
		return fmt.Sprintf("%s argument must be a string literal (got %s)", e.Name, e.Detail)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "invalid error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInvalid.
func KindOf(err error) Kind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return KindInvalid
}

var errorStyle = ansi.Style{}.Bold().ForegroundColor(ansi.Red)

// Format renders err as a single "prog: message" diagnostic line without a
// trailing newline. When color is set the prefix is styled with SGR
// sequences; stripping them yields the uncolored form.
func Format(prog string, err error, color bool) string {
	prefix := prog + ":"
	if color {
		prefix = errorStyle.Styled(prefix)
	}
	return prefix + " " + err.Error()
}
