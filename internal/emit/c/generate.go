// Package c renders a program as a C translation unit that prints each
// line with puts.
package c

import (
	"fmt"
	"strings"

	"github.com/tinyrange/pcc/internal/emit"
	"github.com/tinyrange/pcc/internal/model"
)

const preamble = "#include <stdio.h>\nint main() {\n"

// Generate returns C source for the entry function of p. Only commands of
// the entry function are emitted; an empty body yields an empty main.
func Generate(p *model.Program) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	for _, cmd := range p.Entry().Body {
		switch cmd := cmd.(type) {
		case model.PrintLine:
			fmt.Fprintf(&sb, "puts(\"%s\");\n", emit.Literal(cmd))
		default:
			panic(fmt.Sprintf("c: unsupported command %T", cmd))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
