// Package amd64 renders a program as AT&T syntax x86 assembly for the GNU
// assembler. Each printed line becomes a puts call on a string stored in
// the data section.
package amd64

import (
	"fmt"
	"strings"

	"github.com/tinyrange/pcc/internal/emit"
	"github.com/tinyrange/pcc/internal/model"
)

const (
	// EntrySymbol is the global label execution starts at.
	EntrySymbol = "main"
	// ArgRegister receives the string address before each call.
	ArgRegister = "%edi"
	// PutsSymbol is the C library routine that prints a line.
	PutsSymbol = "puts"
)

// Label returns the data label for the n-th string, counting from zero.
func Label(n int) string {
	return fmt.Sprintf("str_%d", n)
}

// generator accumulates the two sections separately so every label minted
// while writing code is defined, in the same order, in the data section.
type generator struct {
	text strings.Builder
	data strings.Builder
	next int
}

func (g *generator) printLine(cmd model.PrintLine) {
	label := Label(g.next)
	g.next++

	fmt.Fprintf(&g.text, "mov $%s, %s\n", label, ArgRegister)
	fmt.Fprintf(&g.text, "call %s\n", PutsSymbol)

	fmt.Fprintf(&g.data, "%s:\n", label)
	fmt.Fprintf(&g.data, " .asciz \"%s\"\n", emit.Literal(cmd))
}

// Generate returns assembly for the entry function of p: the .text section
// with main, followed by the .data section. The code section comes first
// because execution enters at main and the data bytes must not precede it.
//
// main keeps the stack 16-byte aligned across the calls and returns 0.
func Generate(p *model.Program) string {
	g := &generator{}

	g.text.WriteString(".text\n")
	fmt.Fprintf(&g.text, ".global %s\n", EntrySymbol)
	fmt.Fprintf(&g.text, "%s:\n", EntrySymbol)
	g.text.WriteString("sub $8, %rsp\n")
	g.data.WriteString(".data\n")

	for _, cmd := range p.Entry().Body {
		switch cmd := cmd.(type) {
		case model.PrintLine:
			g.printLine(cmd)
		default:
			panic(fmt.Sprintf("amd64: unsupported command %T", cmd))
		}
	}

	g.text.WriteString("xor %eax, %eax\n")
	g.text.WriteString("add $8, %rsp\n")
	g.text.WriteString("ret\n")

	return g.text.String() + g.data.String()
}
