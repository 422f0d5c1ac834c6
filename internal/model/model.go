// Package model holds the program representation produced by the front-end
// and consumed by the backends. Values are built once by lowering and are
// not modified afterwards.
package model

// Command is a single operation in a function body. The set of commands is
// closed to this package; backends switch over the concrete types.
type Command interface {
	command()
}

// PrintLine writes Text followed by a newline.
//
// When Decoded is false, Text is the source form of the argument with every
// double quote removed and must be embedded into generated code as-is. When
// Decoded is true, Text is the decoded literal value and backends escape it.
type PrintLine struct {
	Text    string
	Decoded bool
}

func (PrintLine) command() {}

type Function struct {
	Name string
	Body []Command
}

// Program is the lowered form of one source file. Functions appear in
// declaration order.
type Program struct {
	Functions []Function
}

// Entry returns the function the backends compile into main. A program
// without functions yields an empty function.
func (p *Program) Entry() Function {
	if p == nil || len(p.Functions) == 0 {
		return Function{}
	}
	return p.Functions[0]
}

func (p *Program) CommandCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, fn := range p.Functions {
		n += len(fn.Body)
	}
	return n
}
