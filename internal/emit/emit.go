// Package emit connects a model.Program to the target backends.
package emit

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tinyrange/pcc/internal/model"
)

// Target names an output format.
type Target string

const (
	TargetAsm Target = "asm"
	TargetC   Target = "c"
)

// DefaultTarget is used when neither a flag nor a config file picks one.
const DefaultTarget = TargetAsm

// Backend renders a program as target source text. Implementations are
// pure: the same program always produces the same text.
type Backend interface {
	Emit(p *model.Program) string
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[Target]Backend)
)

// Register wires a backend under target. It panics when the same target is
// registered twice so mistakes are caught during init.
func Register(target Target, backend Backend) {
	if target == "" {
		panic("emit: cannot register backend for empty target")
	}
	if backend == nil {
		panic("emit: backend must be non-nil")
	}

	backendsMu.Lock()
	defer backendsMu.Unlock()

	if _, exists := backends[target]; exists {
		panic(fmt.Sprintf("emit: backend for %s already registered", target))
	}
	backends[target] = backend
}

func Lookup(target Target) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	if backend, ok := backends[target]; ok {
		return backend, nil
	}
	return nil, fmt.Errorf("emit: unknown target %q (available: %s)", target, strings.Join(targetsLocked(), ", "))
}

// Targets lists the registered targets in sorted order.
func Targets() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return targetsLocked()
}

func targetsLocked() []string {
	names := make([]string, 0, len(backends))
	for t := range backends {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// Emit renders p with the backend registered for target.
func Emit(target Target, p *model.Program) (string, error) {
	backend, err := Lookup(target)
	if err != nil {
		return "", err
	}
	return backend.Emit(p), nil
}

// Literal returns the text to place between double quotes for a print
// command. Undecoded text is returned unchanged.
func Literal(cmd model.PrintLine) string {
	if !cmd.Decoded {
		return cmd.Text
	}
	return Quote(cmd.Text)
}

// Quote escapes s for use inside a double-quoted C or GNU as string.
// Bytes outside printable ASCII become three-digit octal escapes, which
// both languages read the same way. '?' is escaped too so no trigraph
// can form.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if b < 0x20 || b >= 0x7f || b == '?' {
				fmt.Fprintf(&sb, `\%03o`, b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	return sb.String()
}
