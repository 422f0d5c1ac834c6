// Package factory links every backend into the emit registry.
package factory

import (
	"github.com/tinyrange/pcc/internal/emit"
	_ "github.com/tinyrange/pcc/internal/emit/amd64"
	_ "github.com/tinyrange/pcc/internal/emit/c"
)

// ParseTarget validates name against the registered backends. An empty
// name selects emit.DefaultTarget.
func ParseTarget(name string) (emit.Target, error) {
	if name == "" {
		return emit.DefaultTarget, nil
	}
	target := emit.Target(name)
	if _, err := emit.Lookup(target); err != nil {
		return "", err
	}
	return target, nil
}
