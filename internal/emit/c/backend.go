package c

import (
	"github.com/tinyrange/pcc/internal/emit"
	"github.com/tinyrange/pcc/internal/model"
)

type backend struct{}

func init() {
	emit.Register(emit.TargetC, backend{})
}

func (backend) Emit(p *model.Program) string {
	return Generate(p)
}
