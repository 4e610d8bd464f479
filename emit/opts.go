package emit

import (
	"github.com/plume-format/plume/format"
	"github.com/plume-format/plume/state"
)

type EmitOption func(*Emitter)

func EmitFormat(f format.Format) EmitOption {
	return func(e *Emitter) { e.fmat = f }
}

func EmitColors(c *Colors) EmitOption {
	return func(e *Emitter) { e.colors = c }
}

// EmitCompact controls whether a block group opening as a seq item or
// map key shares its opening line with its first child. On by default.
func EmitCompact(v bool) EmitOption {
	return func(e *Emitter) { e.compact = v }
}

// EmitState supplies a pre-configured settings engine instead of the
// session defaults.
func EmitState(st *state.State) EmitOption {
	return func(e *Emitter) { e.st = st }
}
