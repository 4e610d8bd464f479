package state

// Scope says how long a setting change lasts: globally until changed
// again, or locally until the innermost open group closes.
type Scope int

const (
	GlobalScope Scope = iota
	LocalScope
)

func (s Scope) String() string {
	switch s {
	case GlobalScope:
		return "global"
	case LocalScope:
		return "local"
	default:
		return "<unknown scope>"
	}
}

// GroupKind is the kind of an open composite value. NoGroup is the
// top-level sentinel returned when no group is open.
type GroupKind int

const (
	NoGroup GroupKind = iota
	SeqGroup
	MapGroup
)

func (k GroupKind) String() string {
	switch k {
	case NoGroup:
		return "none"
	case SeqGroup:
		return "seq"
	case MapGroup:
		return "map"
	default:
		return "<unknown group kind>"
	}
}

// Layout is a group's chosen rendering. NoLayout is the top-level
// sentinel returned when no group is open.
type Layout int

const (
	NoLayout Layout = iota
	BlockLayout
	FlowLayout
)

func (l Layout) String() string {
	switch l {
	case NoLayout:
		return "none"
	case BlockLayout:
		return "block"
	case FlowLayout:
		return "flow"
	default:
		return "<unknown layout>"
	}
}
