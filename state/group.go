package state

// group is one open, not-yet-closed composite value. Groups are plain
// values owned by the State's stack, pushed by BeginGroup and popped by
// EndGroup in strict LIFO order.
type group struct {
	kind   GroupKind
	layout Layout

	// indent is the absolute column indentation of the group; width is
	// this group's own contribution, paid back on EndGroup.
	indent int
	width  int

	childCount int

	// mark is the journal position when the group began; local
	// overrides recorded past it belong to this group.
	mark int
}
