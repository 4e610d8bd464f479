package state

import (
	"math"

	"github.com/plume-format/plume/debug"
)

// digits10 is the number of decimal digits that survive a round trip
// through a binary float with the given mantissa width, matching the
// representable-digit bound of the target type rather than a constant.
func digits10(mantBits int) int {
	return int(float64(mantBits-1) * math.Log10(2))
}

var (
	floatDigits10  = digits10(24) // IEEE single
	doubleDigits10 = digits10(53) // IEEE double
)

// State is the formatting-settings overlay queried and mutated by an
// emitter during one emission session. It owns one scoped option per
// tunable concept, the stack of open groups, the per-node anchor/tag
// flags, and the sticky error.
//
// State is not safe for concurrent use; all calls are made in document
// order by a single renderer.
type State struct {
	charset     Option[Manip]
	strFmt      Option[Manip]
	boolFmt     Option[Manip]
	boolLenFmt  Option[Manip]
	boolCaseFmt Option[Manip]
	intFmt      Option[Manip]
	seqFmt      Option[Manip]
	mapFmt      Option[Manip]
	mapKeyFmt   Option[Manip]

	indent            Option[int]
	preCommentIndent  Option[int]
	postCommentIndent Option[int]
	floatPrecision    Option[int]
	doublePrecision   Option[int]

	log    journal
	groups []group

	// curIndent is the running absolute indent accumulator; it always
	// equals the indent of the innermost open group.
	curIndent int

	hasAnchor bool
	hasTag    bool

	err error // sticky, never cleared
}

// New returns a State with the session defaults.
func New() *State {
	s := &State{}
	s.charset.set(EmitNonASCII)
	s.strFmt.set(Auto)
	s.boolFmt.set(TrueFalseBool)
	s.boolLenFmt.set(LongBool)
	s.boolCaseFmt.set(LowerCase)
	s.intFmt.set(Dec)
	s.seqFmt.set(Block)
	s.mapFmt.set(Block)
	s.mapKeyFmt.set(Auto)
	s.indent.set(2)
	s.preCommentIndent.set(2)
	s.postCommentIndent.set(1)
	s.floatPrecision.set(floatDigits10)
	s.doublePrecision.set(doubleDigits10)
	return s
}

// SetLocalValue tries v against every settable concept at local scope.
// Only the concepts whose domain contains v accept it; the rest reject
// it silently. The aggregate operation itself never fails, so a single
// caller-supplied manipulator resolves against whichever concept it
// belongs to.
func (s *State) SetLocalValue(v Manip) {
	s.SetOutputCharset(v, LocalScope)
	s.SetStringFormat(v, LocalScope)
	s.SetBoolFormat(v, LocalScope)
	s.SetBoolCaseFormat(v, LocalScope)
	s.SetBoolLengthFormat(v, LocalScope)
	s.SetIntFormat(v, LocalScope)
	s.SetFlowType(SeqGroup, v, LocalScope)
	s.SetFlowType(MapGroup, v, LocalScope)
	s.SetMapKeyFormat(v, LocalScope)
}

// BeginNode marks the start of a node emission: the enclosing group
// gains a child and the per-node anchor/tag flags reset so they cannot
// leak from the previous node.
func (s *State) BeginNode() {
	if n := len(s.groups); n > 0 {
		s.groups[n-1].childCount++
	}
	s.hasAnchor = false
	s.hasTag = false
}

// BeginScalar is BeginNode; scalars carry no sub-structure.
func (s *State) BeginScalar() {
	s.BeginNode()
}

// BeginGroup opens a composite value of the given kind. Flow-ness is
// contagious downward: a group opened inside a flow group is flow
// regardless of its configured default.
func (s *State) BeginGroup(kind GroupKind) {
	s.BeginNode()

	w := s.indent.get()
	layout := s.groupLayout(kind)
	s.curIndent += w

	s.groups = append(s.groups, group{
		kind:   kind,
		layout: layout,
		indent: s.curIndent,
		width:  w,
		mark:   s.log.mark(),
	})
}

// EndGroup closes the innermost open group. An empty stack or a kind
// mismatch sets the sticky ErrUnmatchedGroupTag and leaves the rest of
// the close undone; callers must check IsOk after emission.
func (s *State) EndGroup(kind GroupKind) {
	n := len(s.groups)
	if n == 0 {
		s.setError(ErrUnmatchedGroupTag)
		return
	}
	g := s.groups[n-1]
	s.groups = s.groups[:n-1]
	if g.kind != kind {
		s.setError(ErrUnmatchedGroupTag)
		return
	}
	if s.curIndent < g.width {
		panic("state: indent accumulator underflow")
	}
	s.curIndent -= g.width

	restored := s.log.rollbackTo(g.mark)
	if restored > 0 && debug.Scope() {
		debug.Logf("state: end %s restored %d local override(s)\n", g.kind, restored)
	}
}

func (s *State) groupLayout(kind GroupKind) Layout {
	if s.CurrentGroupLayout() == FlowLayout {
		return FlowLayout
	}
	def := s.seqFmt.get()
	if kind == MapGroup {
		def = s.mapFmt.get()
	}
	if def == Flow {
		return FlowLayout
	}
	return BlockLayout
}

// Queries.

func (s *State) CurrentGroupKind() GroupKind {
	if len(s.groups) == 0 {
		return NoGroup
	}
	return s.groups[len(s.groups)-1].kind
}

func (s *State) CurrentGroupLayout() Layout {
	if len(s.groups) == 0 {
		return NoLayout
	}
	return s.groups[len(s.groups)-1].layout
}

// CurrentIndent is the absolute column indentation of the innermost
// open group, 0 at top level.
func (s *State) CurrentIndent() int {
	if len(s.groups) == 0 {
		return 0
	}
	return s.groups[len(s.groups)-1].indent
}

func (s *State) CurrentChildCount() int {
	if len(s.groups) == 0 {
		return 0
	}
	return s.groups[len(s.groups)-1].childCount
}

func (s *State) IsOk() bool { return s.err == nil }

// Err returns the sticky error, nil while the session is good.
func (s *State) Err() error { return s.err }

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Per-node transient flags, set by the renderer after BeginNode and
// queried while the same node renders.

func (s *State) MarkAnchor() { s.hasAnchor = true }
func (s *State) MarkTag()    { s.hasTag = true }

func (s *State) HasAnchor() bool { return s.hasAnchor }
func (s *State) HasTag() bool    { return s.hasTag }

// Mutators. Each validates the proposed value against its concept's
// domain and reports rejection without touching state or the sticky
// error; callers broadcast one manipulator to all setters and expect
// most to say no.

func (s *State) SetOutputCharset(v Manip, scope Scope) bool {
	switch v {
	case EmitNonASCII, EscapeNonASCII:
		setScoped(s, &s.charset, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetStringFormat(v Manip, scope Scope) bool {
	switch v {
	case Auto, SingleQuoted, DoubleQuoted, Literal:
		setScoped(s, &s.strFmt, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetBoolFormat(v Manip, scope Scope) bool {
	switch v {
	case OnOffBool, TrueFalseBool, YesNoBool:
		setScoped(s, &s.boolFmt, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetBoolLengthFormat(v Manip, scope Scope) bool {
	switch v {
	case LongBool, ShortBool:
		setScoped(s, &s.boolLenFmt, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetBoolCaseFormat(v Manip, scope Scope) bool {
	switch v {
	case UpperCase, LowerCase, CamelCase:
		setScoped(s, &s.boolCaseFmt, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetIntFormat(v Manip, scope Scope) bool {
	switch v {
	case Dec, Hex, Oct:
		setScoped(s, &s.intFmt, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetIndent(v int, scope Scope) bool {
	if v <= 0 {
		return false
	}
	setScoped(s, &s.indent, v, scope)
	return true
}

func (s *State) SetPreCommentIndent(v int, scope Scope) bool {
	if v <= 0 {
		return false
	}
	setScoped(s, &s.preCommentIndent, v, scope)
	return true
}

func (s *State) SetPostCommentIndent(v int, scope Scope) bool {
	if v <= 0 {
		return false
	}
	setScoped(s, &s.postCommentIndent, v, scope)
	return true
}

func (s *State) SetFlowType(kind GroupKind, v Manip, scope Scope) bool {
	if v != Block && v != Flow {
		return false
	}
	switch kind {
	case SeqGroup:
		setScoped(s, &s.seqFmt, v, scope)
	case MapGroup:
		setScoped(s, &s.mapFmt, v, scope)
	default:
		return false
	}
	return true
}

func (s *State) SetMapKeyFormat(v Manip, scope Scope) bool {
	switch v {
	case Auto, LongKey:
		setScoped(s, &s.mapKeyFmt, v, scope)
		return true
	default:
		return false
	}
}

func (s *State) SetFloatPrecision(v int, scope Scope) bool {
	if v < 0 || v > floatDigits10 {
		return false
	}
	setScoped(s, &s.floatPrecision, v, scope)
	return true
}

func (s *State) SetDoublePrecision(v int, scope Scope) bool {
	if v < 0 || v > doubleDigits10 {
		return false
	}
	setScoped(s, &s.doublePrecision, v, scope)
	return true
}

// Value getters consumed by the renderer.

func (s *State) OutputCharset() Manip    { return s.charset.get() }
func (s *State) StringFormat() Manip     { return s.strFmt.get() }
func (s *State) BoolFormat() Manip       { return s.boolFmt.get() }
func (s *State) BoolLengthFormat() Manip { return s.boolLenFmt.get() }
func (s *State) BoolCaseFormat() Manip   { return s.boolCaseFmt.get() }
func (s *State) IntFormat() Manip        { return s.intFmt.get() }
func (s *State) MapKeyFormat() Manip     { return s.mapKeyFmt.get() }

func (s *State) Indent() int            { return s.indent.get() }
func (s *State) PreCommentIndent() int  { return s.preCommentIndent.get() }
func (s *State) PostCommentIndent() int { return s.postCommentIndent.get() }
func (s *State) FloatPrecision() int    { return s.floatPrecision.get() }
func (s *State) DoublePrecision() int   { return s.doublePrecision.get() }

// FlowType returns the configured default layout manipulator for the
// given group kind, before flow contagion is applied.
func (s *State) FlowType(kind GroupKind) Manip {
	if kind == MapGroup {
		return s.mapFmt.get()
	}
	return s.seqFmt.get()
}
