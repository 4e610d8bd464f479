package emit

import (
	"io"
	"strings"

	"github.com/plume-format/plume/debug"
	"github.com/plume-format/plume/format"
	"github.com/plume-format/plume/state"
)

// nodePos is the position a node occupies in its enclosing group.
type nodePos int

const (
	posRoot nodePos = iota
	posSeqItem
	posMapKey
	posMapValue
)

// nodeKind distinguishes what is about to be written at a position.
type nodeKind int

const (
	nodeScalar nodeKind = iota
	nodeBlockGroup
	nodeFlowGroup
)

// egroup is the emitter's own bookkeeping for one open group: the
// column its children are written at, the position the group occupies,
// and whether its first child may share the group's opening line.
type egroup struct {
	col    int
	pos    nodePos
	flow   bool
	inline bool
}

// Emitter streams one document tree to w, deciding punctuation and
// whitespace by querying a state.State exactly as the settings engine
// expects: BeginNode/BeginScalar before values, BeginGroup/EndGroup
// around composites, Set* for manipulators.
type Emitter struct {
	w  io.Writer
	st *state.State

	fmat   format.Format
	colors *Colors

	err error

	compact     bool
	atLineStart bool
	docCount    int

	egroups []egroup

	pendingAnchor string
	pendingTag    string
}

func New(w io.Writer, opts ...EmitOption) *Emitter {
	e := &Emitter{w: w, compact: true, atLineStart: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.st == nil {
		e.st = state.New()
	}
	return e
}

// State exposes the settings engine for direct manipulation.
func (e *Emitter) State() *state.State { return e.st }

// IsOk reports whether neither a write error nor a sticky structural
// error has occurred.
func (e *Emitter) IsOk() bool { return e.Err() == nil }

// Err returns the first write error, or the state's sticky error.
func (e *Emitter) Err() error {
	if e.err != nil {
		return e.err
	}
	return e.st.Err()
}

func (e *Emitter) ok() bool { return e.err == nil && e.st.IsOk() }

// Set tries v against every settable concept at the given scope and
// reports whether any concept accepted it.
func (e *Emitter) Set(v state.Manip, scope state.Scope) bool {
	ok := e.st.SetOutputCharset(v, scope)
	ok = e.st.SetStringFormat(v, scope) || ok
	ok = e.st.SetBoolFormat(v, scope) || ok
	ok = e.st.SetBoolCaseFormat(v, scope) || ok
	ok = e.st.SetBoolLengthFormat(v, scope) || ok
	ok = e.st.SetIntFormat(v, scope) || ok
	ok = e.st.SetFlowType(state.SeqGroup, v, scope) || ok
	ok = e.st.SetFlowType(state.MapGroup, v, scope) || ok
	ok = e.st.SetMapKeyFormat(v, scope) || ok
	return ok
}

// Anchor attaches an anchor to the next node.
func (e *Emitter) Anchor(name string) {
	e.pendingAnchor = name
}

// Tag attaches a tag to the next node, written as given.
func (e *Emitter) Tag(tag string) {
	e.pendingTag = tag
}

// Alias writes an alias node referring to a previously anchored node.
func (e *Emitter) Alias(name string) {
	if e.fmat.IsJSON() {
		// no alias representation in JSON
		e.Null()
		return
	}
	e.node(e.color(AnchorColor, "*"+name))
}

func (e *Emitter) BeginSeq() { e.beginGroup(state.SeqGroup) }
func (e *Emitter) EndSeq()   { e.endGroup(state.SeqGroup) }
func (e *Emitter) BeginMap() { e.beginGroup(state.MapGroup) }
func (e *Emitter) EndMap()   { e.endGroup(state.MapGroup) }

// Newline forces a line break at the current position.
func (e *Emitter) Newline() {
	if !e.ok() {
		return
	}
	e.nl()
}

// Comment writes a comment: on its own line when one is starting,
// otherwise trailing the value just written, using the configured
// pre/post comment indents. Comments are dropped in JSON output and
// inside flow groups.
func (e *Emitter) Comment(text string) {
	if !e.ok() || e.fmat.IsJSON() {
		return
	}
	if e.inFlow() {
		if debug.Emit() {
			debug.Logf("emit: dropping comment %q in flow group\n", text)
		}
		return
	}
	body := e.color(CommentColor, "#"+strings.Repeat(" ", e.st.PostCommentIndent())+text)
	if e.atLineStart {
		e.indentTo(e.childCol())
		e.ws(body)
		e.nl()
		return
	}
	e.ws(strings.Repeat(" ", e.st.PreCommentIndent()) + body)
}

func (e *Emitter) beginGroup(kind state.GroupKind) {
	if !e.ok() {
		return
	}
	flow := e.nextGroupFlow(kind)
	nk := nodeBlockGroup
	if flow {
		nk = nodeFlowGroup
	}
	pos := e.pre(nk)

	hadAnchor := e.pendingAnchor != ""
	hadTag := e.pendingTag != ""
	props := e.takeProps()

	col := e.st.CurrentIndent()
	e.st.BeginGroup(kind)
	if hadAnchor {
		e.st.MarkAnchor()
	}
	if hadTag {
		e.st.MarkTag()
	}

	inline := e.compact && !flow && (pos == posSeqItem || pos == posMapKey)
	if props != "" {
		switch {
		case flow:
			e.ws(props + " ")
		case pos == posMapValue:
			e.ws(" " + props)
			inline = false
		default:
			e.ws(props)
			inline = false
		}
	}
	if flow {
		if kind == state.SeqGroup {
			e.ws(e.color(SepColor, "["))
		} else {
			e.ws(e.color(SepColor, "{"))
		}
	}
	e.egroups = append(e.egroups, egroup{col: col, pos: pos, flow: flow, inline: inline})
}

func (e *Emitter) endGroup(kind state.GroupKind) {
	if !e.ok() {
		return
	}
	count := e.st.CurrentChildCount()
	e.st.EndGroup(kind)
	if !e.st.IsOk() {
		return
	}
	n := len(e.egroups)
	if n == 0 {
		// state accepted the close but the emitter never opened it
		panic("emit: group bookkeeping out of sync")
	}
	g := e.egroups[n-1]
	e.egroups = e.egroups[:n-1]

	switch {
	case g.flow:
		if kind == state.SeqGroup {
			e.ws(e.color(SepColor, "]"))
		} else {
			e.ws(e.color(SepColor, "}"))
		}
	case count == 0:
		// empty block groups render with flow brackets
		empty := "[]"
		if kind == state.MapGroup {
			empty = "{}"
		}
		if g.pos == posMapValue {
			e.ws(" ")
		}
		e.ws(e.color(SepColor, empty))
	}

	switch g.pos {
	case posMapKey:
		e.postKey(true)
	case posRoot:
		e.nl()
	}
}

// nextGroupFlow decides the layout of a group about to open, so the
// emitter can write its opening before pushing. JSON mode and an
// enclosing flow group both force flow; otherwise the configured
// default for the kind applies.
func (e *Emitter) nextGroupFlow(kind state.GroupKind) bool {
	if e.fmat.IsJSON() {
		return true
	}
	if e.inFlow() {
		return true
	}
	return e.st.FlowType(kind) == state.Flow
}

// pre writes everything preceding the next node: document separators,
// seq item markers, key prefixes, flow separators, indentation.
func (e *Emitter) pre(nk nodeKind) nodePos {
	kind := e.st.CurrentGroupKind()
	count := e.st.CurrentChildCount()

	pos := posRoot
	switch kind {
	case state.SeqGroup:
		pos = posSeqItem
	case state.MapGroup:
		if count%2 == 0 {
			pos = posMapKey
		} else {
			pos = posMapValue
		}
	}

	switch {
	case kind == state.NoGroup:
		if e.docCount > 0 && !e.fmat.IsJSON() {
			e.ws(e.color(SepColor, "---") + "\n")
		}
		e.docCount++
	case e.inFlow():
		switch pos {
		case posSeqItem, posMapKey:
			if count > 0 {
				e.ws(e.color(SepColor, ",") + " ")
			}
		case posMapValue:
			e.ws(" ")
		}
	default:
		switch pos {
		case posSeqItem:
			e.blockAlign(count)
			e.ws(e.color(SepColor, "-") + e.markerPad(nk))
		case posMapKey:
			e.blockAlign(count)
			if e.explicitKey(nk) {
				e.ws(e.color(SepColor, "?") + e.markerPad(nk))
			}
		case posMapValue:
			if nk != nodeBlockGroup {
				e.ws(" ")
			}
		}
	}
	return pos
}

// markerPad separates a "-" or "?" marker from what follows on the same
// line. A block group that will open on the next line gets none.
func (e *Emitter) markerPad(nk nodeKind) string {
	if nk == nodeBlockGroup && !e.compact && e.pendingAnchor == "" && e.pendingTag == "" {
		return ""
	}
	return " "
}

// blockAlign positions the writer at the children column of the current
// group, except for the first child of an inline group, which shares
// the line the group opened on.
func (e *Emitter) blockAlign(count int) {
	if count == 0 {
		if n := len(e.egroups); n > 0 && e.egroups[n-1].inline {
			return
		}
	}
	e.nl()
	e.indentTo(e.childCol())
}

// postKey writes the key/value separator. Explicit (long-form) keys in
// block layout put the colon on its own line.
func (e *Emitter) postKey(wasGroup bool) {
	explicit := wasGroup || e.explicitKey(nodeScalar)
	if explicit && !e.inFlow() && !e.fmat.IsJSON() {
		e.nl()
		e.indentTo(e.childCol())
	}
	e.ws(e.color(SepColor, ":"))
}

// explicitKey reports whether the next map key uses the long "? key"
// form: always for composite keys, otherwise per the map key style.
func (e *Emitter) explicitKey(nk nodeKind) bool {
	if e.fmat.IsJSON() {
		return false
	}
	if nk != nodeScalar {
		return true
	}
	return e.st.MapKeyFormat() == state.LongKey
}

// node writes one already-formatted scalar value.
func (e *Emitter) node(text string) {
	if !e.ok() {
		return
	}
	pos := e.pre(nodeScalar)

	hadAnchor := e.pendingAnchor != ""
	hadTag := e.pendingTag != ""
	props := e.takeProps()

	e.st.BeginScalar()
	if hadAnchor {
		e.st.MarkAnchor()
	}
	if hadTag {
		e.st.MarkTag()
	}
	if props != "" {
		e.ws(props + " ")
	}
	e.ws(text)

	switch pos {
	case posMapKey:
		e.postKey(false)
	case posRoot:
		e.nl()
	}
}

func (e *Emitter) takeProps() string {
	if e.fmat.IsJSON() {
		e.pendingAnchor, e.pendingTag = "", ""
		return ""
	}
	var parts []string
	if e.pendingAnchor != "" {
		parts = append(parts, e.color(AnchorColor, "&"+e.pendingAnchor))
	}
	if e.pendingTag != "" {
		parts = append(parts, e.color(TagColor, e.pendingTag))
	}
	e.pendingAnchor, e.pendingTag = "", ""
	return strings.Join(parts, " ")
}

func (e *Emitter) childCol() int {
	if n := len(e.egroups); n > 0 {
		return e.egroups[n-1].col
	}
	return 0
}

// inFlow reports whether the innermost open group renders flow. The
// egroup records carry emitter-side forcing (JSON mode), which the
// state's configured layout never sees.
func (e *Emitter) inFlow() bool {
	if n := len(e.egroups); n > 0 {
		return e.egroups[n-1].flow
	}
	return false
}

func (e *Emitter) color(a ColorAttr, s string) string {
	if e.colors == nil {
		return s
	}
	return e.colors.Color(a, s)
}

// Low-level writing.

func (e *Emitter) nl() {
	if e.atLineStart {
		return
	}
	e.ws("\n")
}

func (e *Emitter) indentTo(col int) {
	if col > 0 {
		e.ws(strings.Repeat(" ", col))
	}
}

func (e *Emitter) ws(s string) {
	if s == "" || e.err != nil {
		return
	}
	if _, err := e.w.Write([]byte(s)); err != nil {
		e.err = err
		return
	}
	e.atLineStart = strings.HasSuffix(s, "\n")
}
