// Package state tracks the formatting settings of one emission session.
//
// Settings can be changed globally (they persist until changed again) or
// locally (they apply inside the innermost open group and revert when it
// closes). A journal of undo records, marked per group, makes the
// restore transactional: a local override never leaks past its group,
// and a global change made while a local override is active resurfaces
// once the override unwinds.
//
// # Usage
//
//	st := state.New()
//	st.SetIndent(4, state.GlobalScope)
//	st.BeginGroup(state.MapGroup)
//	st.SetFlowType(state.SeqGroup, state.Flow, state.LocalScope)
//	...
//	st.EndGroup(state.MapGroup) // seq layout default restored
//	if !st.IsOk() { ... }
//
// # Related Packages
//
//   - github.com/plume-format/plume/emit - The renderer driving a State
package state
