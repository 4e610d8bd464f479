// Package emit streams document trees as YAML or JSON text.
//
// # Usage
//
//	e := emit.New(os.Stdout)
//	e.BeginMap()
//	e.Scalar("name")
//	e.Scalar("alice")
//	e.Scalar("tags")
//	e.Set(state.Flow, state.LocalScope)
//	e.BeginSeq()
//	e.Scalar("a")
//	e.Scalar("b")
//	e.EndSeq()
//	e.EndMap()
//	if err := e.Err(); err != nil { ... }
//
// Map entries alternate key/value. Manipulators applied at local scope
// revert when the enclosing group closes.
//
// # Related Packages
//
//   - github.com/plume-format/plume/state - The settings engine
//   - github.com/plume-format/plume/format - Output format names
package emit
