// Package format names the output formats the plume emitter can produce.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if err != nil { ... }
//	ext := f.Suffix() // ".yaml"
//
// # Related Packages
//
//   - github.com/plume-format/plume/emit - Emit documents in a format
package format
