// Package stdlib builds the standard-library modules the compiler seeds
// into the outermost scope before it compiles user source (spec.md §4.3).
// Each module is either host-built (Natives, a NativeRecord of Foreign
// functions) or Spctr source compiled alongside the program (Source, used
// only by Iterator).
package stdlib

import "github.com/rail44/spctr/internal/compiler"

// Modules returns the full set of stdlib bindings, in the order the
// compiler assigns them outer-frame slots. Order has no effect on
// resolution (lookups are by name); Iterator is listed last, after the
// host-built modules. Its source refers to itself by name and uses the
// list `.concat` intrinsic, not any of the native modules.
func Modules() []compiler.StdlibModule {
	return []compiler.StdlibModule{
		listModule(),
		mapModule(),
		stringModule(),
		jsonModule(),
		iteratorModule(),
	}
}
