package stdlib

import (
	_ "embed"

	"github.com/rail44/spctr/internal/compiler"
)

// iteratorSource is spec.md §4.3's "Iterator... implemented in Spctr
// itself and loaded by embedding its source at translation time",
// grounded in original_source/src/translator.rs's own pattern of
// `include_str!("iterator.spc")` compiled alongside the native modules in
// the same outermost frame. It builds a lazy cons-style generator over a
// List (spec.md §9's "to_iter produces a linked-next object... implement
// as an ordinary block value whose next field re-invokes itself on
// demand"): each node is a record `{value, next}`, `null` marks
// exhaustion, and every traversal here is written as a self-tail-call so
// walking a long list does not grow the call stack (spec.md §4.2.3).
//
//go:embed iterator.sp
var iteratorSource string

func iteratorModule() compiler.StdlibModule {
	return compiler.StdlibModule{
		Name:   "Iterator",
		Source: iteratorSource,
	}
}
