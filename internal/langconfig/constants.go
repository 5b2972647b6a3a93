// Package langconfig holds a few named language constants, following the
// teacher's internal/config package: the source file extension and the
// stdlib module names. No other package in this repository imports it.
package langconfig

// SourceFileExt is the recognized Spctr source file extension.
const SourceFileExt = ".sp"

// HasSourceExt reports whether path ends with the recognized source
// extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// TrimSourceExt removes the recognized source extension from name, if
// present.
func TrimSourceExt(name string) string {
	if HasSourceExt(name) {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// Built-in stdlib module names, the names under which internal/stdlib's
// modules are seeded into the outermost scope (internal/stdlib spells the
// same names as string literals rather than using these constants).
const (
	ListModuleName     = "List"
	MapModuleName      = "Map"
	StringModuleName   = "String"
	JsonModuleName     = "Json"
	IteratorModuleName = "Iterator"
)
