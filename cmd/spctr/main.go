// Command spctr is the CLI entry point of spec.md §6: run a source file,
// an inline expression (-c), or a piped program (-i), printing the final
// value's Inspect() form to stdout and setting a non-zero exit code on
// parse or runtime failure. Argument handling follows the teacher's
// cmd/funxy/main.go style — a hand-rolled switch over os.Args, no flag
// package.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/parser"
	"github.com/rail44/spctr/internal/stdlib"
	"github.com/rail44/spctr/internal/vm"
)

func main() {
	source, err := readSource(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spctr: %s\n", err)
		os.Exit(1)
	}

	result, err := run(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spctr: %s\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Inspect())
}

func run(source string) (object.Value, error) {
	program, err := parser.ParseProgram(source)
	if err != nil {
		return object.Value{}, fmt.Errorf("parse error: %w", err)
	}
	chunk, err := compiler.CompileProgram(stdlib.Modules(), program)
	if err != nil {
		return object.Value{}, fmt.Errorf("compile error: %w", err)
	}
	value, err := vm.Run(chunk)
	if err != nil {
		return object.Value{}, fmt.Errorf("runtime error: %w", err)
	}
	return value, nil
}

// readSource implements spec.md §6's three input modes:
//
//	spctr <path>     read a .sp file from disk
//	spctr -c <text>  compile the given text directly
//	spctr -i         read the program from stdin
//
// With no arguments at all, stdin is read only when it isn't a terminal
// (the teacher's builtins_term.go isatty check), so running the bare
// binary interactively prints a usage message instead of hanging.
func readSource(args []string) (string, error) {
	if len(args) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return "", fmt.Errorf("usage: spctr <path> | -c <text> | -i")
		}
		return readStdin()
	}

	switch args[0] {
	case "-c", "--compile":
		if len(args) < 2 {
			return "", fmt.Errorf("-c requires a source text argument")
		}
		return args[1], nil
	case "-i", "--stdin":
		return readStdin()
	default:
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
