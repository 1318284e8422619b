package codegen

import (
	"strings"
	"testing"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/vm"
)

// compileSource parses src into a fresh Parser/Buffer pair, returning both
// regardless of whether ParseProgram reported an error — callers that want
// to assert on diagnostics read p.Errors() themselves.
func compileSource(t *testing.T, src string) (*bytecode.Buffer, *Parser, error) {
	t.Helper()
	l := lexer.New(src)
	buf := bytecode.NewBuffer(bytecode.DefaultCapacity)
	p := New(l, buf, src, "test.lalg")
	err := p.ParseProgram()
	return buf, p, err
}

// runSource compiles and executes src, failing the test on any compile or
// runtime error, and returns the program's output.
func runSource(t *testing.T, src, stdin string) string {
	t.Helper()
	buf, p, err := compileSource(t, src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	var out strings.Builder
	machine := vm.New(buf.Bytes(), strings.NewReader(stdin), &out, vm.WithQuiet(true))
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}
