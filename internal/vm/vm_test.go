package vm

import (
	"strings"
	"testing"

	"github.com/lalg-lang/lalg/internal/bytecode"
)

// TestIntegerArithmeticAndPrint runs a tiny hand-assembled bytecode
// sequence: a:=2; b:=3; sum := a+b via PUSH/PUSH/ADD/POP; PRINT_I sum; HALT.
func TestIntegerArithmeticAndPrint(t *testing.T) {
	b := bytecode.NewBuffer(256)
	mustEmit := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("emit: %v", err)
		}
	}

	const dpA, dpB, dpSum int32 = 0, 1, 2

	_, err := b.EmitOpImm(bytecode.PushInt, 2)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.Pop, dpA)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.PushInt, 3)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.Pop, dpB)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.PushVar, dpA)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.PushVar, dpB)
	mustEmit(err)
	_, err = b.EmitOp(bytecode.Add)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.Pop, dpSum)
	mustEmit(err)
	_, err = b.EmitOpImm(bytecode.PrintI, dpSum)
	mustEmit(err)
	_, err = b.EmitOp(bytecode.Halt)
	mustEmit(err)

	var out strings.Builder
	machine := New(b.Bytes(), strings.NewReader(""), &out, WithQuiet(true))
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "5" {
		t.Fatalf("expected output %q, got %q", "5", out.String())
	}
}

// TestJfalseSkipsBody exercises JFALSE directly: EQL leaves a false bool
// on the stack (2 <> 3), so the jump must skip the PRINT_ILIT and land
// exactly on HALT.
func TestJfalseSkipsBody(t *testing.T) {
	b := bytecode.NewBuffer(256)
	_, _ = b.EmitOpImm(bytecode.PushInt, 2)
	_, _ = b.EmitOpImm(bytecode.PushInt, 3)
	_, _ = b.EmitOp(bytecode.Eql)
	hole, _ := b.EmitJump(bytecode.Jfalse)
	_, _ = b.EmitOpImm(bytecode.PrintIlit, 999)
	b.PatchJumpHere(hole)
	_, _ = b.EmitOp(bytecode.Halt)

	var out strings.Builder
	machine := New(b.Bytes(), strings.NewReader(""), &out, WithQuiet(true))
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "" {
		t.Fatalf("expected JFALSE to skip the body, got output %q", out.String())
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	b := bytecode.NewBuffer(64)
	_, _ = b.EmitOpImm(bytecode.PushInt, 1)
	_, _ = b.EmitOpImm(bytecode.PushInt, 0)
	_, _ = b.EmitOp(bytecode.Div)
	_, _ = b.EmitOp(bytecode.Halt)

	var out strings.Builder
	machine := New(b.Bytes(), strings.NewReader(""), &out, WithQuiet(true))
	if err := machine.Run(); err == nil {
		t.Fatal("expected division-by-zero runtime error")
	}
}

func TestReadIntFromStdin(t *testing.T) {
	b := bytecode.NewBuffer(64)
	_, _ = b.EmitOpImm(bytecode.ReadInt, 0)
	_, _ = b.EmitOpImm(bytecode.PushVar, 0)
	_, _ = b.EmitOpImm(bytecode.PushVar, 0)
	_, _ = b.EmitOp(bytecode.Multiply)
	_, _ = b.EmitOpImm(bytecode.Pop, 1)
	_, _ = b.EmitOpImm(bytecode.PrintI, 1)
	_, _ = b.EmitOp(bytecode.Halt)

	var out strings.Builder
	machine := New(b.Bytes(), strings.NewReader("7\n"), &out, WithQuiet(true))
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "49" {
		t.Fatalf("expected 49, got %q", out.String())
	}
}
