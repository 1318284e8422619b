package codegen

import "testing"

func TestIntegerArithmeticPrecedence(t *testing.T) {
	src := `program P;
var
  r : integer;
begin
  r := 2 + 3 * 4;
  write(r)
end.`
	if got := runSource(t, src, ""); got != "14" {
		t.Fatalf("expected %q, got %q", "14", got)
	}
}

func TestIntDivAndRealDivide(t *testing.T) {
	src := `program P;
var
  q : integer;
  d : real;
begin
  q := 7 div 2;
  d := 7 / 2;
  write(q);
  write(d)
end.`
	if got := runSource(t, src, ""); got != "33.5" {
		t.Fatalf("expected %q, got %q", "33.5", got)
	}
}

func TestIntPlusRealPromotion(t *testing.T) {
	src := `program P;
var
  x : integer;
  y : real;
  z : real;
begin
  x := 3;
  y := 2.5;
  z := x + y;
  write(z)
end.`
	if got := runSource(t, src, ""); got != "5.5" {
		t.Fatalf("expected %q, got %q", "5.5", got)
	}
}

func TestRealMinusIntPromotion(t *testing.T) {
	src := `program P;
var
  y : real;
  z : real;
begin
  y := 10.5;
  z := y - 4;
  write(z)
end.`
	if got := runSource(t, src, ""); got != "6.5" {
		t.Fatalf("expected %q, got %q", "6.5", got)
	}
}

func TestNotRequiresBooleanOperand(t *testing.T) {
	src := `program P;
var
  x : integer;
begin
  x := not 3;
  write(x)
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error: NOT applied to a non-boolean operand")
	}
}

func TestUndeclaredVariableInExpressionIsRejected(t *testing.T) {
	src := `program P;
var
  a : integer;
begin
  a := b + 1;
  write(a)
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error for an undeclared variable")
	}
}

func TestArrayAddressComputationWithNonZeroLowBound(t *testing.T) {
	// Regression test for the §4.3.4 address sequence: picking an index
	// above the array's low bound must offset forward, not backward.
	src := `program P;
var
  i, s : integer;
  a : array[5..8] of integer;
begin
  a[5] := 10;
  a[8] := 40;
  i := 8;
  s := a[i];
  write(s)
end.`
	if got := runSource(t, src, ""); got != "40" {
		t.Fatalf("expected %q, got %q", "40", got)
	}
}
