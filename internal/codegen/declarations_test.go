package codegen

import "testing"

func TestScalarDeclarationAndAssignment(t *testing.T) {
	src := `program P;
var
  a : integer;
begin
  a := 7;
  write(a)
end.`
	if got := runSource(t, src, ""); got != "7" {
		t.Fatalf("expected %q, got %q", "7", got)
	}
}

func TestDuplicateNameInSameDeclarationIsRejected(t *testing.T) {
	src := `program P;
var
  a, a : integer;
begin
  write(a)
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error for a repeated name in one declaration group")
	}
}

func TestRedeclaredVariableIsRejected(t *testing.T) {
	src := `program P;
var
  a : integer;
  a : real;
begin
  write(a)
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error for redeclaring a already-declared name")
	}
}

func TestArrayOfCharDoesNotMultiplyElementOffset(t *testing.T) {
	// Char arrays pack one slot per element (elementSlotWidth returns 1),
	// unlike int arrays which reserve 4 slots per element.
	src := `program P;
var
  letters : array[0..3] of char;
  c : char;
begin
  letters[0] := 'a';
  letters[3] := 'd';
  c := letters[3];
  write(c)
end.`
	if got := runSource(t, src, ""); got != "d" {
		t.Fatalf("expected %q, got %q", "d", got)
	}
}
