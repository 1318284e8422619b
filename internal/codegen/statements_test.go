package codegen

import "testing"

func TestWriteStringLiteral(t *testing.T) {
	src := `program P;
begin
  write('hello')
end.`
	if got := runSource(t, src, ""); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestWritelnAppendsNewline(t *testing.T) {
	src := `program P;
begin
  writeln('a');
  writeln('b')
end.`
	if got := runSource(t, src, ""); got != "a\nb\n" {
		t.Fatalf("expected %q, got %q", "a\nb\n", got)
	}
}

func TestWriteBareIntLiteralUsesPrintIlit(t *testing.T) {
	src := `program P;
begin
  write(42)
end.`
	if got := runSource(t, src, ""); got != "42" {
		t.Fatalf("expected %q, got %q", "42", got)
	}
}

func TestWriteComputedExpressionUsesScratchSlot(t *testing.T) {
	// Not a bare ID or bare literal: must go through the parseExpr +
	// emitPrintExpr fallback rather than the PRINT_ILIT/PRINT_I fast paths.
	src := `program P;
var
  a : integer;
begin
  a := 10;
  write(a + 1)
end.`
	if got := runSource(t, src, ""); got != "11" {
		t.Fatalf("expected %q, got %q", "11", got)
	}
}

func TestCharAssignmentUsesPopChar(t *testing.T) {
	src := `program P;
var
  c : char;
begin
  c := 'x';
  write(c)
end.`
	if got := runSource(t, src, ""); got != "x" {
		t.Fatalf("expected %q, got %q", "x", got)
	}
}

func TestRealLiteralAssignmentRounding(t *testing.T) {
	// POP_REAL_LIT rounds to two decimals the way the source's
	// '{0:.2f}'.format(...) does, rather than truncating.
	src := `program P;
var
  r : real;
begin
  r := 3.14159;
  write(r)
end.`
	if got := runSource(t, src, ""); got != "3.14" {
		t.Fatalf("expected %q, got %q", "3.14", got)
	}
}

func TestBooleanAssignmentAndPrint(t *testing.T) {
	src := `program P;
var
  flag : boolean;
begin
  flag := true;
  write(flag)
end.`
	if got := runSource(t, src, ""); got != "true" {
		t.Fatalf("expected %q, got %q", "true", got)
	}
}

func TestReadTwoIntsFromStdin(t *testing.T) {
	src := `program P;
var
  a, b, sum : integer;
begin
  read(a, b);
  sum := a + b;
  write(sum)
end.`
	if got := runSource(t, src, "3\n4\n"); got != "7" {
		t.Fatalf("expected %q, got %q", "7", got)
	}
}

func TestReadReal(t *testing.T) {
	src := `program P;
var
  x : real;
begin
  read(x);
  write(x)
end.`
	if got := runSource(t, src, "1.5\n"); got != "1.5" {
		t.Fatalf("expected %q, got %q", "1.5", got)
	}
}

func TestArrayElementAssignmentAndReadBack(t *testing.T) {
	src := `program P;
var
  nums : array[0..4] of integer;
  total : integer;
begin
  nums[0] := 1;
  nums[1] := 2;
  total := nums[0] + nums[1];
  write(total)
end.`
	if got := runSource(t, src, ""); got != "3" {
		t.Fatalf("expected %q, got %q", "3", got)
	}
}

func TestArrayElementTypeMismatchIsRejected(t *testing.T) {
	src := `program P;
var
  nums : array[0..4] of integer;
begin
  nums[0] := 'x'
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error assigning a char into an int array")
	}
}
