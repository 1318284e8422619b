package codegen

import "testing"

func TestIfThenWithoutElse(t *testing.T) {
	src := `program P;
var
  a : integer;
begin
  a := 5;
  if a > 3 then write('yes')
end.`
	if got := runSource(t, src, ""); got != "yes" {
		t.Fatalf("expected %q, got %q", "yes", got)
	}
}

func TestIfThenElseTakesFalseBranch(t *testing.T) {
	src := `program P;
var
  a : integer;
begin
  a := 1;
  if a > 3 then write('yes') else write('no')
end.`
	if got := runSource(t, src, ""); got != "no" {
		t.Fatalf("expected %q, got %q", "no", got)
	}
}

func TestIfThenBeginEndBlock(t *testing.T) {
	src := `program P;
var
  a : integer;
begin
  a := 5;
  if a = 5 then begin
    write('a');
    write('b')
  end
end.`
	if got := runSource(t, src, ""); got != "ab" {
		t.Fatalf("expected %q, got %q", "ab", got)
	}
}

func TestWhileLoopCountsUp(t *testing.T) {
	src := `program P;
var
  i, total : integer;
begin
  i := 0;
  total := 0;
  while i < 5 do begin
    total := total + i;
    i := i + 1
  end;
  write(total)
end.`
	if got := runSource(t, src, ""); got != "10" {
		t.Fatalf("expected %q, got %q", "10", got)
	}
}

func TestRepeatUntilRunsAtLeastOnce(t *testing.T) {
	src := `program P;
var
  i : integer;
begin
  i := 0;
  repeat
    i := i + 1
  until i = 3;
  write(i)
end.`
	if got := runSource(t, src, ""); got != "3" {
		t.Fatalf("expected %q, got %q", "3", got)
	}
}

func TestForLoopSumsRange(t *testing.T) {
	src := `program P;
var
  i, total : integer;
begin
  total := 0;
  for i := 1 to 4 do begin
    total := total + i
  end;
  write(total)
end.`
	if got := runSource(t, src, ""); got != "10" {
		t.Fatalf("expected %q, got %q", "10", got)
	}
}

func TestForLoopBoundMustBeIntLiteral(t *testing.T) {
	src := `program P;
var
  i, n : integer;
begin
  n := 4;
  for i := 1 to n do begin
    write(i)
  end
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error: FOR bound must be a literal integer")
	}
}

func TestCaseStatementMatchesArm(t *testing.T) {
	src := `program P;
var
  n : integer;
begin
  n := 2;
  case (n) of
    1 : write('one');
    2 : write('two');
    3 : write('three')
  end;
end.`
	if got := runSource(t, src, ""); got != "two" {
		t.Fatalf("expected %q, got %q", "two", got)
	}
}

// TestCaseStatementLeavesStackBalanced exercises the discard added after
// the case join: a statement following the CASE must still see a clean
// stack, and a second, independent CASE later in the same program must
// not be thrown off by a leftover selector from the first.
func TestCaseStatementLeavesStackBalanced(t *testing.T) {
	src := `program P;
var
  n, m : integer;
begin
  n := 1;
  case (n) of
    1 : write('a');
    2 : write('b')
  end;
  m := 2;
  case (m) of
    1 : write('c');
    2 : write('d')
  end;
  write('!')
end.`
	if got := runSource(t, src, ""); got != "ad!" {
		t.Fatalf("expected %q, got %q", "ad!", got)
	}
}

func TestCaseStatementWithCharSelector(t *testing.T) {
	src := `program P;
var
  c : char;
begin
  c := 'b';
  case (c) of
    'a' : write('A');
    'b' : write('B')
  end;
end.`
	if got := runSource(t, src, ""); got != "B" {
		t.Fatalf("expected %q, got %q", "B", got)
	}
}

func TestCaseStatementRejectsRealSelector(t *testing.T) {
	src := `program P;
var
  r : real;
begin
  r := 1.0;
  case (r) of
    1 : write('a')
  end
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error: CASE selector may not be real-typed")
	}
}
