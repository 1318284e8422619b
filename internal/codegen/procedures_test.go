package codegen

import "testing"

// TestProcedureBodyIsSkippedAtRuntime exercises the JMP-over-body shape of
// §4.3.5: since call-site emission is an open extension, a declared
// procedure's body must never execute — only the code after it runs.
func TestProcedureBodyIsSkippedAtRuntime(t *testing.T) {
	src := `program P;
var
  a : integer;
procedure unused(x : integer);
begin
  write('should never run')
end;
begin
  a := 1;
  write(a)
end.`
	if got := runSource(t, src, ""); got != "1" {
		t.Fatalf("expected %q, got %q", "1", got)
	}
}

func TestMultipleProceduresBeforeBeginBlock(t *testing.T) {
	src := `program P;
procedure first(a : integer);
begin
  write('first')
end;
procedure second(b : integer);
begin
  write('second')
end;
begin
  write('main')
end.`
	if got := runSource(t, src, ""); got != "main" {
		t.Fatalf("expected %q, got %q", "main", got)
	}
}

func TestProcedureEntryAndReturnPatchIPAreRecorded(t *testing.T) {
	src := `program P;
procedure proc(a : integer);
begin
  a := a + 1
end;
begin
  write('done')
end.`
	_, p, err := compileSource(t, src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	entry, ok := p.sym.Lookup("proc")
	if !ok {
		t.Fatal("expected symbol table to contain the procedure")
	}
	if entry.Procedure == nil {
		t.Fatal("expected procedure extras to be set")
	}
	if entry.Procedure.EntryIP <= 0 {
		t.Fatalf("expected a positive entry IP past the leading JMP, got %d", entry.Procedure.EntryIP)
	}
	if entry.Procedure.ReturnPatchIP <= entry.Procedure.EntryIP {
		t.Fatalf("expected return_patch_ip (%d) to land after entry_ip (%d)", entry.Procedure.ReturnPatchIP, entry.Procedure.EntryIP)
	}
}

func TestRedeclaredProcedureNameIsRejected(t *testing.T) {
	src := `program P;
procedure dup(a : integer);
begin
  write('x')
end;
procedure dup(b : integer);
begin
  write('y')
end;
begin
  write('z')
end.`
	_, p, err := compileSource(t, src)
	if err == nil && len(p.Errors()) == 0 {
		t.Fatal("expected a semantic error for a redeclared procedure name")
	}
}
