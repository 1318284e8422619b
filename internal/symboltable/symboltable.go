// Package symboltable implements LALG's flat, linearly-scanned symbol table.
//
// Grounded on the teacher's internal/semantic/symbol_table.go approach of a
// slice of entries searched by name, simplified to match spec.md §4.2: LALG
// has no nested scopes, so one Table per program is enough.
package symboltable

import "github.com/lalg-lang/lalg/internal/types"

// Kind distinguishes the three things a name can denote.
type Kind int

const (
	Variable Kind = iota
	ArrayVar
	Procedure
)

// ArrayExtras carries the declared bounds and element type of an ARRAY
// symbol.
type ArrayExtras struct {
	Low, High   int
	IndexType   types.DataType
	ElementType types.DataType
}

// ProcedureExtras carries the two bytecode addresses a PROCEDURE symbol
// needs: where its body begins, and the address of the 4-byte immediate
// of the body's trailing JMP, which must eventually be patched to a
// RETURN-equivalent address (see
// spec.md §4.3.5 — procedure call emission is an open extension, so this
// slot is reserved but never patched to a call site today).
type ProcedureExtras struct {
	EntryIP       int
	ReturnPatchIP int
}

// Entry is a single declared name.
type Entry struct {
	Name      string
	Kind      Kind
	DataType  types.DataType
	DataPtr   int32
	Array     *ArrayExtras
	Procedure *ProcedureExtras
}

// Table is a flat, append-only, linearly-searched symbol table. Names are
// compared case-sensitively, matching spec.md §4.2 ("the LALG variant
// lowercases reserved words but not identifiers").
type Table struct {
	entries []Entry
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Lookup performs a linear scan for name, returning the entry and whether it
// was found.
func (t *Table) Lookup(name string) (*Entry, bool) {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return &t.entries[i], true
		}
	}
	return nil, false
}

// Insert appends entry, rejecting a name already present anywhere in the
// table (spec.md's "the parser rejects redeclaration").
func (t *Table) Insert(entry Entry) bool {
	if _, exists := t.Lookup(entry.Name); exists {
		return false
	}
	t.entries = append(t.entries, entry)
	return true
}

// All returns every entry, in insertion order, for diagnostics/disassembly.
func (t *Table) All() []Entry {
	return t.entries
}
