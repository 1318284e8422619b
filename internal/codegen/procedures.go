package codegen

import (
	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/symboltable"
)

// parseProcedure implements `proc_block := PROCEDURE ID '(' declaration
// ')' ';' begin_block_inner` per spec.md §4.3.5. The parser emits a JMP
// over the body so straight-line control skips past it at runtime,
// records entry_ip in the symbol table, parses the declaration and body,
// then emits a trailing JMP whose hole is remembered as return_patch_ip.
//
// Call-site emission is an explicitly open extension (spec.md §9): the
// source this is ported from never emits a CALL, never looks up a
// procedure name at a call site, and never patches return_patch_ip to
// anything. That shape is preserved here rather than guessed at. There is
// no call syntax: a statement that names a procedure is parsed as an
// assignment and fails with a syntax error where ':=' is expected.
func (p *Parser) parseProcedure() error {
	if err := p.expect(lexer.PROCEDURE); err != nil {
		return err
	}
	if !p.curIs(lexer.ID) {
		return p.syntaxErrorAt("expected a procedure name, found %s", p.cur.Type)
	}
	name := p.cur
	p.advance()

	if err := p.expect(lexer.LPAREN); err != nil {
		return err
	}

	skipHole, err := p.buf.EmitJump(bytecode.Jmp)
	if err != nil {
		return p.runtimeBufferError(err)
	}
	entryIP := p.buf.Len()

	entry := symboltable.Entry{
		Name:      name.Literal,
		Kind:      symboltable.Procedure,
		Procedure: &symboltable.ProcedureExtras{EntryIP: entryIP},
	}
	if !p.sym.Insert(entry) {
		return p.semanticErrorf(name.Pos, "procedure %s is already declared", name.Literal)
	}

	if p.curIs(lexer.ID) {
		if err := p.parseProcedureParam(); err != nil {
			return err
		}
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return err
	}

	if err := p.expect(lexer.BEGIN); err != nil {
		return err
	}
	if err := p.parseStatements(); err != nil {
		return err
	}
	if err := p.expect(lexer.END); err != nil {
		return err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return err
	}

	returnHole, err := p.buf.EmitJump(bytecode.Jmp)
	if err != nil {
		return p.runtimeBufferError(err)
	}
	if procEntry, ok := p.sym.Lookup(name.Literal); ok && procEntry.Procedure != nil {
		procEntry.Procedure.ReturnPatchIP = returnHole.ImmAddr
	}

	p.buf.PatchJumpHere(skipHole)
	return nil
}

// parseBeginBlock parses the `BEGIN statements END` part of `begin_block`,
// the program's top-level body (as opposed to begin_block_inner, used
// inside a procedure), and emits HALT. The trailing '.' is consumed by
// ParseProgram; nothing after it is examined.
func (p *Parser) parseBeginBlock() error {
	if err := p.expect(lexer.BEGIN); err != nil {
		return err
	}
	if err := p.parseStatements(); err != nil {
		return err
	}
	if err := p.expect(lexer.END); err != nil {
		return err
	}
	return p.emitOp(bytecode.Halt)
}
