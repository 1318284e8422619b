package codegen

import (
	"strconv"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/symboltable"
	"github.com/lalg-lang/lalg/internal/types"
)

func parseIntLit(lit string) (int32, error) {
	n, err := strconv.ParseInt(lit, 10, 32)
	return int32(n), err
}

// parseStatements implements `statements := { statement }`, stopping at
// any token that cannot begin a statement (the caller expects END or UNTIL
// next).
func (p *Parser) parseStatements() error {
	for p.startsStatement() {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) startsStatement() bool {
	switch p.cur.Type {
	case lexer.ID, lexer.READ, lexer.WRITE, lexer.WRITELN, lexer.IF,
		lexer.WHILE, lexer.REPEAT, lexer.FOR, lexer.CASE, lexer.SEMICOLON, lexer.COMMENT:
		return true
	default:
		return false
	}
}

// parseStatement implements:
//
//	statement := assignment | read_stmt | write_stmt | if_stmt | while_stmt
//	           | repeat_stmt | for_stmt | case_stmt | ';' | COMMENT
func (p *Parser) parseStatement() error {
	switch p.cur.Type {
	case lexer.SEMICOLON, lexer.COMMENT:
		p.advance()
		return nil
	case lexer.ID:
		return p.parseAssignment()
	case lexer.READ:
		return p.parseReadStmt()
	case lexer.WRITE, lexer.WRITELN:
		return p.parseWriteStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.REPEAT:
		return p.parseRepeatStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.CASE:
		return p.parseCaseStmt()
	default:
		return p.syntaxErrorAt("expected a statement, found %s", p.cur.Type)
	}
}

// parseAssignment implements `assignment := ID ('[' expr ']')? ':=' expr`
// per spec.md §4.3.2 (scalar) and §4.3.4 (array, via DUMP).
func (p *Parser) parseAssignment() error {
	name := p.cur
	entry, ok := p.sym.Lookup(name.Literal)
	if !ok {
		return p.semanticErrorfNoPos("Variable %s is not declared", name.Literal)
	}
	p.advance()

	if p.curIs(lexer.LBRACKET) {
		return p.parseArrayAssignment(entry, name)
	}

	if entry.Kind == symboltable.ArrayVar {
		return p.semanticErrorf(name.Pos, "array %s used without an index", name.Literal)
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return err
	}

	rhsType, err := p.parseExpr()
	if err != nil {
		return err
	}
	return p.emitAssignmentStore(entry.DataType, rhsType, entry.DataPtr, name.Pos)
}

// emitAssignmentStore implements spec.md §4.3.2's store dispatch (POP_CHAR,
// POP_REAL_LIT, or POP for matching types), plus an integer-to-real store
// that promotes with CVR before the POP.
func (p *Parser) emitAssignmentStore(lhs, rhs types.DataType, dp int32, pos lexer.Position) error {
	switch {
	case rhs == types.Char && lhs == types.Char:
		return p.emitOpImm(bytecode.PopChar, dp)
	case lhs == types.Real && rhs == types.RealLit:
		return p.emitOpImm(bytecode.PopRealLit, dp)
	case lhs == rhs:
		return p.emitOpImm(bytecode.Pop, dp)
	case lhs == types.Real && rhs == types.Int:
		if err := p.emitOp(bytecode.Cvr); err != nil {
			return err
		}
		return p.emitOpImm(bytecode.Pop, dp)
	default:
		return p.semanticErrorf(pos, "type mismatch: cannot assign %s to %s", rhs, lhs)
	}
}

// parseArrayAssignment implements `id[expr] := expr`, emitting the
// address-computation sequence, then the rhs, then DUMP.
func (p *Parser) parseArrayAssignment(entry *symboltable.Entry, name lexer.Token) error {
	if entry.Kind != symboltable.ArrayVar {
		return p.semanticErrorf(name.Pos, "%s is not an array", name.Literal)
	}
	p.advance() // '['
	idxType, err := p.parseExpr()
	if err != nil {
		return err
	}
	if idxType != types.Int {
		return p.semanticErrorf(name.Pos, "array index must be an integer, found %s", idxType)
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return err
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return err
	}

	if err := p.emitArrayAddress(entry); err != nil {
		return err
	}

	rhsType, err := p.parseExpr()
	if err != nil {
		return err
	}
	if !assignableArrayElement(entry.Array.ElementType, rhsType) {
		return p.semanticErrorf(name.Pos, "type mismatch: cannot assign %s into array of %s", rhsType, entry.Array.ElementType)
	}
	return p.emitOp(bytecode.Dump)
}

func assignableArrayElement(elem, rhs types.DataType) bool {
	if elem == rhs {
		return true
	}
	return elem == types.Real && (rhs == types.Int || rhs == types.RealLit)
}

// parseReadStmt implements `read_stmt := READ '(' ID {',' ID} ')'`: each
// named variable, in order, reads one input line.
func (p *Parser) parseReadStmt() error {
	if err := p.expect(lexer.READ); err != nil {
		return err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return err
	}
	for {
		if !p.curIs(lexer.ID) {
			return p.syntaxErrorAt("expected a variable name, found %s", p.cur.Type)
		}
		name := p.cur
		entry, ok := p.sym.Lookup(name.Literal)
		if !ok {
			return p.semanticErrorfNoPos("Variable %s is not declared", name.Literal)
		}
		p.advance()

		var op bytecode.OpCode
		switch entry.DataType {
		case types.Int:
			op = bytecode.ReadInt
		case types.Real:
			op = bytecode.ReadReal
		default:
			return p.semanticErrorf(name.Pos, "read() requires an integer or real variable, found %s", entry.DataType)
		}
		if err := p.emitOpImm(op, entry.DataPtr); err != nil {
			return err
		}

		if !p.curIs(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return p.expect(lexer.RPAREN)
}

// parseWriteStmt implements `write_stmt := (WRITE|WRITELN) '(' expr ')'`
// — an enrichment of spec.md §4.3's bare `write`/`writeln` productions,
// supporting every printable operand kind (§4.4's PRINT_* family). A bare
// variable or a bare integer literal is printed directly via PRINT_I/dp
// or PRINT_ILIT/imm, matching §4.4's opcode table exactly; any other
// expression is evaluated and stashed into a scratch slot first, since
// the PRINT_* opcodes read a stored value rather than a stack top.
func (p *Parser) parseWriteStmt() error {
	newline := p.curIs(lexer.WRITELN)
	p.advance()

	if err := p.expect(lexer.LPAREN); err != nil {
		return err
	}

	switch {
	case p.curIs(lexer.STRING_LIT):
		if err := p.emitStringLiteral(p.cur.Literal); err != nil {
			return err
		}
		p.advance()

	case p.curIs(lexer.INT_LIT) && p.peekIs(lexer.RPAREN):
		if err := p.emitPrintIntLit(p.cur); err != nil {
			return err
		}
		p.advance()

	case p.curIs(lexer.ID) && p.peekIs(lexer.RPAREN):
		if err := p.emitPrintVar(p.cur); err != nil {
			return err
		}
		p.advance()

	default:
		t, err := p.parseExpr()
		if err != nil {
			return err
		}
		if err := p.emitPrintExpr(t); err != nil {
			return err
		}
	}

	if err := p.expect(lexer.RPAREN); err != nil {
		return err
	}
	if newline {
		return p.emitOp(bytecode.NewLine)
	}
	return nil
}

func (p *Parser) emitPrintIntLit(tok lexer.Token) error {
	n, err := parseIntLit(tok.Literal)
	if err != nil {
		return p.semanticErrorf(tok.Pos, "malformed integer literal %q", tok.Literal)
	}
	return p.emitOpImm(bytecode.PrintIlit, n)
}

func (p *Parser) emitPrintVar(name lexer.Token) error {
	entry, ok := p.sym.Lookup(name.Literal)
	if !ok {
		return p.semanticErrorfNoPos("Variable %s is not declared", name.Literal)
	}
	switch entry.DataType {
	case types.Int:
		return p.emitOpImm(bytecode.PrintI, entry.DataPtr)
	case types.Real:
		return p.emitOpImm(bytecode.PrintR, entry.DataPtr)
	case types.Char:
		return p.emitOpImm(bytecode.PrintC, entry.DataPtr)
	case types.Bool:
		return p.emitOpImm(bytecode.PrintB, entry.DataPtr)
	default:
		return p.semanticErrorf(name.Pos, "cannot print a value of type %s", entry.DataType)
	}
}

// emitPrintExpr prints the value an expression just left on the stack.
// Since PRINT_I/PRINT_R/PRINT_C/PRINT_B print a stored variable rather
// than a stack top, a computed (non-bare-identifier) expression is
// stashed into a scratch data slot first.
func (p *Parser) emitPrintExpr(t types.DataType) error {
	switch t {
	case types.Int:
		scratch := p.nextDP()
		if err := p.emitOpImm(bytecode.Pop, scratch); err != nil {
			return err
		}
		return p.emitOpImm(bytecode.PrintI, scratch)
	case types.Real, types.RealLit:
		scratch := p.nextDP()
		if t == types.RealLit {
			if err := p.emitOpImm(bytecode.PopRealLit, scratch); err != nil {
				return err
			}
		} else if err := p.emitOpImm(bytecode.Pop, scratch); err != nil {
			return err
		}
		return p.emitOpImm(bytecode.PrintR, scratch)
	case types.Char:
		scratch := p.nextDP()
		if err := p.emitOpImm(bytecode.PopChar, scratch); err != nil {
			return err
		}
		return p.emitOpImm(bytecode.PrintC, scratch)
	case types.Bool:
		scratch := p.nextDP()
		if err := p.emitOpImm(bytecode.Pop, scratch); err != nil {
			return err
		}
		return p.emitOpImm(bytecode.PrintB, scratch)
	default:
		return p.semanticErrorf(p.cur.Pos, "cannot print a value of type %s", t)
	}
}

// emitStringLiteral emits PRINT_STR_LIT's calling convention: push the
// length, then the raw bytes follow in the code stream (spec.md §4.4/§6).
func (p *Parser) emitStringLiteral(s string) error {
	if err := p.emitOpImm(bytecode.PushInt, int32(len(s))); err != nil {
		return err
	}
	if err := p.emitOp(bytecode.PrintStrLit); err != nil {
		return err
	}
	_, err := p.buf.EmitRaw([]byte(s))
	if err != nil {
		return p.runtimeBufferError(err)
	}
	return nil
}
