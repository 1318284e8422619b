package codegen

import (
	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/types"
)

// parseCondition implements `condition := E relop E`.
func (p *Parser) parseCondition() error {
	t1, err := p.parseExpr()
	if err != nil {
		return err
	}
	if !isRelop(p.cur.Type) {
		return p.syntaxErrorAt("expected a relational operator, found %s", p.cur.Type)
	}
	relop := p.cur.Type
	pos := p.cur.Pos
	p.advance()

	t2, err := p.parseExpr()
	if err != nil {
		return err
	}
	return p.emitCondition(relop, t1, t2, pos)
}

func isRelop(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LT, lexer.LTE, lexer.GT, lexer.GTE, lexer.EQ, lexer.NEQ:
		return true
	default:
		return false
	}
}

// parseIfStmt implements spec.md §4.3.3's canonical IF/THEN/ELSE
// back-patch choreography.
//
//	if_stmt := IF condition THEN (BEGIN statements END | statement) [ELSE statement]
func (p *Parser) parseIfStmt() error {
	if err := p.expect(lexer.IF); err != nil {
		return err
	}
	if err := p.parseCondition(); err != nil {
		return err
	}
	if err := p.expect(lexer.THEN); err != nil {
		return err
	}

	falseHole, err := p.buf.EmitJump(bytecode.Jfalse)
	if err != nil {
		return p.runtimeBufferError(err)
	}

	if err := p.parseThenBranch(); err != nil {
		return err
	}

	if p.curIs(lexer.ELSE) {
		endHole, err := p.buf.EmitJump(bytecode.Jmp)
		if err != nil {
			return p.runtimeBufferError(err)
		}
		p.buf.PatchJumpHere(falseHole)

		p.advance()
		if err := p.parseStatement(); err != nil {
			return err
		}
		p.buf.PatchJumpHere(endHole)
	} else {
		p.buf.PatchJumpHere(falseHole)
	}
	return nil
}

func (p *Parser) parseThenBranch() error {
	if p.curIs(lexer.BEGIN) {
		p.advance()
		if err := p.parseStatements(); err != nil {
			return err
		}
		return p.expect(lexer.END)
	}
	return p.parseStatement()
}

// parseWhileStmt implements `while_stmt := WHILE condition DO BEGIN
// statements END ';'`: the loop top is the condition's start address, the
// exit hole is patched after the body.
func (p *Parser) parseWhileStmt() error {
	if err := p.expect(lexer.WHILE); err != nil {
		return err
	}
	loopTop := p.buf.Len()
	if err := p.parseCondition(); err != nil {
		return err
	}
	if err := p.expect(lexer.DO); err != nil {
		return err
	}

	exitHole, err := p.buf.EmitJump(bytecode.Jfalse)
	if err != nil {
		return p.runtimeBufferError(err)
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

	if err := p.emitOpImm(bytecode.Jmp, int32(loopTop)); err != nil {
		return err
	}
	p.buf.PatchJumpHere(exitHole)
	return p.expect(lexer.SEMICOLON)
}

// parseRepeatStmt implements `repeat_stmt := REPEAT statements UNTIL
// condition` — body then condition then JFALSE back to the loop top (no
// hole: the target is already known).
func (p *Parser) parseRepeatStmt() error {
	if err := p.expect(lexer.REPEAT); err != nil {
		return err
	}
	loopTop := p.buf.Len()
	if err := p.parseStatements(); err != nil {
		return err
	}
	if err := p.expect(lexer.UNTIL); err != nil {
		return err
	}
	if err := p.parseCondition(); err != nil {
		return err
	}
	return p.emitOpImm(bytecode.Jfalse, int32(loopTop))
}

// parseForStmt implements `for_stmt := FOR ID ':=' expr TO INT_LIT DO
// BEGIN statements END ';'`, desugared per spec.md §4.3.3: an assignment,
// a loop-top comparison, a body, an increment, and a jump back to the top.
func (p *Parser) parseForStmt() error {
	if err := p.expect(lexer.FOR); err != nil {
		return err
	}
	if !p.curIs(lexer.ID) {
		return p.syntaxErrorAt("expected a loop variable, found %s", p.cur.Type)
	}
	loopVar := p.cur
	entry, ok := p.sym.Lookup(loopVar.Literal)
	if !ok {
		return p.semanticErrorfNoPos("Variable %s is not declared", loopVar.Literal)
	}
	if entry.DataType != types.Int {
		return p.semanticErrorf(loopVar.Pos, "for-loop variable %s must be an integer", loopVar.Literal)
	}
	p.advance()

	if err := p.expect(lexer.ASSIGN); err != nil {
		return err
	}
	startType, err := p.parseExpr()
	if err != nil {
		return err
	}
	if err := p.emitAssignmentStore(entry.DataType, startType, entry.DataPtr, loopVar.Pos); err != nil {
		return err
	}

	if err := p.expect(lexer.TO); err != nil {
		return err
	}
	if !p.curIs(lexer.INT_LIT) {
		// spec.md §9: the FOR bound must be a literal integer token, not
		// a general expression — do not generalise without a clear decision.
		return p.syntaxErrorAt("expected an integer literal loop bound, found %s", p.cur.Type)
	}
	bound, err := parseIntLit(p.cur.Literal)
	if err != nil {
		return p.semanticErrorf(p.cur.Pos, "malformed integer literal %q", p.cur.Literal)
	}
	p.advance()

	if err := p.expect(lexer.DO); err != nil {
		return err
	}

	loopTop := p.buf.Len()
	if err := p.emitOpImm(bytecode.PushVar, entry.DataPtr); err != nil {
		return err
	}
	if err := p.emitOpImm(bytecode.PushInt, bound); err != nil {
		return err
	}
	// GTE is the opcode for lexical '<=' (see relOpcode): loop while i <= bound.
	if err := p.emitOp(bytecode.Gte); err != nil {
		return err
	}
	exitHole, err := p.buf.EmitJump(bytecode.Jfalse)
	if err != nil {
		return p.runtimeBufferError(err)
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

	if err := p.emitOpImm(bytecode.PushVar, entry.DataPtr); err != nil {
		return err
	}
	if err := p.emitOpImm(bytecode.PushInt, 1); err != nil {
		return err
	}
	if err := p.emitOp(bytecode.Add); err != nil {
		return err
	}
	if err := p.emitOpImm(bytecode.Pop, entry.DataPtr); err != nil {
		return err
	}
	if err := p.emitOpImm(bytecode.Jmp, int32(loopTop)); err != nil {
		return err
	}
	p.buf.PatchJumpHere(exitHole)
	return p.expect(lexer.SEMICOLON)
}

// parseCaseStmt implements `case_stmt := CASE '(' expr ')' OF { const ':'
// statement } END ';'` per spec.md §4.3.3, with arms optionally separated
// by ';': the selector is duplicated (DUP) for each arm's comparison, every
// arm falls through to a shared end hole, and real-typed selectors are
// rejected (spec's Non-goals).
func (p *Parser) parseCaseStmt() error {
	if err := p.expect(lexer.CASE); err != nil {
		return err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return err
	}
	selType, err := p.parseExpr()
	if err != nil {
		return err
	}
	if selType == types.Real || selType == types.RealLit {
		return p.semanticErrorf(p.cur.Pos, "case selector may not be real-typed")
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return err
	}
	if err := p.expect(lexer.OF); err != nil {
		return err
	}

	var endHoles []bytecode.Hole

	for p.armStarts() {
		if err := p.emitOp(bytecode.Dup); err != nil {
			return err
		}
		if err := p.emitCaseConst(selType); err != nil {
			return err
		}
		if err := p.emitOp(bytecode.Eql); err != nil {
			return err
		}
		if err := p.expect(lexer.COLON); err != nil {
			return err
		}

		armHole, err := p.buf.EmitJump(bytecode.Jfalse)
		if err != nil {
			return p.runtimeBufferError(err)
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
		for p.curIs(lexer.SEMICOLON) {
			p.advance()
		}
		endHole, err := p.buf.EmitJump(bytecode.Jmp)
		if err != nil {
			return p.runtimeBufferError(err)
		}
		endHoles = append(endHoles, endHole)
		p.buf.PatchJumpHere(armHole)
	}

	if err := p.expect(lexer.END); err != nil {
		return err
	}
	for _, h := range endHoles {
		p.buf.PatchJumpHere(h)
	}
	// Every arm's DUP left the original selector value under its
	// comparison result; on every path reaching this join (matched or
	// fallen through) that one value is still live. Spec.md's "duplicate
	// selector" choreography never says to discard it, but leaving it
	// would violate the stack-depth-zero-at-HALT invariant as soon as a
	// CASE appears anywhere but the very end of the program, so it is
	// popped here into a throwaway slot.
	discard := p.nextDP()
	if err := p.emitOpImm(bytecode.Pop, discard); err != nil {
		return err
	}
	return p.expect(lexer.SEMICOLON)
}

func (p *Parser) armStarts() bool {
	switch p.cur.Type {
	case lexer.INT_LIT, lexer.CHAR_LIT, lexer.TRUE, lexer.FALSE:
		return true
	default:
		return false
	}
}

// emitCaseConst pushes a single arm constant, checked against the
// selector's type.
func (p *Parser) emitCaseConst(selType types.DataType) error {
	pos := p.cur.Pos
	switch p.cur.Type {
	case lexer.INT_LIT:
		if selType != types.Int {
			return p.semanticErrorf(pos, "case arm constant is an integer but the selector is %s", selType)
		}
		n, err := parseIntLit(p.cur.Literal)
		if err != nil {
			return p.semanticErrorf(p.cur.Pos, "malformed integer literal %q", p.cur.Literal)
		}
		p.advance()
		return p.emitOpImm(bytecode.PushInt, n)
	case lexer.CHAR_LIT:
		if selType != types.Char {
			return p.semanticErrorf(pos, "case arm constant is a char but the selector is %s", selType)
		}
		lit := p.cur.Literal
		p.advance()
		var r rune
		for _, c := range lit {
			r = c
			break
		}
		return p.emitOpImm(bytecode.PushChar, int32(r))
	case lexer.TRUE:
		if selType != types.Bool {
			return p.semanticErrorf(pos, "case arm constant is a boolean but the selector is %s", selType)
		}
		p.advance()
		return p.emitOpImm(bytecode.PushBool, 1)
	case lexer.FALSE:
		if selType != types.Bool {
			return p.semanticErrorf(pos, "case arm constant is a boolean but the selector is %s", selType)
		}
		p.advance()
		return p.emitOpImm(bytecode.PushBool, 0)
	default:
		return p.syntaxErrorAt("expected a case constant, found %s", p.cur.Type)
	}
}
