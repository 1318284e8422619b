package codegen

import (
	"strconv"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/symboltable"
	"github.com/lalg-lang/lalg/internal/types"
)

// parseExpr implements `expr (E) := T {('+'|'-') T}`.
func (p *Parser) parseExpr() (types.DataType, error) {
	t1, err := p.parseTerm()
	if err != nil {
		return t1, err
	}

	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		op := opAdd
		if p.curIs(lexer.MINUS) {
			op = opSub
		}
		pos := p.cur.Pos
		p.advance()

		t2, err := p.parseTerm()
		if err != nil {
			return t1, err
		}
		t1, err = p.emitArith(op, t1, t2, pos)
		if err != nil {
			return t1, err
		}
	}
	return t1, nil
}

// parseTerm implements `T := F {('*'|'/'|DIV) F}`.
func (p *Parser) parseTerm() (types.DataType, error) {
	t1, err := p.parseFactor()
	if err != nil {
		return t1, err
	}

	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) || p.curIs(lexer.DIV) {
		var op arithOp
		switch p.cur.Type {
		case lexer.STAR:
			op = opMul
		case lexer.SLASH:
			op = opRealDiv
		case lexer.DIV:
			op = opIntDiv
		}
		pos := p.cur.Pos
		p.advance()

		t2, err := p.parseFactor()
		if err != nil {
			return t1, err
		}
		t1, err = p.emitArith(op, t1, t2, pos)
		if err != nil {
			return t1, err
		}
	}
	return t1, nil
}

// parseFactor implements:
//
//	F := ID ('[' expr ']')? | '(' E ')' | NOT F
//	   | INT_LIT | REAL_LIT | CHAR_LIT | TRUE | FALSE
func (p *Parser) parseFactor() (types.DataType, error) {
	switch p.cur.Type {
	case lexer.ID:
		return p.parseIdentifierFactor()

	case lexer.LPAREN:
		p.advance()
		t, err := p.parseExpr()
		if err != nil {
			return t, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return t, err
		}
		return t, nil

	case lexer.NOT:
		p.advance()
		t, err := p.parseFactor()
		if err != nil {
			return t, err
		}
		if t != types.Bool {
			return t, p.semanticErrorf(p.cur.Pos, "NOT requires a boolean operand, found %s", t)
		}
		return types.Bool, p.emitOp(bytecode.Not)

	case lexer.INT_LIT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 32)
		if err != nil {
			return types.Int, p.semanticErrorf(p.cur.Pos, "malformed integer literal %q", p.cur.Literal)
		}
		p.advance()
		return types.Int, p.emitOpImm(bytecode.PushInt, int32(n))

	case lexer.REAL_LIT:
		f, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return types.RealLit, p.semanticErrorf(p.cur.Pos, "malformed real literal %q", p.cur.Literal)
		}
		p.advance()
		bits := bytecode.Float32Bits(f)
		return types.RealLit, p.emitOpImm(bytecode.PushInt, int32(bits))

	case lexer.CHAR_LIT:
		lit := p.cur.Literal
		p.advance()
		var r rune
		for _, c := range lit {
			r = c
			break
		}
		return types.Char, p.emitOpImm(bytecode.PushChar, int32(r))

	case lexer.TRUE:
		p.advance()
		return types.Bool, p.emitOpImm(bytecode.PushBool, 1)

	case lexer.FALSE:
		p.advance()
		return types.Bool, p.emitOpImm(bytecode.PushBool, 0)

	default:
		return types.Int, p.syntaxErrorAt("expected an expression, found %s %q", p.cur.Type, p.cur.Literal)
	}
}

// parseIdentifierFactor handles the ID ('[' expr ']')? alternative: a
// bare variable read, or an array element read via the address
// computation of spec.md §4.3.4 followed by RETRIEVE.
func (p *Parser) parseIdentifierFactor() (types.DataType, error) {
	name := p.cur
	entry, ok := p.sym.Lookup(name.Literal)
	if !ok {
		return types.Int, p.semanticErrorfNoPos("Variable %s is not declared", name.Literal)
	}
	p.advance()

	if !p.curIs(lexer.LBRACKET) {
		if entry.Kind == symboltable.ArrayVar {
			return types.Int, p.semanticErrorf(name.Pos, "array %s used without an index", name.Literal)
		}
		return entry.DataType, p.emitOpImm(bytecode.PushVar, entry.DataPtr)
	}

	if entry.Kind != symboltable.ArrayVar {
		return types.Int, p.semanticErrorf(name.Pos, "%s is not an array", name.Literal)
	}
	p.advance() // '['
	idxType, err := p.parseExpr()
	if err != nil {
		return types.Int, err
	}
	if idxType != types.Int {
		return types.Int, p.semanticErrorf(name.Pos, "array index must be an integer, found %s", idxType)
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return types.Int, err
	}

	if err := p.emitArrayAddress(entry); err != nil {
		return types.Int, err
	}
	return entry.Array.ElementType, p.emitOp(bytecode.Retrieve)
}

// emitArrayAddress implements spec.md §4.3.4's address computation. The
// index expression's value must already be on the stack.
//
// SUB here computes (earlier-pushed − later-pushed), the same convention
// used throughout dispatch.go's emitArith for plain "a - b" subtraction.
// With idx already pushed and low pushed second, that already yields
// idx-low directly; an XCHG before SUB (as spec.md's literal opcode list
// has it) would flip the operand order SUB sees and compute low-idx
// instead, so it is omitted here.
func (p *Parser) emitArrayAddress(entry *symboltable.Entry) error {
	if err := p.emitOpImm(bytecode.PushInt, int32(entry.Array.Low)); err != nil {
		return err
	}
	if err := p.emitOp(bytecode.Sub); err != nil {
		return err
	}
	if entry.Array.ElementType != types.Char {
		if err := p.emitOpImm(bytecode.PushInt, 4); err != nil {
			return err
		}
		if err := p.emitOp(bytecode.Multiply); err != nil {
			return err
		}
	}
	if err := p.emitOpImm(bytecode.PushInt, entry.DataPtr); err != nil {
		return err
	}
	return p.emitOp(bytecode.Add)
}
