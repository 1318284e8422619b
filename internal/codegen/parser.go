// Package codegen implements LALG's single-pass recursive-descent parser
// and code generator: it consumes a lexer.Lexer's token stream, maintains
// a symboltable.Table with data-pointer allocation, performs type
// checking with implicit integer→real promotion (dispatch.go), and emits
// bytecode into a bytecode.Buffer using back-patching for forward jumps
// (control_flow.go).
//
// Grounded structurally on the teacher's former internal/parser package
// (a Parser holding cur/peek tokens with next()/expect() helpers and an
// accumulated error slice) — adapted from a full Pascal-family
// expression/statement AST builder to a direct one-pass emitter, since
// spec.md §2 specifies no AST: the parser emits bytecode as it recognizes
// productions.
package codegen

import (
	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/errors"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/symboltable"
)

// Parser is LALG's parser/code generator. It holds two cursors per
// spec.md §4.3: ip (the Buffer's write position) and dp (the next free
// data pointer), plus the current/lookahead token pair.
type Parser struct {
	lex *lexer.Lexer
	buf *bytecode.Buffer
	sym *symboltable.Table

	cur  lexer.Token
	peek lexer.Token

	dp int32

	source   string
	filename string

	errs []*errors.CompilerError
}

// New creates a Parser reading from l and emitting into buf.
func New(l *lexer.Lexer, buf *bytecode.Buffer, source, filename string) *Parser {
	p := &Parser{lex: l, buf: buf, sym: symboltable.New(), source: source, filename: filename}
	p.advance()
	p.advance()
	return p
}

// Errors returns every error accumulated during parsing, in source order.
func (p *Parser) Errors() []*errors.CompilerError {
	return p.errs
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool {
	return p.cur.Type == tt
}

func (p *Parser) peekIs(tt lexer.TokenType) bool {
	return p.peek.Type == tt
}

// expect consumes the current token if it has type tt, otherwise records
// a SyntaxError and returns it.
func (p *Parser) expect(tt lexer.TokenType) error {
	if p.curIs(tt) {
		p.advance()
		return nil
	}
	return p.syntaxErrorf(p.cur.Pos, "expected %s, found %s %q", tt, p.cur.Type, p.cur.Literal)
}

func (p *Parser) nextDP() int32 {
	d := p.dp
	p.dp++
	return d
}

// reserveDP advances dp by n slots, for array declarations (spec.md §3's
// `4 * (high - low)` formula).
func (p *Parser) reserveDP(n int32) int32 {
	start := p.dp
	p.dp += n
	return start
}

func (p *Parser) emitOp(op bytecode.OpCode) error {
	_, err := p.buf.EmitOp(op)
	if err != nil {
		return p.runtimeBufferError(err)
	}
	return nil
}

func (p *Parser) emitOpImm(op bytecode.OpCode, imm int32) error {
	_, err := p.buf.EmitOpImm(op, imm)
	if err != nil {
		return p.runtimeBufferError(err)
	}
	return nil
}

func (p *Parser) runtimeBufferError(cause error) error {
	err := errors.New(errors.KindSemantic, p.cur.Pos.Line, p.cur.Pos.Column, cause.Error()).WithSource(p.source, p.filename)
	p.errs = append(p.errs, err)
	return err
}

// ParseProgram parses and compiles the full program per spec.md §4.3's
// grammar root. It returns the first fatal error, if any; Errors()
// returns the complete accumulated list for reporting.
func (p *Parser) ParseProgram() error {
	if err := p.expect(lexer.PROGRAM); err != nil {
		return err
	}
	if !p.curIs(lexer.ID) {
		return p.syntaxErrorf(p.cur.Pos, "expected a program name, found %s", p.cur.Type)
	}
	p.advance()
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return err
	}

	if err := p.parseBody(); err != nil {
		return err
	}

	if err := p.expect(lexer.DOT); err != nil {
		return err
	}
	return nil
}

// parseBody implements the right-recursive
// (var_block | proc_block+ begin_block | begin_block) alternative shared
// by `program` and `var_block` in the grammar.
func (p *Parser) parseBody() error {
	switch p.cur.Type {
	case lexer.VAR:
		return p.parseVarBlock()
	case lexer.PROCEDURE:
		for p.curIs(lexer.PROCEDURE) {
			if err := p.parseProcedure(); err != nil {
				return err
			}
		}
		return p.parseBeginBlock()
	case lexer.BEGIN:
		return p.parseBeginBlock()
	default:
		return p.syntaxErrorf(p.cur.Pos, "expected var, procedure, or begin, found %s", p.cur.Type)
	}
}

func (p *Parser) syntaxErrorAt(format string, args ...any) error {
	return p.syntaxErrorf(p.cur.Pos, format, args...)
}
