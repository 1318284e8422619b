package codegen

import (
	"strconv"

	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/symboltable"
	"github.com/lalg-lang/lalg/internal/types"
)

// parseVarBlock implements `var_block := VAR {declaration} (var_block |
// proc_block+ begin_block | begin_block)`.
func (p *Parser) parseVarBlock() error {
	if err := p.expect(lexer.VAR); err != nil {
		return err
	}
	for p.curIs(lexer.ID) {
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	}
	return p.parseBody()
}

// parseDeclaration implements `declaration := ID {',' ID} ':' type_spec
// ';'`, rejecting a name repeated within the same group (`VAR a, a :
// integer;`) as well as a name already present in the table.
func (p *Parser) parseDeclaration() error {
	if err := p.parseDeclarationNames(); err != nil {
		return err
	}
	return p.expect(lexer.SEMICOLON)
}

// parseProcedureParam implements a single proc_block parameter group: the
// same `ID {',' ID} ':' type_spec` shape as declaration, but without its
// trailing ';' — the source's procedure_arguments matches COLON, the
// type, then RIGHT_PAREN directly, with the ';' belonging to proc_block
// itself (after the closing paren), not to the parameter group.
func (p *Parser) parseProcedureParam() error {
	return p.parseDeclarationNames()
}

// parseDeclarationNames parses `ID {',' ID} ':' type_spec` and inserts one
// symbol table entry per name, without consuming a trailing separator —
// that's left to the two callers above, which disagree on whether one
// follows.
func (p *Parser) parseDeclarationNames() error {
	var names []lexer.Token
	localSeen := make(map[string]bool)

	for {
		if !p.curIs(lexer.ID) {
			return p.syntaxErrorAt("expected an identifier in declaration, found %s", p.cur.Type)
		}
		name := p.cur
		if localSeen[name.Literal] {
			return p.semanticErrorf(name.Pos, "variable %s declared twice in the same declaration", name.Literal)
		}
		localSeen[name.Literal] = true
		names = append(names, name)
		p.advance()

		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if err := p.expect(lexer.COLON); err != nil {
		return err
	}

	entryTemplate, err := p.parseTypeSpec()
	if err != nil {
		return err
	}

	for _, name := range names {
		entry := entryTemplate
		entry.Name = name.Literal
		if entry.Kind == symboltable.ArrayVar {
			span := int32(entry.Array.High-entry.Array.Low) * elementSlotWidth(entry.Array.ElementType)
			entry.DataPtr = p.reserveDP(span)
		} else {
			entry.DataPtr = p.nextDP()
		}
		if !p.sym.Insert(entry) {
			return p.semanticErrorf(name.Pos, "variable %s is already declared", name.Literal)
		}
	}

	return nil
}

// elementSlotWidth implements spec.md §3's "4 * (high - low)" data
// pointer formula for integer-indexed arrays; char arrays pack one slot
// per element, matching spec.md §4.3.4's address computation (which
// omits the PUSHI 4; MULTIPLY step for CHAR elements).
func elementSlotWidth(elem types.DataType) int32 {
	if elem == types.Char {
		return 1
	}
	return 4
}

// parseTypeSpec implements `type_spec := INTEGER | REAL | CHAR | BOOLEAN
// | ARRAY '[' range ']' OF element_type`, returning a partially-filled
// symboltable.Entry (name and data pointer are filled in by the caller).
func (p *Parser) parseTypeSpec() (symboltable.Entry, error) {
	switch p.cur.Type {
	case lexer.INTEGER:
		p.advance()
		return symboltable.Entry{Kind: symboltable.Variable, DataType: types.Int}, nil
	case lexer.REAL:
		p.advance()
		return symboltable.Entry{Kind: symboltable.Variable, DataType: types.Real}, nil
	case lexer.CHAR:
		p.advance()
		return symboltable.Entry{Kind: symboltable.Variable, DataType: types.Char}, nil
	case lexer.BOOLEAN:
		p.advance()
		return symboltable.Entry{Kind: symboltable.Variable, DataType: types.Bool}, nil
	case lexer.ARRAY:
		return p.parseArrayTypeSpec()
	default:
		return symboltable.Entry{}, p.syntaxErrorAt("expected a type, found %s", p.cur.Type)
	}
}

func (p *Parser) parseArrayTypeSpec() (symboltable.Entry, error) {
	if err := p.expect(lexer.ARRAY); err != nil {
		return symboltable.Entry{}, err
	}
	if err := p.expect(lexer.LBRACKET); err != nil {
		return symboltable.Entry{}, err
	}

	if !p.curIs(lexer.RANGE_LIT) {
		return symboltable.Entry{}, p.syntaxErrorAt("expected a range literal (e.g. 0..9), found %s", p.cur.Type)
	}
	low, high, err := parseRangeLit(p.cur.Literal)
	if err != nil {
		return symboltable.Entry{}, p.semanticErrorf(p.cur.Pos, "%s", err)
	}
	p.advance()

	if err := p.expect(lexer.RBRACKET); err != nil {
		return symboltable.Entry{}, err
	}
	if err := p.expect(lexer.OF); err != nil {
		return symboltable.Entry{}, err
	}

	elemEntry, err := p.parseTypeSpec()
	if err != nil {
		return symboltable.Entry{}, err
	}
	if elemEntry.Kind == symboltable.ArrayVar {
		return symboltable.Entry{}, p.semanticErrorf(p.cur.Pos, "arrays of arrays are not supported")
	}

	return symboltable.Entry{
		Kind:     symboltable.ArrayVar,
		DataType: types.Array,
		Array: &symboltable.ArrayExtras{
			Low: low, High: high,
			IndexType:   types.Int,
			ElementType: elemEntry.DataType,
		},
	}, nil
}

func parseRangeLit(lit string) (low, high int, err error) {
	for i := 0; i+1 < len(lit); i++ {
		if lit[i] == '.' && lit[i+1] == '.' {
			low, err = strconv.Atoi(lit[:i])
			if err != nil {
				return 0, 0, err
			}
			high, err = strconv.Atoi(lit[i+2:])
			return low, high, err
		}
	}
	return 0, 0, errRangeLitMalformed(lit)
}

type errRangeLitMalformed string

func (e errRangeLitMalformed) Error() string {
	return "malformed range literal " + string(e)
}
