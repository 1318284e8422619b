// Package driver wires LALG's pipeline end to end — FileSource, Scanner,
// Parser/CodeGen, Bytecode, Interpreter — behind a single entry point for
// the CLI, matching spec.md §2's data-flow diagram.
//
// Grounded on the teacher's cmd/*/cmd packages, which each hand-wired
// this same lexer→parser→analyzer→interpreter chain inline; pulled out
// here into one reusable Run/Compile/Lex surface so every cmd/lalg/cmd
// subcommand shares it instead of repeating the wiring.
package driver

import (
	"io"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/codegen"
	"github.com/lalg-lang/lalg/internal/config"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/lalg-lang/lalg/internal/source"
	"github.com/lalg-lang/lalg/internal/vm"
)

// CompileResult is everything a caller might want from a successful
// compile: the finished buffer plus the parser used to produce it (for
// its accumulated diagnostics, even on success).
type CompileResult struct {
	Buffer *bytecode.Buffer
	Parser *codegen.Parser
}

// Compile loads path, scans and compiles it into bytecode, and returns
// the result. On any compile-time error it returns the first
// errors.CompilerError encountered; the parser's Errors() carries every
// other diagnostic accumulated along the way.
func Compile(path string, cfg config.Config) (*CompileResult, error) {
	fs := source.New(cfg.Extensions)
	text, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	var lexOpts []lexer.Option
	if cfg.KeywordsFile != "" {
		words, err := lexer.LoadReservedWords(cfg.KeywordsFile)
		if err != nil {
			return nil, err
		}
		lexOpts = append(lexOpts, lexer.WithReservedWords(words))
	}
	l := lexer.New(text, lexOpts...)

	buf := bytecode.NewBuffer(cfg.BufferCapacity)
	p := codegen.New(l, buf, text, path)

	if err := p.ParseProgram(); err != nil {
		return &CompileResult{Buffer: buf, Parser: p}, err
	}
	return &CompileResult{Buffer: buf, Parser: p}, nil
}

// Execute runs an already-compiled result's bytecode, reading input from
// in and writing program output to out.
func Execute(result *CompileResult, cfg config.Config, in io.Reader, out io.Writer) error {
	machine := vm.New(result.Buffer.Bytes(), in, out, vm.WithQuiet(cfg.Quiet))
	return machine.Run()
}

// Run compiles path and, on success, executes the resulting bytecode.
// It returns the first error encountered, compile-time or runtime.
func Run(path string, cfg config.Config, in io.Reader, out io.Writer) error {
	result, err := Compile(path, cfg)
	if err != nil {
		return err
	}
	return Execute(result, cfg, in, out)
}

// Lex loads path and returns its full token stream, ending with EOF.
// Scan errors accumulated by the lexer are returned alongside the tokens
// rather than aborting early, since lexing has no forward dependency on
// a clean scan the way parsing does.
func Lex(path string, cfg config.Config) ([]lexer.Token, []lexer.LexerError, error) {
	fs := source.New(cfg.Extensions)
	text, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}

	var lexOpts []lexer.Option
	if cfg.KeywordsFile != "" {
		words, lerr := lexer.LoadReservedWords(cfg.KeywordsFile)
		if lerr != nil {
			return nil, nil, lerr
		}
		lexOpts = append(lexOpts, lexer.WithReservedWords(words))
	}
	l := lexer.New(text, lexOpts...)

	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return tokens, l.Errors(), nil
}
