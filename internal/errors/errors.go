// Package errors implements the LALG error taxonomy.
//
// Every error that can escape the compiler or the virtual machine carries a
// Kind (IoError, LexicalError, SyntaxError, SemanticError, RuntimeError) and
// renders as a single line prefixed by that kind, with no stack trace. A
// richer caret-pointing rendering is available via Format for callers (the
// CLI's --verbose mode) that want source context.
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies which of the five error zones raised an error.
type Kind int

const (
	KindIO Kind = iota
	KindLexical
	KindSyntax
	KindSemantic
	KindRuntime
)

// String renders the kind exactly as it appears as the user-visible prefix.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindLexical:
		return "LexicalError"
	case KindSyntax:
		return "SyntaxError"
	case KindSemantic:
		return "SemanticError"
	case KindRuntime:
		return "RuntimeError"
	default:
		return "Error"
	}
}

// CompilerError is the single error type used across all five zones. Line is
// 0 when a kind carries no source position (e.g. a file-load IoError).
type CompilerError struct {
	Message string
	Source  string
	File    string
	Kind    Kind
	Line    int
	Column  int
	cause   error
}

// New creates a CompilerError of the given kind at the given position.
func New(kind Kind, line, column int, message string) *CompilerError {
	return &CompilerError{Kind: kind, Line: line, Column: column, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, line, column int, format string, args ...any) *CompilerError {
	return New(kind, line, column, fmt.Sprintf(format, args...))
}

// Wrap creates an IoError around an underlying cause, preserving it for
// callers that want the full chain (e.g. via %+v on the returned error).
func Wrap(cause error, message string) *CompilerError {
	return &CompilerError{Kind: KindIO, Message: message, cause: pkgerrors.WithMessage(cause, message)}
}

// WithSource attaches the full source text and file name, enabling caret
// rendering via Format.
func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Error renders the single-line, kind-prefixed form mandated by spec §7.
func (e *CompilerError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *CompilerError) Unwrap() error {
	return e.cause
}

// Format renders the error with a source line and a caret pointing at the
// offending column, the way the CLI's --verbose output does. Falls back to
// Error() when no source was attached.
func (e *CompilerError) Format(color bool) string {
	if e.Source == "" || e.Line <= 0 {
		return e.Error()
	}

	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.File, e.Line, e.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", e.Kind, e.Line, e.Column)
	}

	lines := strings.Split(e.Source, "\n")
	if e.Line-1 < len(lines) {
		srcLine := lines[e.Line-1]
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(srcLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// FormatAll renders a batch of errors, one per Format call, separated by
// blank lines.
func FormatAll(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
