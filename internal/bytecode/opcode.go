// Package bytecode defines LALG's wire format: the opcode vocabulary, the
// instruction encoding (one opcode byte plus an optional 4-byte big-endian
// immediate), and the fixed-capacity Buffer the parser writes into and the
// VM reads from.
//
// Grounded on the teacher's internal/bytecode/instruction.go (a
// doc-comment-per-opcode OpCode enum) and internal/bytecode/bytecode.go (the
// Chunk type's Write/EmitJump/PatchJump helpers), adapted from the teacher's
// 32-bit fixed-width [opcode][A][B] instruction to spec.md §6's
// variable-length [opcode][imm?] format, which is what on-disk LALG
// bytecode historically used.
package bytecode

// OpCode is a single bytecode instruction's discriminant byte.
type OpCode byte

const (
	// ========================================
	// Stack / memory (imm = data pointer or literal)
	// ========================================

	// PushInt pushes the 4-byte immediate as an integer.
	// Stack: [] -> [int(imm)]
	PushInt OpCode = iota

	// PushVar pushes data[imm].
	// Stack: [] -> [data[imm]]
	PushVar

	// PushChar pushes chr(imm).
	// Stack: [] -> [char(imm)]
	PushChar

	// PushBool pushes a boolean literal (imm != 0). Not named in spec's
	// opcode table, which has no push form for the TRUE/FALSE tokens the
	// grammar's F production admits directly (e.g. as a NOT operand);
	// added alongside DUP as a minimal, documented extension.
	// Stack: [] -> [bool(imm != 0)]
	PushBool

	// Pop stores the popped value into data[imm].
	// Stack: [v] -> []
	Pop

	// PopChar is Pop specialised for a char-typed destination.
	// Stack: [v] -> []
	PopChar

	// PopRealLit pops an integer, reinterprets its bit pattern as a
	// 32-bit float, rounds to two decimal places, and stores it.
	// Stack: [bits] -> []
	PopRealLit

	// Dup duplicates the top of the stack.
	// Stack: [v] -> [v, v]
	Dup

	// Xchg swaps the top two stack entries.
	// Stack: [a, b] -> [b, a]
	Xchg

	// ========================================
	// Array addressing
	// ========================================

	// Dump pops a value then an address and stores the value at that
	// address (array element assignment).
	// Stack: [addr, v] -> []
	Dump

	// Retrieve pops an address and pushes the value stored there (array
	// element read).
	// Stack: [addr] -> [data[addr]]
	Retrieve

	// ========================================
	// Integer arithmetic (right operand popped first)
	// ========================================

	Add
	Sub
	Multiply
	// Divide performs true (real-valued) division even when both
	// operands are integers — Pascal's '/' is always real division.
	Divide
	// Div performs truncating integer division — Pascal's 'div'.
	Div

	// ========================================
	// Float arithmetic
	// ========================================

	Fadd
	// Fsub reinterprets its (right, first-popped) operand's bits as a
	// float if that operand is still integer-tagged — this is how an
	// un-promoted REAL_LIT denominator/subtrahend is handled without an
	// intervening CVR.
	Fsub
	Fmultiply
	// Fdivide: see Fsub.
	Fdivide

	// Cvr numerically converts a popped integer to a float (not a bit
	// reinterpretation — this is genuine int-to-real promotion).
	Cvr

	// ========================================
	// Boolean
	// ========================================

	Not
	Or

	// ========================================
	// Comparisons — note the opcode names are the lexical inverse of
	// the operator that emits them (GTR computes a<b etc); see
	// spec §4.3.1's comparison table. Preserved for wire compatibility.
	// ========================================

	Eql
	Neq
	Les
	Lte
	Gtr
	Gte

	// ========================================
	// Control flow
	// ========================================

	// Jmp sets ip to the immediate unconditionally.
	Jmp
	// Jfalse pops a bool; if false, sets ip to the immediate; otherwise
	// execution continues past the (already-consumed) immediate.
	Jfalse

	// ========================================
	// Output
	// ========================================

	PrintI
	PrintR
	PrintC
	PrintB
	PrintIlit
	// PrintStrLit pops a length N then reads N raw bytes immediately
	// following this instruction in the code stream as characters.
	PrintStrLit
	NewLine
	// RetAndPrint pops an address and appends data[address] to output.
	RetAndPrint

	// ========================================
	// Input
	// ========================================

	ReadInt
	ReadReal

	// ========================================
	// Termination
	// ========================================

	// Halt flushes buffered output and stops the dispatch loop. Appears
	// exactly once, at the end of the main program body.
	Halt

	opCodeCount
)

var names = [opCodeCount]string{
	PushInt: "PUSHI", PushVar: "PUSH", PushChar: "PUSH_CHAR", PushBool: "PUSH_BOOL",
	Pop: "POP", PopChar: "POP_CHAR", PopRealLit: "POP_REAL_LIT",
	Dup: "DUP", Xchg: "XCHG", Dump: "DUMP", Retrieve: "RETRIEVE",
	Add: "ADD", Sub: "SUB", Multiply: "MULTIPLY", Divide: "DIVIDE", Div: "DIV",
	Fadd: "FADD", Fsub: "FSUB", Fmultiply: "FMULTIPLY", Fdivide: "FDIVIDE",
	Cvr: "CVR", Not: "NOT", Or: "OR",
	Eql: "EQL", Neq: "NEQ", Les: "LES", Lte: "LTE", Gtr: "GTR", Gte: "GTE",
	Jmp: "JMP", Jfalse: "JFALSE",
	PrintI: "PRINT_I", PrintR: "PRINT_R", PrintC: "PRINT_C", PrintB: "PRINT_B",
	PrintIlit: "PRINT_ILIT", PrintStrLit: "PRINT_STR_LIT", NewLine: "NEW_LINE",
	RetAndPrint: "RET_AND_PRINT", ReadInt: "READ_INT", ReadReal: "READ_REAL",
	Halt: "HALT",
}

func (op OpCode) String() string {
	if int(op) < 0 || op >= opCodeCount {
		return "ILLEGAL"
	}
	return names[op]
}

// HasImmediate reports whether op is followed by a 4-byte immediate.
// PrintStrLit is deliberately excluded: its trailing bytes are raw string
// data whose length is only known at runtime, from the stack.
func (op OpCode) HasImmediate() bool {
	switch op {
	case PushInt, PushVar, PushChar, PushBool, Pop, PopChar, PopRealLit,
		Jmp, Jfalse, PrintI, PrintR, PrintC, PrintB, PrintIlit,
		ReadInt, ReadReal:
		return true
	default:
		return false
	}
}
