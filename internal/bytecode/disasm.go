package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders a Buffer as a human-readable instruction listing,
// one line per instruction, address-prefixed. Used by `lalg compile
// --disasm`.
//
// PRINT_STR_LIT's trailing character bytes have no static length of
// their own — the VM learns it from the stack at runtime — but every
// string literal this codegen emits is preceded immediately by the
// PUSHI that pushes that same length (see codegen's emitStringLiteral),
// so the disassembler remembers the last PUSHI immediate and uses it to
// skip over the string bytes rather than misinterpreting them as code.
func Disassemble(b *Buffer) string {
	var sb strings.Builder
	code := b.Bytes()
	ip := 0
	lastPushInt := -1
	for ip < len(code) {
		op := OpCode(code[ip])
		if op == PrintStrLit {
			fmt.Fprintf(&sb, "%04d  %s\n", ip, op)
			ip++
			if lastPushInt >= 0 && ip+lastPushInt <= len(code) {
				fmt.Fprintf(&sb, "      %q\n", code[ip:ip+lastPushInt])
				ip += lastPushInt
			} else {
				// No preceding PUSHI to size the payload; stop rather
				// than guess and misread the remaining bytes as code.
				break
			}
			lastPushInt = -1
			continue
		}
		if op.HasImmediate() {
			imm := ReadImm(code, ip+1)
			fmt.Fprintf(&sb, "%04d  %-14s %d\n", ip, op, imm)
			if op == PushInt {
				lastPushInt = int(imm)
			} else {
				lastPushInt = -1
			}
			ip += 5
		} else {
			fmt.Fprintf(&sb, "%04d  %s\n", ip, op)
			lastPushInt = -1
			ip++
		}
	}
	return sb.String()
}
