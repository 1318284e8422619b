package bytecode

import (
	"encoding/binary"

	"github.com/lalg-lang/lalg/internal/errors"
)

// DefaultCapacity matches spec.md §3's hard-coded 5000-byte bytecode
// buffer. internal/config can override it.
const DefaultCapacity = 5000

// Buffer is LALG's bytecode store: a fixed-capacity byte slice written by
// internal/codegen and read by internal/vm. Grounded on the teacher's
// internal/bytecode.Chunk, trimmed to the flat byte-buffer-with-holes model
// spec.md §3 and §4.3.2 describe in place of the teacher's constant-pool
// chunk format.
type Buffer struct {
	code []byte
	cap  int
}

// NewBuffer allocates a Buffer with the given capacity in bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{code: make([]byte, 0, capacity), cap: capacity}
}

// Len returns the current write position — also the address the next
// emitted instruction will occupy.
func (b *Buffer) Len() int {
	return len(b.code)
}

// Bytes exposes the underlying bytes, for the disassembler and the VM.
func (b *Buffer) Bytes() []byte {
	return b.code
}

func (b *Buffer) grow(n int) error {
	if len(b.code)+n > b.cap {
		return errors.New(errors.KindSemantic, 0, 0, "bytecode buffer capacity exceeded")
	}
	return nil
}

// EmitOp appends a bare opcode (no immediate) and returns its address.
func (b *Buffer) EmitOp(op OpCode) (int, error) {
	if err := b.grow(1); err != nil {
		return 0, err
	}
	addr := len(b.code)
	b.code = append(b.code, byte(op))
	return addr, nil
}

// EmitOpImm appends an opcode followed by a 4-byte big-endian signed
// immediate and returns the opcode's address.
func (b *Buffer) EmitOpImm(op OpCode, imm int32) (int, error) {
	if err := b.grow(5); err != nil {
		return 0, err
	}
	addr := len(b.code)
	b.code = append(b.code, byte(op))
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(imm))
	b.code = append(b.code, buf[:]...)
	return addr, nil
}

// EmitRaw appends raw bytes with no opcode framing — used for the
// character data following a PRINT_STR_LIT instruction.
func (b *Buffer) EmitRaw(data []byte) (int, error) {
	if err := b.grow(len(data)); err != nil {
		return 0, err
	}
	addr := len(b.code)
	b.code = append(b.code, data...)
	return addr, nil
}

// Hole is a forward reference left by a jump whose target isn't known yet
// — if, while, repeat, for and case all emit one or more of these and
// patch them once the controlled statement's end address is known.
type Hole struct {
	// ImmAddr is the address of the 4-byte immediate itself, one byte
	// past the opcode that introduced it.
	ImmAddr int
}

// EmitJump appends a jump-family opcode with a placeholder immediate and
// returns a Hole identifying where to patch the real target later.
func (b *Buffer) EmitJump(op OpCode) (Hole, error) {
	addr, err := b.EmitOpImm(op, 0)
	if err != nil {
		return Hole{}, err
	}
	return Hole{ImmAddr: addr + 1}, nil
}

// PatchJump overwrites a previously emitted Hole's immediate with target.
func (b *Buffer) PatchJump(h Hole, target int) {
	binary.BigEndian.PutUint32(b.code[h.ImmAddr:h.ImmAddr+4], uint32(target))
}

// PatchJumpHere patches h to the buffer's current write position — the
// common case of "jump to right after the statement we just compiled".
func (b *Buffer) PatchJumpHere(h Hole) {
	b.PatchJump(h, b.Len())
}

// ReadImm decodes the 4-byte big-endian immediate starting at addr.
func ReadImm(code []byte, addr int) int32 {
	return int32(binary.BigEndian.Uint32(code[addr : addr+4]))
}
