// Package vm implements LALG's stack-based bytecode interpreter: an
// iterative (not recursive — spec.md §5 requires this) dispatch loop over
// an operand stack and a dp-indexed data store.
//
// Grounded on the teacher's former internal/bytecode VM dispatch loop
// (switch-per-opcode, one handler per case) and internal/errors for the
// RuntimeError taxonomy; the opcode set and Value representation come
// from this module's own internal/bytecode package rather than the
// teacher's constant-pool chunk format, which modeled a different
// language entirely.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/errors"
)

// VM is LALG's interpreter. One VM executes exactly one compiled program.
type VM struct {
	code   []byte
	data   map[int32]bytecode.Value
	stack  []bytecode.Value
	output []string
	in     *bufio.Reader
	out    io.Writer
	quiet  bool
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithQuiet suppresses the original implementation's "Done!"/"Flushing..."
// banners (see SPEC_FULL.md's Supplemented Features); they are printed by
// default, matching the source.
func WithQuiet(quiet bool) Option {
	return func(v *VM) { v.quiet = quiet }
}

// New creates a VM over a finished Buffer, reading input from in and
// writing output to out.
func New(code []byte, in io.Reader, out io.Writer, opts ...Option) *VM {
	v := &VM{
		code: code,
		data: make(map[int32]bytecode.Value),
		in:   bufio.NewReader(in),
		out:  out,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *VM) push(val bytecode.Value) {
	v.stack = append(v.stack, val)
}

func (v *VM) pop() (bytecode.Value, error) {
	if len(v.stack) == 0 {
		return bytecode.Value{}, errors.New(errors.KindRuntime, 0, 0, "operand stack underflow")
	}
	top := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return top, nil
}

func rt(format string, args ...any) error {
	return errors.Newf(errors.KindRuntime, 0, 0, format, args...)
}

// Run executes the program from address 0 until HALT, returning any
// runtime error. On error, buffered output is still flushed to out before
// returning, matching spec.md §7's "flush any interpreter output buffered
// so far" policy.
func (v *VM) Run() error {
	ip := 0
	for ip < len(v.code) {
		op := bytecode.OpCode(v.code[ip])
		ip++

		var imm int32
		if op.HasImmediate() {
			if ip+4 > len(v.code) {
				return v.fail(rt("truncated instruction at %d", ip-1))
			}
			imm = bytecode.ReadImm(v.code, ip)
			ip += 4
		}

		switch op {
		case bytecode.PushInt:
			v.push(bytecode.IntValue(imm))
		case bytecode.PushVar:
			v.push(v.data[imm])
		case bytecode.PushChar:
			v.push(bytecode.CharValue(rune(imm)))
		case bytecode.PushBool:
			v.push(bytecode.BoolValue(imm != 0))
		case bytecode.Pop:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.data[imm] = val
		case bytecode.PopChar:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.data[imm] = val
		case bytecode.PopRealLit:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			f := val.BitsFloat()
			// format-and-reparse to two decimals, matching the source's
			// '{0:.2f}'.format(...) rounding rather than arithmetic rounding.
			rounded, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
			v.data[imm] = bytecode.RealValue(rounded)
		case bytecode.Dup:
			if len(v.stack) == 0 {
				return v.fail(rt("DUP on empty stack"))
			}
			v.push(v.stack[len(v.stack)-1])
		case bytecode.Xchg:
			if len(v.stack) < 2 {
				return v.fail(rt("XCHG needs two operands"))
			}
			n := len(v.stack)
			v.stack[n-1], v.stack[n-2] = v.stack[n-2], v.stack[n-1]

		case bytecode.Dump:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			addr, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.data[addr.Int()] = val
		case bytecode.Retrieve:
			addr, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.push(v.data[addr.Int()])

		case bytecode.Add, bytecode.Sub, bytecode.Multiply, bytecode.Div:
			if err := v.intArith(op); err != nil {
				return v.fail(err)
			}
		case bytecode.Divide:
			if err := v.realDivide(); err != nil {
				return v.fail(err)
			}
		case bytecode.Fadd, bytecode.Fmultiply:
			if err := v.floatArithNumeric(op); err != nil {
				return v.fail(err)
			}
		case bytecode.Fsub, bytecode.Fdivide:
			if err := v.floatArithBits(op); err != nil {
				return v.fail(err)
			}
		case bytecode.Cvr:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.push(bytecode.RealValue(float64(val.Int())))

		case bytecode.Not:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.push(bytecode.BoolValue(!val.Bool()))
		case bytecode.Or:
			b, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			a, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			v.push(bytecode.BoolValue(a.Bool() || b.Bool()))

		case bytecode.Eql, bytecode.Neq, bytecode.Les, bytecode.Lte, bytecode.Gtr, bytecode.Gte:
			if err := v.compare(op); err != nil {
				return v.fail(err)
			}

		case bytecode.Jmp:
			ip = int(imm)
		case bytecode.Jfalse:
			val, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			if !val.Bool() {
				ip = int(imm)
			}

		case bytecode.PrintI:
			v.emit(fmt.Sprintf("%d", v.data[imm].Int()))
		case bytecode.PrintR:
			v.emit(fmt.Sprintf("%g", v.data[imm].Real()))
		case bytecode.PrintC:
			v.emit(string(v.data[imm].Char()))
		case bytecode.PrintB:
			if v.data[imm].Bool() {
				v.emit("true")
			} else {
				v.emit("false")
			}
		case bytecode.PrintIlit:
			v.emit(fmt.Sprintf("%d", imm))
		case bytecode.PrintStrLit:
			lenVal, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			n := int(lenVal.Int())
			if ip+n > len(v.code) {
				return v.fail(rt("PRINT_STR_LIT length %d runs past end of code", n))
			}
			v.emit(string(v.code[ip : ip+n]))
			ip += n
		case bytecode.NewLine:
			v.emit("\n")
		case bytecode.RetAndPrint:
			addr, err := v.pop()
			if err != nil {
				return v.fail(err)
			}
			val := v.data[addr.Int()]
			switch val.Kind {
			case bytecode.KindReal:
				v.emit(fmt.Sprintf("%g", val.Real()))
			case bytecode.KindChar:
				v.emit(string(val.Char()))
			case bytecode.KindBool:
				if val.Bool() {
					v.emit("true")
				} else {
					v.emit("false")
				}
			default:
				v.emit(fmt.Sprintf("%d", val.Int()))
			}

		case bytecode.ReadInt:
			n, err := v.readLineAsInt()
			if err != nil {
				return v.fail(err)
			}
			v.data[imm] = bytecode.IntValue(n)
		case bytecode.ReadReal:
			f, err := v.readLineAsFloat()
			if err != nil {
				return v.fail(err)
			}
			v.data[imm] = bytecode.RealValue(f)

		case bytecode.Halt:
			v.halt()
			return nil

		default:
			return v.fail(rt("operation %d is not supported", op))
		}
	}
	return v.fail(rt("program fell off the end of the bytecode buffer without HALT"))
}

func (v *VM) emit(s string) {
	v.output = append(v.output, s)
}

// fail flushes whatever output was accumulated before surfacing a runtime
// error, matching spec.md §7's fatal-but-flush-first policy.
func (v *VM) fail(err error) error {
	v.flush()
	return err
}

func (v *VM) halt() {
	if !v.quiet {
		fmt.Fprintln(v.out, "Done!")
	}
	v.flush()
}

func (v *VM) flush() {
	if !v.quiet {
		fmt.Fprintln(v.out, "Flushing...")
	}
	fmt.Fprint(v.out, strings.Join(v.output, ""))
	v.output = nil
}

func (v *VM) intArith(op bytecode.OpCode) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	switch op {
	case bytecode.Add:
		v.push(bytecode.IntValue(a.Int() + b.Int()))
	case bytecode.Sub:
		v.push(bytecode.IntValue(a.Int() - b.Int()))
	case bytecode.Multiply:
		v.push(bytecode.IntValue(a.Int() * b.Int()))
	case bytecode.Div:
		if b.Int() == 0 {
			return rt("division by zero")
		}
		v.push(bytecode.IntValue(a.Int() / b.Int()))
	}
	return nil
}

// realDivide implements Pascal's '/': always real-valued, even when both
// operands are integers.
func (v *VM) realDivide() error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	denom := b.NumericFloat()
	if denom == 0 {
		return rt("division by zero")
	}
	v.push(bytecode.RealValue(a.NumericFloat() / denom))
	return nil
}

func (v *VM) floatArithNumeric(op bytecode.OpCode) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	x, y := a.NumericFloat(), b.NumericFloat()
	if op == bytecode.Fadd {
		v.push(bytecode.RealValue(x + y))
	} else {
		v.push(bytecode.RealValue(x * y))
	}
	return nil
}

// floatArithBits reinterprets its right-hand (first-popped) operand's
// bits as a float when it's still integer-tagged — this is how an
// un-promoted REAL_LIT reaching FSUB/FDIVIDE without an intervening CVR
// is handled; see internal/bytecode/opcode.go's Fsub/Fdivide doc comments.
func (v *VM) floatArithBits(op bytecode.OpCode) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	right := b.BitsFloat()
	left := a.NumericFloat()
	if op == bytecode.Fsub {
		v.push(bytecode.RealValue(left - right))
		return nil
	}
	if right == 0 {
		return rt("division by zero")
	}
	v.push(bytecode.RealValue(left / right))
	return nil
}

// compare implements the opcode/operator inversion table of spec.md
// §4.3.1: GTR computes a<b, GTE computes a<=b, and so on.
func (v *VM) compare(op bytecode.OpCode) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}

	var af, bf float64
	var isFloat bool
	if a.Kind == bytecode.KindReal || b.Kind == bytecode.KindReal {
		isFloat = true
		af, bf = a.NumericFloat(), b.NumericFloat()
	}

	var result bool
	switch op {
	case bytecode.Eql:
		result = valuesEqual(a, b)
	case bytecode.Neq:
		result = !valuesEqual(a, b)
	case bytecode.Gtr: // lexical '<'
		if isFloat {
			result = af < bf
		} else {
			result = ordinal(a) < ordinal(b)
		}
	case bytecode.Gte: // lexical '<='
		if isFloat {
			result = af <= bf
		} else {
			result = ordinal(a) <= ordinal(b)
		}
	case bytecode.Les: // lexical '>'
		if isFloat {
			result = af > bf
		} else {
			result = ordinal(a) > ordinal(b)
		}
	case bytecode.Lte: // lexical '>='
		if isFloat {
			result = af >= bf
		} else {
			result = ordinal(a) >= ordinal(b)
		}
	}
	v.push(bytecode.BoolValue(result))
	return nil
}

func ordinal(v bytecode.Value) int64 {
	if v.Kind == bytecode.KindChar {
		return int64(v.Char())
	}
	return int64(v.Int())
}

func valuesEqual(a, b bytecode.Value) bool {
	if a.Kind == bytecode.KindReal || b.Kind == bytecode.KindReal {
		return a.NumericFloat() == b.NumericFloat()
	}
	if a.Kind == bytecode.KindChar || b.Kind == bytecode.KindChar {
		return ordinal(a) == ordinal(b)
	}
	if a.Kind == bytecode.KindBool || b.Kind == bytecode.KindBool {
		return a.Bool() == b.Bool()
	}
	return a.Int() == b.Int()
}

func (v *VM) readLine() (string, error) {
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "failed to read input line")
	}
	return strings.TrimSpace(line), nil
}

func (v *VM) readLineAsInt() (int32, error) {
	line, err := v.readLine()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.ParseInt(line, 10, 32)
	if convErr != nil {
		return 0, rt("could not parse %q as an integer", line)
	}
	return int32(n), nil
}

func (v *VM) readLineAsFloat() (float64, error) {
	line, err := v.readLine()
	if err != nil {
		return 0, err
	}
	f, convErr := strconv.ParseFloat(line, 64)
	if convErr != nil {
		return 0, rt("could not parse %q as a real", line)
	}
	return f, nil
}
