package bytecode

import "math"

// Kind tags a runtime Value the way spec.md §3's Value union does.
type Kind int8

const (
	KindInt Kind = iota
	KindReal
	KindChar
	KindBool
)

// Value is a tagged runtime value. Exactly one of i/f/c/b is meaningful,
// selected by Kind. i doubles as the raw 32-bit bit pattern of a real
// literal that has not yet been promoted or reinterpreted — see PushInt
// and PopRealLit in opcode.go.
type Value struct {
	Kind Kind
	i    int32
	f    float64
	c    rune
	b    bool
}

func IntValue(i int32) Value   { return Value{Kind: KindInt, i: i} }
func RealValue(f float64) Value { return Value{Kind: KindReal, f: f} }
func CharValue(c rune) Value   { return Value{Kind: KindChar, c: c} }
func BoolValue(b bool) Value   { return Value{Kind: KindBool, b: b} }

func (v Value) Int() int32   { return v.i }
func (v Value) Real() float64 { return v.f }
func (v Value) Char() rune   { return v.c }
func (v Value) Bool() bool   { return v.b }

// NumericFloat returns v as a float64 by plain numeric conversion: an
// already-real value passes through, an integer is cast. Use this for an
// operand already known to have gone through CVR.
func (v Value) NumericFloat() float64 {
	if v.Kind == KindReal {
		return v.f
	}
	return float64(v.i)
}

// BitsFloat returns v as a float64, reinterpreting an integer-tagged
// value's bits as an IEEE-754 32-bit float rather than casting it
// numerically. Use this for an operand that may still be an un-promoted
// REAL_LIT bit pattern (FSUB's and FDIVIDE's right-hand operand).
func (v Value) BitsFloat() float64 {
	if v.Kind == KindReal {
		return v.f
	}
	return float64(math.Float32frombits(uint32(v.i)))
}

// Float32Bits packs f as the 4-byte IEEE-754 bit pattern spec.md §4.3.1
// mandates for REAL literal immediates.
func Float32Bits(f float64) uint32 {
	return math.Float32bits(float32(f))
}
