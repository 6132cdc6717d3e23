package vcd

import (
	"fmt"
	"strconv"
	"strings"
)

// VarType is the declared type of a variable, as written in its $var
// declaration.
type VarType int

// Variable types, in VCD keyword order.
const (
	VarWire VarType = iota
	VarReg
	VarString
	VarParameter
	VarInteger
	VarReal
	VarRealtime
	VarTime
	VarEvent
	VarSupply0
	VarSupply1
	VarTri
	VarTriAnd
	VarTriOr
	VarTriReg
	VarTri0
	VarTri1
	VarWAnd
	VarWOr
)

var varTypes = [...]string{
	"wire", "reg", "string", "parameter", "integer", "real", "realtime", "time", "event",
	"supply0", "supply1", "tri", "triand", "trior", "trireg", "tri0", "tri1", "wand", "wor",
}

func (t VarType) String() string {
	if t < VarWire || t > VarWOr {
		return "VarType(" + strconv.Itoa(int(t)) + ")"
	}
	return varTypes[t]
}

// The 4-state signal alphabet.
const (
	vZero  = '0'
	vOne   = '1'
	vUndef = 'x'
	vHighZ = 'z'
)

// fold4 lower-cases c and reports whether it belongs to the 4-state
// alphabet.
func fold4(c byte) (byte, bool) {
	if 'A' <= c && c <= 'Z' {
		c += 'a' - 'A'
	}
	switch c {
	case vZero, vOne, vUndef, vHighZ:
		return c, true
	}
	return c, false
}

// A Variable is a named signal registered with a Writer. It holds everything
// needed to emit change records: the generated wire identifier, the declared
// type and width, and the encoder for its value variant. Variables are
// created by Writer.RegisterVar and are immutable.
type Variable struct {
	ident uint32  // wire identifier, rendered in hex
	typ   VarType // declared VCD type
	name  string
	width int
	scope string // full dotted name of the declaring scope
	enc   encoder
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Type returns the variable's declared VCD type.
func (v *Variable) Type() VarType { return v.typ }

// Width returns the variable's bit width.
func (v *Variable) Width() int { return v.width }

// ScopeName returns the full dotted name of the scope the variable was
// registered under. The scope itself can be looked up through the writer.
func (v *Variable) ScopeName() string { return v.scope }

// declaration renders the variable's $var line.
func (v *Variable) declaration() string {
	return fmt.Sprintf("$var %s %d %x %s $end", v.typ, v.width, v.ident, v.name)
}

// An encoder converts a raw value into the canonical wire text for one of
// the value variants. The variant is fixed at variable construction; there
// are exactly four: scalar, vector, real and string.
type encoder interface {
	encode(value string) (string, error)
}

// scalarEncoder encodes a 1-bit 4-state value. An empty value means
// undefined.
type scalarEncoder struct{}

func (scalarEncoder) encode(value string) (string, error) {
	if value == "" {
		return string(vUndef), nil
	}
	c, ok := fold4(value[0])
	if len(value) != 1 || !ok {
		return "", validationErrorf("invalid scalar value %q", value)
	}
	return string(c), nil
}

// vectorEncoder encodes an N-bit 4-state value. The supplied bits are
// right-aligned and zero-padded on the left to the full width; an empty
// value yields a full-width run of the undefined symbol.
type vectorEncoder struct {
	width int
}

func (e vectorEncoder) encode(value string) (string, error) {
	if len(value) > e.width {
		return "", validationErrorf("invalid vector value %q for width %d", value, e.width)
	}
	var b strings.Builder
	b.Grow(e.width + 2)
	b.WriteByte('b')
	if value == "" {
		for i := 0; i < e.width; i++ {
			b.WriteByte(vUndef)
		}
	} else {
		for i := len(value); i < e.width; i++ {
			b.WriteByte(vZero)
		}
		for i := 0; i < len(value); i++ {
			c, ok := fold4(value[i])
			if !ok {
				return "", validationErrorf("invalid vector value %q for width %d", value, e.width)
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte(' ')
	return b.String(), nil
}

// realEncoder encodes an IEEE-754 double. Undefined and high-impedance
// states do not exist for reals.
type realEncoder struct{}

func (realEncoder) encode(value string) (string, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", validationErrorf("invalid real value %q", value)
	}
	return fmt.Sprintf("r%.16g ", f), nil
}

// stringEncoder encodes a GTKWave string extension value, which may be any
// text not containing a space.
type stringEncoder struct{}

func (stringEncoder) encode(value string) (string, error) {
	if strings.ContainsRune(value, ' ') {
		return "", validationErrorf("invalid string value %q", value)
	}
	return "s" + value + " ", nil
}
