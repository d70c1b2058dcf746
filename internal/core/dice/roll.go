// Package dice defines the roll AST for dice notation and evaluates it
// against a pluggable random source.
//
// The AST is a set of closed sum types: Roll, DieType and Modifier are
// interfaces with unexported marker methods, so only the variants declared
// in this package exist. A parsed Roll is never mutated and may be shared
// and evaluated concurrently.
package dice

import (
	"strconv"
	"strings"
)

// Roll is a node in the roll AST: Constant, BasicRoll or ArithmeticRoll.
type Roll interface {
	isRoll()
	String() string
}

// Constant is a fixed value.
type Constant struct {
	Value int
}

// BasicRoll rolls Count dice of one type and applies Modifiers.
type BasicRoll struct {
	Count     int
	Die       DieType
	Modifiers []Modifier
}

// Term is one signed operand of an ArithmeticRoll.
type Term struct {
	Operator ArithmeticOperator
	Roll     Roll
}

// ArithmeticRoll chains terms strictly left to right. The first term is
// always added; its Operator is ignored.
type ArithmeticRoll struct {
	Terms []Term
}

func (Constant) isRoll()       {}
func (BasicRoll) isRoll()      {}
func (ArithmeticRoll) isRoll() {}

func (c Constant) String() string {
	return strconv.Itoa(c.Value)
}

// String renders the roll in canonical notation, e.g. "4d6kh3".
func (r BasicRoll) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Count))
	b.WriteByte('d')
	if r.Die != nil {
		b.WriteString(r.Die.String())
	}
	for _, m := range r.Modifiers {
		b.WriteString(m.String())
	}
	return b.String()
}

func (r ArithmeticRoll) String() string {
	var b strings.Builder
	for i, term := range r.Terms {
		if i > 0 {
			b.WriteString(term.Operator.String())
		}
		if term.Roll != nil {
			b.WriteString(term.Roll.String())
		}
	}
	return b.String()
}
