package dice

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/dicelang/internal/platform/errors"
)

// ComparisonOperator is a strict comparison used by comparison points.
type ComparisonOperator int

const (
	Equal ComparisonOperator = iota + 1
	GreaterThan
	LessThan
)

func (op ComparisonOperator) String() string {
	switch op {
	case Equal:
		return "="
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	default:
		return "ComparisonOperator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Holds reports whether value compares to target under op.
func (op ComparisonOperator) Holds(value, target int) (bool, error) {
	switch op {
	case Equal:
		return value == target, nil
	case GreaterThan:
		return value > target, nil
	case LessThan:
		return value < target, nil
	default:
		return false, apperrors.WithMetadata(
			apperrors.CodeComparisonInvalid,
			fmt.Sprintf("unknown comparison operator %d", int(op)),
			map[string]string{"Operator": strconv.Itoa(int(op))},
		)
	}
}

// ArithmeticOperator joins arithmetic terms and signs constant modifiers.
type ArithmeticOperator int

const (
	Add ArithmeticOperator = iota
	Subtract
)

func (op ArithmeticOperator) String() string {
	if op == Subtract {
		return "-"
	}
	return "+"
}

// apply folds value into total.
func (op ArithmeticOperator) apply(total, value int) int {
	if op == Subtract {
		return total - value
	}
	return total + value
}

// Phase orders modifier application. Phases always run in this order,
// regardless of where a modifier appears in the notation.
type Phase int

const (
	// PhaseGeneration adds or replaces dice.
	PhaseGeneration Phase = iota
	// PhaseSelection marks dice kept or dropped.
	PhaseSelection
	// PhaseFinalization reads the dice and appends or collapses summaries.
	PhaseFinalization
)

func (p Phase) String() string {
	switch p {
	case PhaseGeneration:
		return "generation"
	case PhaseSelection:
		return "selection"
	case PhaseFinalization:
		return "finalization"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Modifier transforms the dice of a BasicRoll.
type Modifier interface {
	isModifier()
	Phase() Phase
	String() string
}

// Keep keeps the Count highest (or lowest) dice and drops the rest.
type Keep struct {
	Count   int
	Highest bool
}

// Drop drops the Count highest (or lowest) dice.
type Drop struct {
	Count   int
	Highest bool
}

// RerollOnce rerolls each matching die a single time.
type RerollOnce struct {
	Op    ComparisonOperator
	Value int
}

// RerollMultiple rerolls a matching die until it stops matching, up to
// MaxRerolls times.
type RerollMultiple struct {
	Op    ComparisonOperator
	Value int
}

// Explode adds an extra die for every matching die, chaining.
type Explode struct {
	Op    ComparisonOperator
	Value int
}

// Compound is Explode with the chain summed into a single die.
type Compound struct {
	Op    ComparisonOperator
	Value int
}

// Success counts dice matching the comparison.
type Success struct {
	Op    ComparisonOperator
	Value int
}

// Failure counts dice matching the comparison against the total.
type Failure struct {
	Op    ComparisonOperator
	Value int
}

// ConstantModifier adds or subtracts a fixed value.
type ConstantModifier struct {
	Op    ArithmeticOperator
	Value int
}

func (Keep) isModifier()             {}
func (Drop) isModifier()             {}
func (RerollOnce) isModifier()       {}
func (RerollMultiple) isModifier()   {}
func (Explode) isModifier()          {}
func (Compound) isModifier()         {}
func (Success) isModifier()          {}
func (Failure) isModifier()          {}
func (ConstantModifier) isModifier() {}

func (Keep) Phase() Phase             { return PhaseSelection }
func (Drop) Phase() Phase             { return PhaseSelection }
func (RerollOnce) Phase() Phase       { return PhaseGeneration }
func (RerollMultiple) Phase() Phase   { return PhaseGeneration }
func (Explode) Phase() Phase          { return PhaseGeneration }
func (Compound) Phase() Phase         { return PhaseGeneration }
func (Success) Phase() Phase          { return PhaseFinalization }
func (Failure) Phase() Phase          { return PhaseFinalization }
func (ConstantModifier) Phase() Phase { return PhaseFinalization }

func (m Keep) String() string {
	return "k" + rank(m.Highest) + strconv.Itoa(m.Count)
}

func (m Drop) String() string {
	return "d" + rank(m.Highest) + strconv.Itoa(m.Count)
}

func (m RerollOnce) String() string     { return "ro" + point(m.Op, m.Value) }
func (m RerollMultiple) String() string { return "rc" + point(m.Op, m.Value) }
func (m Explode) String() string        { return "!" + point(m.Op, m.Value) }
func (m Compound) String() string       { return "^" + point(m.Op, m.Value) }
func (m Success) String() string        { return point(m.Op, m.Value) }
func (m Failure) String() string        { return "f" + point(m.Op, m.Value) }

func (m ConstantModifier) String() string {
	return m.Op.String() + strconv.Itoa(m.Value)
}

func rank(highest bool) string {
	if highest {
		return "h"
	}
	return "l"
}

func point(op ComparisonOperator, value int) string {
	return op.String() + strconv.Itoa(value)
}
