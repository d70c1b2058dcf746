package dice

import "strconv"

// DieType identifies what kind of die produced an event.
//
// Basic, Percent and Fudge come from notation. Reroll, ConstantDie and
// SuccessDie are internal: Reroll redraws an existing die, the other two
// mark synthetic summary events that are never treated as dice.
type DieType interface {
	isDieType()
	String() string
}

// Basic is a die numbered 1..Sides.
type Basic struct {
	Sides int
}

// Percent is a d100 written as "d%".
type Percent struct{}

// Fudge is a FATE die with faces -1, 0 and +1.
type Fudge struct{}

// Reroll redraws a die of the wrapped type.
type Reroll struct {
	Of DieType
}

// ConstantDie marks a constant contribution to the total.
type ConstantDie struct{}

// SuccessDie marks a success/failure tally.
type SuccessDie struct{}

func (Basic) isDieType()       {}
func (Percent) isDieType()     {}
func (Fudge) isDieType()       {}
func (Reroll) isDieType()      {}
func (ConstantDie) isDieType() {}
func (SuccessDie) isDieType()  {}

func (d Basic) String() string     { return strconv.Itoa(d.Sides) }
func (Percent) String() string     { return "%" }
func (Fudge) String() string       { return "F" }
func (d Reroll) String() string    { return "reroll(" + dieName(d.Of) + ")" }
func (ConstantDie) String() string { return "constant" }
func (SuccessDie) String() string  { return "success" }

func dieName(d DieType) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}

// faceRange returns the lowest and highest face of a rollable die.
func faceRange(d DieType) (lo, hi int, ok bool) {
	switch d := d.(type) {
	case Basic:
		if d.Sides <= 0 || d.Sides > MaxSides {
			return 0, 0, false
		}
		return 1, d.Sides, true
	case Percent:
		return 1, 100, true
	case Fudge:
		return -1, 1, true
	case Reroll:
		return faceRange(d.Of)
	default:
		return 0, 0, false
	}
}

// isSummary reports whether d marks a synthetic event rather than a die.
func isSummary(d DieType) bool {
	switch d.(type) {
	case ConstantDie, SuccessDie:
		return true
	default:
		return false
	}
}

// significanceOf tags value as the die's minimum or maximum face.
func significanceOf(d DieType, value int) Significance {
	lo, hi, ok := faceRange(d)
	if !ok {
		return SignificanceNone
	}
	switch value {
	case hi:
		return SignificanceMaximum
	case lo:
		return SignificanceMinimum
	default:
		return SignificanceNone
	}
}
