package dice

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/dicelang/internal/platform/errors"
)

const (
	// DefaultMaxExplosions bounds each explosion chain.
	DefaultMaxExplosions = 100
	// DefaultMaxCompounds bounds each compounding chain.
	DefaultMaxCompounds = 100
	// MaxRerolls bounds a reroll-until chain.
	MaxRerolls = 10
	// MaxDice bounds the dice count of one basic roll.
	MaxDice = 10_000
	// MaxSides bounds the sides of a basic die.
	MaxSides = 1_000_000
)

// Evaluator runs roll ASTs against a Source.
//
// An Evaluator draws from its Source in a deterministic order, so it is
// not safe for concurrent use unless the Source is.
type Evaluator struct {
	src           Source
	maxExplosions int
	maxCompounds  int
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithMaxExplosions sets the explosion chain ceiling.
func WithMaxExplosions(n int) Option {
	return func(e *Evaluator) error {
		return e.SetMaxExplosions(n)
	}
}

// WithMaxCompounds sets the compounding chain ceiling.
func WithMaxCompounds(n int) Option {
	return func(e *Evaluator) error {
		return e.SetMaxCompounds(n)
	}
}

// NewEvaluator creates an evaluator drawing from src.
func NewEvaluator(src Source, opts ...Option) (*Evaluator, error) {
	if src == nil {
		return nil, fmt.Errorf("dice: source is required")
	}
	e := &Evaluator{
		src:           src,
		maxExplosions: DefaultMaxExplosions,
		maxCompounds:  DefaultMaxCompounds,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SetMaxExplosions changes the explosion chain ceiling. n must be positive.
func (e *Evaluator) SetMaxExplosions(n int) error {
	if err := checkCeiling("MaxExplosions", n); err != nil {
		return err
	}
	e.maxExplosions = n
	return nil
}

// SetMaxCompounds changes the compounding chain ceiling. n must be positive.
func (e *Evaluator) SetMaxCompounds(n int) error {
	if err := checkCeiling("MaxCompounds", n); err != nil {
		return err
	}
	e.maxCompounds = n
	return nil
}

func (e *Evaluator) MaxExplosions() int { return e.maxExplosions }

func (e *Evaluator) MaxCompounds() int { return e.maxCompounds }

func checkCeiling(setting string, n int) error {
	if n >= 1 {
		return nil
	}
	return apperrors.WithMetadata(
		apperrors.CodeConfigOutOfRange,
		fmt.Sprintf("%s must be at least 1, got %d", setting, n),
		map[string]string{"Setting": setting, "Value": strconv.Itoa(n)},
	)
}

func unsupported(kind string) error {
	return apperrors.WithMetadata(
		apperrors.CodeEvaluationUnsupported,
		"unsupported "+kind,
		map[string]string{"Kind": kind},
	)
}

// Evaluate returns the total of roll.
func (e *Evaluator) Evaluate(roll Roll) (int, error) {
	res, err := e.EvaluateDetailed(roll)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// EvaluateDetailed returns the total of roll with every die event that
// produced it.
func (e *Evaluator) EvaluateDetailed(roll Roll) (Result, error) {
	events, value, err := e.eval(roll)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, Events: events}, nil
}

func (e *Evaluator) eval(roll Roll) ([]DieEvent, int, error) {
	switch r := roll.(type) {
	case Constant:
		return []DieEvent{{Value: r.Value, Die: ConstantDie{}}}, r.Value, nil
	case BasicRoll:
		return e.evalBasic(r)
	case ArithmeticRoll:
		return e.evalArithmetic(r)
	default:
		return nil, 0, unsupported(fmt.Sprintf("roll %T", roll))
	}
}

func (e *Evaluator) evalArithmetic(r ArithmeticRoll) ([]DieEvent, int, error) {
	if len(r.Terms) == 0 {
		return nil, 0, unsupported("empty arithmetic roll")
	}
	var events []DieEvent
	total := 0
	for i, term := range r.Terms {
		op := term.Operator
		if i == 0 {
			op = Add
		}
		if op != Add && op != Subtract {
			return nil, 0, unsupported("arithmetic operator " + strconv.Itoa(int(op)))
		}
		termEvents, value, err := e.eval(term.Roll)
		if err != nil {
			return nil, 0, err
		}
		for _, ev := range termEvents {
			group := i
			// A nested arithmetic term keeps its own sign relative to ours.
			sign := op
			if ev.GroupOperator != nil && *ev.GroupOperator == Subtract {
				sign = flip(op)
			}
			ev.Group = &group
			ev.GroupOperator = &sign
			events = append(events, ev)
		}
		total = op.apply(total, value)
	}
	return events, total, nil
}

func flip(op ArithmeticOperator) ArithmeticOperator {
	if op == Subtract {
		return Add
	}
	return Subtract
}

func (e *Evaluator) evalBasic(r BasicRoll) ([]DieEvent, int, error) {
	if r.Count <= 0 || r.Count > MaxDice {
		return nil, 0, unsupported("dice count " + strconv.Itoa(r.Count))
	}
	switch r.Die.(type) {
	case Basic, Percent, Fudge:
	default:
		return nil, 0, unsupported("die type " + dieName(r.Die))
	}
	if _, _, ok := faceRange(r.Die); !ok {
		return nil, 0, unsupported("die type " + dieName(r.Die))
	}

	var events []DieEvent
	for n := 0; n < r.Count; n++ {
		ev, err := e.roll(r.Die, r.Die, EventInitial)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}

	events, err := e.applyModifiers(events, r.Modifiers)
	if err != nil {
		return nil, 0, err
	}

	total := 0
	for _, ev := range events {
		if ev.Counted() {
			total += ev.Value
		}
	}
	return events, total, nil
}

// roll draws one value for draw and records it as an event of die.
func (e *Evaluator) roll(die, draw DieType, typ EventType) (DieEvent, error) {
	value, err := e.draw(draw)
	if err != nil {
		return DieEvent{}, err
	}
	return DieEvent{
		Value:        value,
		Type:         typ,
		Die:          die,
		Significance: significanceOf(die, value),
	}, nil
}

func (e *Evaluator) draw(die DieType) (int, error) {
	lo, hi, ok := faceRange(die)
	if !ok {
		return 0, unsupported("die type " + dieName(die))
	}
	return e.src.Range(lo, hi+1), nil
}
