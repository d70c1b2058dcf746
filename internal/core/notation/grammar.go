// Package notation parses dice notation such as "4d6kh3+1d4-2" into a
// dice.Roll.
package notation

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/louisbranch/dicelang/internal/core/dice"
	"github.com/louisbranch/dicelang/internal/core/parse"
	apperrors "github.com/louisbranch/dicelang/internal/platform/errors"
)

// comparisonPoint is an operator and threshold such as ">4".
type comparisonPoint struct {
	op    dice.ComparisonOperator
	value int
}

var grammar = sync.OnceValue(buildGrammar)

// Parse parses text into a roll. It is safe for concurrent use.
//
// Any failure returns a NOTATION_INVALID error carrying the notation and
// the offset where parsing stopped.
func Parse(text string) (dice.Roll, error) {
	roll, err := parse.Run(grammar(), text)
	if err != nil {
		offset := 0
		if pe, ok := err.(*parse.Error); ok {
			offset = pe.Pos
		}
		return nil, apperrors.WrapWithMetadata(
			apperrors.CodeNotationInvalid,
			fmt.Sprintf("invalid notation %q", text),
			map[string]string{"Notation": text, "Offset": strconv.Itoa(offset)},
			err,
		)
	}
	return roll, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) dice.Roll {
	roll, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return roll
}

func buildGrammar() parse.Parser[dice.Roll] {
	positive := parse.PositiveInt()

	cmpOp := parse.Or(
		parse.As(parse.Char('='), dice.Equal),
		parse.As(parse.Char('>'), dice.GreaterThan),
		parse.As(parse.Char('<'), dice.LessThan),
	)
	point := parse.Map2(cmpOp, positive, func(op dice.ComparisonOperator, v int) comparisonPoint {
		return comparisonPoint{op: op, value: v}
	})

	arithOp := parse.Or(
		parse.As(parse.Char('+'), dice.Add),
		parse.As(parse.Char('-'), dice.Subtract),
	)

	// count is an optional positive count that defaults to 1. A zero is
	// left unconsumed so the surrounding parse fails on it.
	count := parse.Map(parse.Optional(positive), func(o parse.Option[int]) int {
		return o.OrElse(1)
	})

	prefixed := func(prefix string, f func(comparisonPoint) dice.Modifier) parse.Parser[dice.Modifier] {
		return parse.Token(parse.Map(parse.Then(parse.Literal(prefix), point), f))
	}
	ranked := func(prefix string, f func(int) dice.Modifier) parse.Parser[dice.Modifier] {
		return parse.Token(parse.Map(parse.Then(parse.Literal(prefix), count), f))
	}

	success := parse.Token(parse.Map(point, func(p comparisonPoint) dice.Modifier {
		return dice.Success{Op: p.op, Value: p.value}
	}))
	failure := prefixed("f", func(p comparisonPoint) dice.Modifier {
		return dice.Failure{Op: p.op, Value: p.value}
	})
	dropHighest := ranked("dh", func(n int) dice.Modifier { return dice.Drop{Count: n, Highest: true} })
	dropLowest := ranked("dl", func(n int) dice.Modifier { return dice.Drop{Count: n} })
	keepHighest := ranked("kh", func(n int) dice.Modifier { return dice.Keep{Count: n, Highest: true} })
	keepLowest := ranked("kl", func(n int) dice.Modifier { return dice.Keep{Count: n} })
	rerollOnce := prefixed("ro", func(p comparisonPoint) dice.Modifier {
		return dice.RerollOnce{Op: p.op, Value: p.value}
	})
	rerollMultiple := prefixed("rc", func(p comparisonPoint) dice.Modifier {
		return dice.RerollMultiple{Op: p.op, Value: p.value}
	})
	explode := prefixed("!", func(p comparisonPoint) dice.Modifier {
		return dice.Explode{Op: p.op, Value: p.value}
	})
	compound := prefixed("^", func(p comparisonPoint) dice.Modifier {
		return dice.Compound{Op: p.op, Value: p.value}
	})
	constantModifier := parse.Token(parse.Map2(arithOp, positive, func(op dice.ArithmeticOperator, v int) dice.Modifier {
		return dice.ConstantModifier{Op: op, Value: v}
	}))

	comparing := []parse.Parser[dice.Modifier]{
		success, failure,
		dropHighest, dropLowest, keepHighest, keepLowest,
		rerollOnce, rerollMultiple, explode, compound,
	}
	modifier := parse.Or(append(comparing, constantModifier)...)
	termModifier := parse.Or(comparing...)

	dieType := parse.Or(
		parse.As(parse.Char('F'), dice.DieType(dice.Fudge{})),
		parse.As(parse.Char('%'), dice.DieType(dice.Percent{})),
		parse.Map(positive, func(n int) dice.DieType { return dice.Basic{Sides: n} }),
	)

	type pool struct {
		count int
		die   dice.DieType
	}
	dicePool := parse.Token(parse.Where(
		parse.Map2(count, parse.Then(parse.Char('d'), dieType), func(n int, die dice.DieType) pool {
			return pool{count: n, die: die}
		}),
		fmt.Sprintf("at most %d dice of at most %d sides", dice.MaxDice, dice.MaxSides),
		func(p pool) bool {
			if b, ok := p.die.(dice.Basic); ok && b.Sides > dice.MaxSides {
				return false
			}
			return p.count <= dice.MaxDice
		},
	))
	withModifiers := func(mod parse.Parser[dice.Modifier]) parse.Parser[dice.Roll] {
		return parse.Map2(dicePool, parse.Many(mod), func(p pool, mods []dice.Modifier) dice.Roll {
			return dice.BasicRoll{Count: p.count, Die: p.die, Modifiers: mods}
		})
	}
	basicRoll := withModifiers(modifier)

	constant := parse.Token(parse.Map(parse.Int(), func(n int) dice.Roll {
		return dice.Constant{Value: n}
	}))

	rollTerm := parse.Or(withModifiers(termModifier), constant)
	nextTerm := parse.Try(parse.Map2(parse.Token(arithOp), rollTerm, func(op dice.ArithmeticOperator, r dice.Roll) dice.Term {
		return dice.Term{Operator: op, Roll: r}
	}))
	arithmeticRoll := parse.Map2(rollTerm, parse.Many(nextTerm), func(first dice.Roll, rest []dice.Term) dice.Roll {
		if len(rest) == 0 {
			return first
		}
		terms := append([]dice.Term{{Operator: dice.Add, Roll: first}}, rest...)
		return dice.ArithmeticRoll{Terms: terms}
	})

	whole := func(p parse.Parser[dice.Roll]) parse.Parser[dice.Roll] {
		return parse.Try(parse.Skip(p, parse.End()))
	}
	return parse.Or(whole(arithmeticRoll), whole(basicRoll), whole(constant))
}
