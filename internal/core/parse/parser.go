// Package parse provides a small set of parser combinators over an
// immutable input cursor.
//
// A Parser is a pure function from an Input to a Result. Parsers hold no
// mutable state, so a composed grammar can be built once and shared across
// goroutines.
//
// # Backtracking
//
// Alternation only tries the next branch when the previous one failed
// without consuming input. Parsers that can fail part way through (such as
// Literal or a Map2 of several tokens) must be wrapped in Try to take part in
// alternation after a partial match.
package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input is a position within the text being parsed.
type Input struct {
	Text string
	Pos  int
}

// AtEnd reports whether the cursor has consumed all input.
func (in Input) AtEnd() bool {
	return in.Pos >= len(in.Text)
}

// Peek returns the next rune without advancing.
func (in Input) Peek() (rune, int, bool) {
	if in.AtEnd() {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(in.Text[in.Pos:])
	return r, size, true
}

// Advance returns a cursor n bytes further along.
func (in Input) Advance(n int) Input {
	return Input{Text: in.Text, Pos: in.Pos + n}
}

// Result is the outcome of running a parser.
//
// On success Rest is the input after the match. On failure Rest marks where
// the failure was detected and Expected describes what was wanted there.
type Result[T any] struct {
	Value    T
	Rest     Input
	OK       bool
	Consumed bool
	Expected string
}

// Parser consumes a prefix of its input and produces a value.
type Parser[T any] func(Input) Result[T]

// Option is an optional parse value.
type Option[T any] struct {
	Value   T
	Present bool
}

// OrElse returns the value when present and fallback otherwise.
func (o Option[T]) OrElse(fallback T) T {
	if o.Present {
		return o.Value
	}
	return fallback
}

// Error describes a failed parse.
type Error struct {
	Pos      int
	Expected string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d: expected %s", e.Pos, e.Expected)
}

// Run applies p to the whole of text.
//
// Run does not require p to consume everything; compose with End for that.
func Run[T any](p Parser[T], text string) (T, error) {
	res := p(Input{Text: text})
	if !res.OK {
		var zero T
		return zero, &Error{Pos: res.Rest.Pos, Expected: res.Expected}
	}
	return res.Value, nil
}

func succeed[T any](value T, from, to Input) Result[T] {
	return Result[T]{Value: value, Rest: to, OK: true, Consumed: to.Pos > from.Pos}
}

func fail[T any](expected string, from, at Input) Result[T] {
	return Result[T]{Rest: at, Expected: expected, Consumed: at.Pos > from.Pos}
}

// relay converts a failed result to another value type.
func relay[T, U any](res Result[U]) Result[T] {
	return Result[T]{Rest: res.Rest, Expected: res.Expected, Consumed: res.Consumed}
}

// Return succeeds without consuming input.
func Return[T any](value T) Parser[T] {
	return func(in Input) Result[T] {
		return succeed(value, in, in)
	}
}

// Satisfy matches one rune accepted by pred.
func Satisfy(expected string, pred func(rune) bool) Parser[rune] {
	return func(in Input) Result[rune] {
		r, size, ok := in.Peek()
		if !ok || !pred(r) {
			return fail[rune](expected, in, in)
		}
		return succeed(r, in, in.Advance(size))
	}
}

// Char matches exactly c.
func Char(c rune) Parser[rune] {
	return Satisfy(fmt.Sprintf("%q", c), func(r rune) bool { return r == c })
}

// Literal matches s rune by rune. A partial match fails after consuming
// the matched prefix.
func Literal(s string) Parser[string] {
	expected := fmt.Sprintf("%q", s)
	return func(in Input) Result[string] {
		cur := in
		for _, want := range s {
			r, size, ok := cur.Peek()
			if !ok || r != want {
				return fail[string](expected, in, cur)
			}
			cur = cur.Advance(size)
		}
		return succeed(s, in, cur)
	}
}

// Map transforms the value of a successful parse.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in Input) Result[U] {
		res := p(in)
		if !res.OK {
			return relay[U](res)
		}
		return succeed(f(res.Value), in, res.Rest)
	}
}

// As replaces the value of a successful parse with value.
func As[T, U any](p Parser[T], value U) Parser[U] {
	return Map(p, func(T) U { return value })
}

// Map2 runs a then b and combines their values. It fails at the position of
// the first failure.
func Map2[A, B, C any](a Parser[A], b Parser[B], f func(A, B) C) Parser[C] {
	return func(in Input) Result[C] {
		ra := a(in)
		if !ra.OK {
			return relay[C](ra)
		}
		rb := b(ra.Rest)
		if !rb.OK {
			return Result[C]{Rest: rb.Rest, Expected: rb.Expected, Consumed: ra.Consumed || rb.Consumed}
		}
		return succeed(f(ra.Value, rb.Value), in, rb.Rest)
	}
}

// Map4 runs four parsers in sequence and combines their values.
func Map4[A, B, C, D, E any](a Parser[A], b Parser[B], c Parser[C], d Parser[D], f func(A, B, C, D) E) Parser[E] {
	type ab struct {
		a A
		b B
	}
	type cd struct {
		c C
		d D
	}
	left := Map2(a, b, func(x A, y B) ab { return ab{x, y} })
	right := Map2(c, d, func(x C, y D) cd { return cd{x, y} })
	return Map2(left, right, func(l ab, r cd) E { return f(l.a, l.b, r.c, r.d) })
}

// Then runs a then b and keeps b's value.
func Then[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Map2(a, b, func(_ A, y B) B { return y })
}

// Skip runs a then b and keeps a's value.
func Skip[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Map2(a, b, func(x A, _ B) A { return x })
}

// Or tries each parser in turn. A branch that fails after consuming input
// stops the search and its failure is returned. When every branch fails,
// the failure reported is the one that got furthest.
func Or[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		furthest := in
		var expected []string
		for _, p := range ps {
			res := p(in)
			if res.OK || res.Consumed {
				return res
			}
			switch {
			case res.Rest.Pos > furthest.Pos || expected == nil:
				furthest = res.Rest
				expected = []string{res.Expected}
			case res.Rest.Pos == furthest.Pos:
				expected = append(expected, res.Expected)
			}
		}
		return Result[T]{Rest: furthest, Expected: strings.Join(expected, " or ")}
	}
}

// Try makes a failing parser look as if it consumed nothing, so alternation
// can move on to the next branch. The failure position is kept for error
// reporting.
func Try[T any](p Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		res := p(in)
		if res.OK {
			return res
		}
		return Result[T]{Rest: res.Rest, Expected: res.Expected}
	}
}

// Many applies p zero or more times. It stops at the first non-consuming
// failure, or at a success that consumed nothing.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) Result[[]T] {
		var out []T
		cur := in
		for {
			res := p(cur)
			if !res.OK {
				if res.Consumed {
					return relay[[]T](res)
				}
				return succeed(out, in, cur)
			}
			if res.Rest.Pos == cur.Pos {
				return succeed(out, in, cur)
			}
			out = append(out, res.Value)
			cur = res.Rest
		}
	}
}

// Many1 applies p one or more times.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Map2(p, Many(p), func(first T, rest []T) []T {
		return append([]T{first}, rest...)
	})
}

// Optional never fails: it yields the value of p when p matches and an
// absent Option otherwise, restoring the input.
func Optional[T any](p Parser[T]) Parser[Option[T]] {
	return func(in Input) Result[Option[T]] {
		res := p(in)
		if !res.OK {
			return succeed(Option[T]{}, in, in)
		}
		return succeed(Option[T]{Value: res.Value, Present: true}, in, res.Rest)
	}
}

// Where fails when the parsed value does not satisfy pred. The failure is
// reported at the start of the match and counts as consuming.
func Where[T any](p Parser[T], expected string, pred func(T) bool) Parser[T] {
	return func(in Input) Result[T] {
		res := p(in)
		if !res.OK {
			return res
		}
		if !pred(res.Value) {
			return Result[T]{Rest: in, Expected: expected, Consumed: res.Consumed}
		}
		return res
	}
}

// End succeeds only at the end of input.
func End() Parser[struct{}] {
	return func(in Input) Result[struct{}] {
		if !in.AtEnd() {
			return fail[struct{}]("end of input", in, in)
		}
		return succeed(struct{}{}, in, in)
	}
}
