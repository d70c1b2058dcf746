package parse

import (
	"strconv"
	"unicode"
)

// Whitespace skips any run of whitespace. It never fails.
func Whitespace() Parser[struct{}] {
	return func(in Input) Result[struct{}] {
		cur := in
		for {
			r, size, ok := cur.Peek()
			if !ok || !unicode.IsSpace(r) {
				return succeed(struct{}{}, in, cur)
			}
			cur = cur.Advance(size)
		}
	}
}

// Token skips whitespace around p. The whole token backtracks when p fails,
// so tokens can be used directly as alternatives.
func Token[T any](p Parser[T]) Parser[T] {
	ws := Whitespace()
	return Try(Skip(Then(ws, p), ws))
}

// Digits matches one or more ASCII digits.
func Digits() Parser[string] {
	digit := Satisfy("digit", func(r rune) bool { return r >= '0' && r <= '9' })
	return func(in Input) Result[string] {
		res := Many1(digit)(in)
		if !res.OK {
			return relay[string](res)
		}
		return succeed(in.Text[in.Pos:res.Rest.Pos], in, res.Rest)
	}
}

// Int matches an unsigned decimal integer that fits in an int.
func Int() Parser[int] {
	digits := Digits()
	return func(in Input) Result[int] {
		res := digits(in)
		if !res.OK {
			return relay[int](res)
		}
		n, err := strconv.Atoi(res.Value)
		if err != nil {
			return Result[int]{Rest: in, Expected: "integer in range", Consumed: true}
		}
		return succeed(n, in, res.Rest)
	}
}

// PositiveInt matches a decimal integer greater than zero.
func PositiveInt() Parser[int] {
	return Where(Int(), "positive integer", func(n int) bool { return n > 0 })
}
