package dice

import "fmt"

// Source draws integers for the evaluator. Range returns a value in the
// half-open interval [min, max).
//
// A Source is consumed synchronously and in a deterministic order. Sharing
// one stateful Source between concurrent evaluations is only safe when the
// implementation is itself safe for concurrent use.
type Source interface {
	Next() int
	NextN(max int) int
	Range(min, max int) int
}

// SequenceSource replays a fixed sequence of draws. Each call returns the
// next value unchanged, wrapping around when the sequence is exhausted, so
// recorded rolls can be replayed exactly.
type SequenceSource struct {
	values []int
	pos    int
}

// NewSequenceSource returns a source that replays values in order.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: append([]int(nil), values...)}
}

func (s *SequenceSource) next() int {
	if len(s.values) == 0 {
		panic("dice: empty sequence source")
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

func (s *SequenceSource) Next() int { return s.next() }

func (s *SequenceSource) NextN(int) int { return s.next() }

func (s *SequenceSource) Range(int, int) int { return s.next() }

// Drawn returns how many values have been consumed.
func (s *SequenceSource) Drawn() int {
	return s.pos
}

func (s *SequenceSource) String() string {
	return fmt.Sprintf("sequence%v", s.values)
}
