package dice

import (
	"math"
	"testing"

	apperrors "github.com/louisbranch/dicelang/internal/platform/errors"
)

func d(sides int) DieType { return Basic{Sides: sides} }

func basic(count int, die DieType, mods ...Modifier) BasicRoll {
	return BasicRoll{Count: count, Die: die, Modifiers: mods}
}

func newTestEvaluator(t *testing.T, draws ...int) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(NewSequenceSource(draws...))
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	return e
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name  string
		roll  Roll
		draws []int
		want  int
	}{
		{"2d6", basic(2, d(6)), []int{3, 5}, 8},
		{"4d6dl1", basic(4, d(6), Drop{Count: 1}), []int{6, 5, 4, 2}, 15},
		{"2d20kh1", basic(2, d(20), Keep{Count: 1, Highest: true}), []int{8, 15}, 15},
		{"1d6!=6", basic(1, d(6), Explode{Op: Equal, Value: 6}), []int{6, 3}, 9},
		{"1d6^=6", basic(1, d(6), Compound{Op: Equal, Value: 6}), []int{6, 6, 2}, 14},
		{"5d6>4", basic(5, d(6), Success{Op: GreaterThan, Value: 4}), []int{5, 3, 6, 2, 1}, 2},
		{"2d6!=6", basic(2, d(6), Explode{Op: Equal, Value: 6}), []int{6, 6, 3, 4}, 19},
		{"2d6^=6", basic(2, d(6), Compound{Op: Equal, Value: 6}), []int{6, 6, 3, 4}, 19},
		{"4d6!=6kh3", basic(4, d(6), Explode{Op: Equal, Value: 6}, Keep{Count: 3, Highest: true}), []int{6, 6, 2, 4, 5, 1, 3}, 17},
		{"4d6ro=1dl1", basic(4, d(6), RerollOnce{Op: Equal, Value: 1}, Drop{Count: 1}), []int{1, 4, 6, 3, 5}, 15},
		{"4d10!=10>6", basic(4, d(10), Explode{Op: Equal, Value: 10}, Success{Op: GreaterThan, Value: 6}), []int{7, 10, 8, 3, 5}, 3},
		{"2d6f<3", basic(2, d(6), Failure{Op: LessThan, Value: 3}), []int{1, 5}, -1},
		{"4dF", basic(4, Fudge{}), []int{-1, 0, 1, 1}, 1},
		{"1d%", basic(1, Percent{}), []int{42}, 42},
		{"1d6+3", basic(1, d(6), ConstantModifier{Op: Add, Value: 3}), []int{4}, 7},
		{"1d6-3", basic(1, d(6), ConstantModifier{Op: Subtract, Value: 3}), []int{4}, 1},
		{"constant", Constant{Value: 7}, []int{1}, 7},
		{
			"1d6+1d6-1d4+3",
			ArithmeticRoll{Terms: []Term{
				{Operator: Add, Roll: basic(1, d(6))},
				{Operator: Add, Roll: basic(1, d(6))},
				{Operator: Subtract, Roll: basic(1, d(4))},
				{Operator: Add, Roll: Constant{Value: 3}},
			}},
			[]int{6, 4, 2},
			11,
		},
		{
			"3d20-4d4",
			ArithmeticRoll{Terms: []Term{
				{Operator: Add, Roll: basic(3, d(20))},
				{Operator: Subtract, Roll: basic(4, d(4))},
			}},
			[]int{4, 2, 6, 1, 3, 2, 1},
			5,
		},
		{
			"1d20+5-2+1",
			ArithmeticRoll{Terms: []Term{
				{Operator: Add, Roll: basic(1, d(20))},
				{Operator: Add, Roll: Constant{Value: 5}},
				{Operator: Subtract, Roll: Constant{Value: 2}},
				{Operator: Add, Roll: Constant{Value: 1}},
			}},
			[]int{10},
			14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestEvaluator(t, tt.draws...).Evaluate(tt.roll)
			if err != nil {
				t.Fatalf("Evaluate(%s) error = %v", tt.roll, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%s) = %d, want %d", tt.roll, got, tt.want)
			}

			res, err := newTestEvaluator(t, tt.draws...).EvaluateDetailed(tt.roll)
			if err != nil {
				t.Fatalf("EvaluateDetailed(%s) error = %v", tt.roll, err)
			}
			if res.Value != got {
				t.Errorf("EvaluateDetailed(%s).Value = %d, want %d", tt.roll, res.Value, got)
			}
			if total := res.KeptTotal(); total != res.Value {
				t.Errorf("KeptTotal() = %d, want %d", total, res.Value)
			}
		})
	}
}

func TestSourceRanges(t *testing.T) {
	tests := []struct {
		name           string
		die            DieType
		wantLo, wantHi int
	}{
		{"basic", d(8), 1, 9},
		{"percent", Percent{}, 1, 101},
		{"fudge", Fudge{}, -1, 2},
		{"largest basic", d(MaxSides), 1, MaxSides + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &recordingSource{}
			e, err := NewEvaluator(src)
			if err != nil {
				t.Fatalf("NewEvaluator() error = %v", err)
			}
			if _, err := e.Evaluate(basic(1, tt.die)); err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if len(src.calls) != 1 {
				t.Fatalf("source calls = %d, want 1", len(src.calls))
			}
			if got := src.calls[0]; got != [2]int{tt.wantLo, tt.wantHi} {
				t.Errorf("Range call = %v, want [%d %d]", got, tt.wantLo, tt.wantHi)
			}
		})
	}
}

type recordingSource struct {
	calls [][2]int
}

func (s *recordingSource) Next() int     { return 0 }
func (s *recordingSource) NextN(int) int { return 0 }
func (s *recordingSource) Range(lo, hi int) int {
	s.calls = append(s.calls, [2]int{lo, hi})
	return lo
}

func TestKeepDropComplementarity(t *testing.T) {
	draws := []int{3, 6, 3, 1, 5}
	res, err := newTestEvaluator(t, draws...).EvaluateDetailed(basic(5, d(6), Keep{Count: 3, Highest: true}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	want := []Status{StatusKept, StatusKept, StatusDropped, StatusDropped, StatusKept}
	for i, ev := range res.Events {
		if ev.Status != want[i] {
			t.Errorf("event %d status = %s, want %s", i, ev.Status, want[i])
		}
	}
	if res.Value != 14 {
		t.Errorf("Value = %d, want 14", res.Value)
	}

	res, err = newTestEvaluator(t, draws...).EvaluateDetailed(basic(5, d(6), Keep{Count: 2}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	kept := res.Kept()
	if len(kept) != 2 {
		t.Fatalf("kept = %d, want 2", len(kept))
	}
	if kept[0].Value != 3 || kept[1].Value != 1 {
		t.Errorf("kept values = %d, %d, want 3, 1", kept[0].Value, kept[1].Value)
	}
	if res.Events[2].Status != StatusDropped {
		t.Errorf("second tied 3 status = %s, want dropped", res.Events[2].Status)
	}
}

func TestKeepMoreThanRolledIsNoop(t *testing.T) {
	res, err := newTestEvaluator(t, 2, 4).EvaluateDetailed(basic(2, d(6), Keep{Count: 3, Highest: true}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	for i, ev := range res.Events {
		if ev.Status != StatusKept {
			t.Errorf("event %d status = %s, want kept", i, ev.Status)
		}
	}
}

func TestDropHighest(t *testing.T) {
	res, err := newTestEvaluator(t, 6, 2, 6, 4).EvaluateDetailed(basic(4, d(6), Drop{Count: 1, Highest: true}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 12 {
		t.Errorf("Value = %d, want 12", res.Value)
	}
	if res.Events[0].Status != StatusDropped || res.Events[2].Status != StatusKept {
		t.Errorf("statuses = %s, %s, want dropped, kept", res.Events[0].Status, res.Events[2].Status)
	}
}

func TestExplosionTermination(t *testing.T) {
	for _, limit := range []int{1, 5, DefaultMaxExplosions} {
		e, err := NewEvaluator(NewSequenceSource(6), WithMaxExplosions(limit))
		if err != nil {
			t.Fatalf("NewEvaluator() error = %v", err)
		}
		res, err := e.EvaluateDetailed(basic(1, d(6), Explode{Op: Equal, Value: 6}))
		if err != nil {
			t.Fatalf("EvaluateDetailed() error = %v", err)
		}
		explosions := 0
		for _, ev := range res.Events {
			if ev.Type == EventExplosion {
				explosions++
			}
		}
		if explosions != limit {
			t.Errorf("explosions = %d, want %d", explosions, limit)
		}
		if want := 6 * (limit + 1); res.Value != want {
			t.Errorf("Value = %d, want %d", res.Value, want)
		}
	}
}

func TestCompoundTermination(t *testing.T) {
	e, err := NewEvaluator(NewSequenceSource(6), WithMaxCompounds(3))
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	res, err := e.EvaluateDetailed(basic(1, d(6), Compound{Op: Equal, Value: 6}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if len(res.Events) != 5 {
		t.Fatalf("events = %d, want 5", len(res.Events))
	}
	if res.Events[0].Status != StatusDiscarded {
		t.Errorf("origin status = %s, want discarded", res.Events[0].Status)
	}
	for i, ev := range res.Events[1:4] {
		if ev.Type != EventCompound || ev.Status != StatusDiscarded || ev.Value != 6 {
			t.Errorf("chain draw %d = %s %d %s, want compound 6 discarded", i+1, ev.Type, ev.Value, ev.Status)
		}
	}
	got := res.Events[4]
	if got.Type != EventCompound || got.Value != 24 || got.Status != StatusKept {
		t.Errorf("compound event = %s %d %s, want compound 24 kept", got.Type, got.Value, got.Status)
	}
	if got.Significance != SignificanceNone {
		t.Errorf("compound significance = %s, want none", got.Significance)
	}
	if res.Value != 24 || res.KeptTotal() != 24 {
		t.Errorf("Value = %d, KeptTotal() = %d, want 24", res.Value, res.KeptTotal())
	}
}

func TestCompoundRecordsChainDraws(t *testing.T) {
	res, err := newTestEvaluator(t, 6, 6, 2).EvaluateDetailed(basic(1, d(6), Compound{Op: Equal, Value: 6}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	want := []struct {
		typ    EventType
		value  int
		status Status
	}{
		{EventInitial, 6, StatusDiscarded},
		{EventCompound, 6, StatusDiscarded},
		{EventCompound, 2, StatusDiscarded},
		{EventCompound, 14, StatusKept},
	}
	if len(res.Events) != len(want) {
		t.Fatalf("events = %d, want %d", len(res.Events), len(want))
	}
	for i, w := range want {
		ev := res.Events[i]
		if ev.Type != w.typ || ev.Value != w.value || ev.Status != w.status {
			t.Errorf("event %d = %s %d %s, want %s %d %s", i, ev.Type, ev.Value, ev.Status, w.typ, w.value, w.status)
		}
	}
	if res.Value != 14 {
		t.Errorf("Value = %d, want 14", res.Value)
	}
}

func TestCompoundEventCount(t *testing.T) {
	// 3d12dl1^=12: one die compounds, the lowest of the rest is dropped.
	roll := basic(3, d(12), Drop{Count: 1}, Compound{Op: Equal, Value: 12})
	res, err := newTestEvaluator(t, 12, 5, 8, 3).EvaluateDetailed(roll)
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if len(res.Events) != 5 {
		t.Fatalf("events = %d, want 5", len(res.Events))
	}
	if res.Value != 23 {
		t.Errorf("Value = %d, want 23", res.Value)
	}
	if res.Events[1].Status != StatusDropped {
		t.Errorf("lowest die status = %s, want dropped", res.Events[1].Status)
	}
	if chain := res.Events[3]; chain.Type != EventCompound || chain.Value != 3 || chain.Status != StatusDiscarded {
		t.Errorf("chain draw = %s %d %s, want compound 3 discarded", chain.Type, chain.Value, chain.Status)
	}
	if sum := res.Events[4]; sum.Value != 15 || sum.Status != StatusKept {
		t.Errorf("compound event = %d %s, want 15 kept", sum.Value, sum.Status)
	}
}

func TestRerollOnceDoesNotCascade(t *testing.T) {
	res, err := newTestEvaluator(t, 1, 1, 4).EvaluateDetailed(basic(1, d(6), RerollOnce{Op: Equal, Value: 1}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 1 {
		t.Errorf("Value = %d, want 1", res.Value)
	}
	if len(res.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(res.Events))
	}
	if res.Events[0].Status != StatusDiscarded || res.Events[1].Type != EventReroll {
		t.Errorf("events = %+v", res.Events)
	}
	if _, ok := res.Events[1].Die.(Basic); !ok {
		t.Errorf("reroll die = %s, want basic", res.Events[1].Die)
	}
}

func TestRerollMultiple(t *testing.T) {
	res, err := newTestEvaluator(t, 1, 1, 2, 5).EvaluateDetailed(basic(1, d(6), RerollMultiple{Op: LessThan, Value: 3}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 5 {
		t.Errorf("Value = %d, want 5", res.Value)
	}
	want := []Status{StatusDiscarded, StatusDiscarded, StatusDiscarded, StatusKept}
	if len(res.Events) != len(want) {
		t.Fatalf("events = %d, want %d", len(res.Events), len(want))
	}
	for i, ev := range res.Events {
		if ev.Status != want[i] {
			t.Errorf("event %d status = %s, want %s", i, ev.Status, want[i])
		}
	}
}

func TestRerollMultipleCeiling(t *testing.T) {
	res, err := newTestEvaluator(t, 1).EvaluateDetailed(basic(1, d(6), RerollMultiple{Op: Equal, Value: 1}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if len(res.Events) != MaxRerolls+1 {
		t.Fatalf("events = %d, want %d", len(res.Events), MaxRerolls+1)
	}
	last := res.Events[len(res.Events)-1]
	if last.Status != StatusKept || res.Value != 1 {
		t.Errorf("last event = %s %d, want kept 1", last.Status, last.Value)
	}
}

func TestPhaseOrderIgnoresNotationOrder(t *testing.T) {
	// Keep is written before explode but explosions still happen first.
	roll := basic(2, d(6), Keep{Count: 1, Highest: true}, Explode{Op: Equal, Value: 6})
	res, err := newTestEvaluator(t, 6, 2, 4).EvaluateDetailed(roll)
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 6 {
		t.Errorf("Value = %d, want 6", res.Value)
	}
	if len(res.Events) != 3 {
		t.Errorf("events = %d, want 3", len(res.Events))
	}
}

func TestSuccessFailureAdditivity(t *testing.T) {
	roll := basic(5, d(10),
		Success{Op: GreaterThan, Value: 7},
		Failure{Op: Equal, Value: 1},
		ConstantModifier{Op: Add, Value: 1},
	)
	res, err := newTestEvaluator(t, 8, 1, 10, 1, 5).EvaluateDetailed(roll)
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 1 {
		t.Errorf("Value = %d, want 1", res.Value)
	}
	if len(res.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(res.Events))
	}
	if _, ok := res.Events[0].Die.(SuccessDie); !ok || res.Events[0].Value != 0 {
		t.Errorf("summary = %s %d, want success 0", res.Events[0].Die, res.Events[0].Value)
	}
	if _, ok := res.Events[1].Die.(ConstantDie); !ok {
		t.Errorf("second event die = %s, want constant", res.Events[1].Die)
	}
}

func TestSuccessCountsOnlyKeptDice(t *testing.T) {
	roll := basic(4, d(6), Keep{Count: 2}, Success{Op: GreaterThan, Value: 2})
	got, err := newTestEvaluator(t, 6, 5, 1, 3).Evaluate(roll)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Evaluate() = %d, want 1", got)
	}
}

func TestSignificance(t *testing.T) {
	res, err := newTestEvaluator(t, 1, 6, 3).EvaluateDetailed(basic(3, d(6)))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	want := []Significance{SignificanceMinimum, SignificanceMaximum, SignificanceNone}
	for i, ev := range res.Events {
		if ev.Significance != want[i] {
			t.Errorf("event %d significance = %s, want %s", i, ev.Significance, want[i])
		}
	}

	res, err = newTestEvaluator(t, -1, 1).EvaluateDetailed(basic(2, Fudge{}))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Events[0].Significance != SignificanceMinimum || res.Events[1].Significance != SignificanceMaximum {
		t.Errorf("fudge significance = %s, %s", res.Events[0].Significance, res.Events[1].Significance)
	}
}

func TestArithmeticGroups(t *testing.T) {
	roll := ArithmeticRoll{Terms: []Term{
		{Operator: Add, Roll: basic(2, d(6))},
		{Operator: Subtract, Roll: basic(1, d(4))},
		{Operator: Add, Roll: Constant{Value: 2}},
	}}
	res, err := newTestEvaluator(t, 3, 4, 2).EvaluateDetailed(roll)
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 7 {
		t.Errorf("Value = %d, want 7", res.Value)
	}
	wantGroups := []int{0, 0, 1, 2}
	wantOps := []ArithmeticOperator{Add, Add, Subtract, Add}
	if len(res.Events) != len(wantGroups) {
		t.Fatalf("events = %d, want %d", len(res.Events), len(wantGroups))
	}
	for i, ev := range res.Events {
		if ev.Group == nil || *ev.Group != wantGroups[i] {
			t.Errorf("event %d group = %v, want %d", i, ev.Group, wantGroups[i])
		}
		if ev.GroupOperator == nil || *ev.GroupOperator != wantOps[i] {
			t.Errorf("event %d operator = %v, want %s", i, ev.GroupOperator, wantOps[i])
		}
	}
	if got := res.Events[2].Contribution(); got != -2 {
		t.Errorf("Contribution() = %d, want -2", got)
	}
	if res.Events[2].Value != 2 {
		t.Errorf("raw value = %d, want 2", res.Events[2].Value)
	}
}

func TestBasicRollHasNoGroup(t *testing.T) {
	res, err := newTestEvaluator(t, 4).EvaluateDetailed(basic(1, d(6)))
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Events[0].Group != nil || res.Events[0].GroupOperator != nil {
		t.Errorf("event group = %v, want none", res.Events[0].Group)
	}
}

func TestNestedArithmeticSign(t *testing.T) {
	inner := ArithmeticRoll{Terms: []Term{
		{Operator: Add, Roll: Constant{Value: 5}},
		{Operator: Subtract, Roll: Constant{Value: 2}},
	}}
	roll := ArithmeticRoll{Terms: []Term{
		{Operator: Add, Roll: Constant{Value: 10}},
		{Operator: Subtract, Roll: inner},
	}}
	res, err := newTestEvaluator(t, 1).EvaluateDetailed(roll)
	if err != nil {
		t.Fatalf("EvaluateDetailed() error = %v", err)
	}
	if res.Value != 7 {
		t.Errorf("Value = %d, want 7", res.Value)
	}
	if total := res.KeptTotal(); total != 7 {
		t.Errorf("KeptTotal() = %d, want 7", total)
	}
}

func TestDeterminism(t *testing.T) {
	rolls := []Roll{
		basic(6, d(6), RerollOnce{Op: LessThan, Value: 3}, Explode{Op: Equal, Value: 6}, Drop{Count: 2}),
		basic(8, d(10), Compound{Op: GreaterThan, Value: 8}, Keep{Count: 4, Highest: true}, Success{Op: GreaterThan, Value: 5}),
		ArithmeticRoll{Terms: []Term{
			{Operator: Add, Roll: basic(3, Fudge{})},
			{Operator: Subtract, Roll: basic(2, Percent{}, RerollMultiple{Op: GreaterThan, Value: 90})},
		}},
	}
	draws := []int{6, 2, 1, 5, 6, 3, 4, 9, 10, 1, 95, 40}
	for _, roll := range rolls {
		got, err := newTestEvaluator(t, draws...).Evaluate(roll)
		if err != nil {
			t.Fatalf("Evaluate(%s) error = %v", roll, err)
		}
		res, err := newTestEvaluator(t, draws...).EvaluateDetailed(roll)
		if err != nil {
			t.Fatalf("EvaluateDetailed(%s) error = %v", roll, err)
		}
		if res.Value != got {
			t.Errorf("%s: EvaluateDetailed().Value = %d, Evaluate() = %d", roll, res.Value, got)
		}
		if total := res.KeptTotal(); total != got {
			t.Errorf("%s: KeptTotal() = %d, want %d", roll, total, got)
		}
	}
}

type customModifier struct{ Keep }

type customRoll struct{ Constant }

func TestEvaluateUnsupported(t *testing.T) {
	tests := []struct {
		name string
		roll Roll
		code apperrors.Code
	}{
		{"zero count", basic(0, d(6)), apperrors.CodeEvaluationUnsupported},
		{"zero sides", basic(1, d(0)), apperrors.CodeEvaluationUnsupported},
		{"too many dice", basic(MaxDice+1, d(6)), apperrors.CodeEvaluationUnsupported},
		{"max int count", basic(math.MaxInt, d(6)), apperrors.CodeEvaluationUnsupported},
		{"too many sides", basic(1, d(MaxSides+1)), apperrors.CodeEvaluationUnsupported},
		{"max int sides", basic(1, d(math.MaxInt)), apperrors.CodeEvaluationUnsupported},
		{"internal die", basic(1, SuccessDie{}), apperrors.CodeEvaluationUnsupported},
		{"nil die", basic(1, nil), apperrors.CodeEvaluationUnsupported},
		{"nil roll", nil, apperrors.CodeEvaluationUnsupported},
		{"empty arithmetic", ArithmeticRoll{}, apperrors.CodeEvaluationUnsupported},
		{"unknown roll", customRoll{}, apperrors.CodeEvaluationUnsupported},
		{"unknown modifier", basic(1, d(6), customModifier{Keep{Count: 1}}), apperrors.CodeEvaluationUnsupported},
		{"zero keep", basic(2, d(6), Keep{Count: 0}), apperrors.CodeEvaluationUnsupported},
		{"bad comparison", basic(1, d(6), Explode{Op: ComparisonOperator(9), Value: 6}), apperrors.CodeComparisonInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEvaluator(t, 3, 4).Evaluate(tt.roll)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestEvaluatorConfiguration(t *testing.T) {
	if _, err := NewEvaluator(nil); err == nil {
		t.Fatal("expected error for nil source")
	}

	for _, n := range []int{0, -1} {
		_, err := NewEvaluator(NewSequenceSource(1), WithMaxExplosions(n))
		if !apperrors.IsCode(err, apperrors.CodeConfigOutOfRange) {
			t.Errorf("WithMaxExplosions(%d) error = %v, want %s", n, err, apperrors.CodeConfigOutOfRange)
		}
		_, err = NewEvaluator(NewSequenceSource(1), WithMaxCompounds(n))
		if !apperrors.IsCode(err, apperrors.CodeConfigOutOfRange) {
			t.Errorf("WithMaxCompounds(%d) error = %v, want %s", n, err, apperrors.CodeConfigOutOfRange)
		}
	}

	e := newTestEvaluator(t, 1)
	if err := e.SetMaxExplosions(0); err == nil {
		t.Error("SetMaxExplosions(0) expected error")
	}
	if got := e.MaxExplosions(); got != DefaultMaxExplosions {
		t.Errorf("MaxExplosions() = %d, want %d", got, DefaultMaxExplosions)
	}
	if err := e.SetMaxCompounds(7); err != nil {
		t.Fatalf("SetMaxCompounds(7) error = %v", err)
	}
	if got := e.MaxCompounds(); got != 7 {
		t.Errorf("MaxCompounds() = %d, want 7", got)
	}
	meta := apperrors.GetMetadata(e.SetMaxCompounds(-3))
	if meta["Setting"] != "MaxCompounds" || meta["Value"] != "-3" {
		t.Errorf("metadata = %v", meta)
	}
}
