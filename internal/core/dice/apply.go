package dice

import (
	"fmt"
	"slices"
)

// applyModifiers runs mods phase by phase, in notation order within a
// phase. Events are addressed by index and only mutated here.
func (e *Evaluator) applyModifiers(events []DieEvent, mods []Modifier) ([]DieEvent, error) {
	var err error
	for _, phase := range []Phase{PhaseGeneration, PhaseSelection, PhaseFinalization} {
		var tally *successTally
		for _, m := range mods {
			if m.Phase() != phase {
				continue
			}
			switch m := m.(type) {
			case RerollOnce:
				events, err = e.rerollOnce(events, m)
			case RerollMultiple:
				events, err = e.rerollMultiple(events, m)
			case Explode:
				events, err = e.explode(events, m)
			case Compound:
				events, err = e.compound(events, m)
			case Keep:
				err = keep(events, m)
			case Drop:
				err = drop(events, m)
			case Success:
				if tally == nil {
					tally = &successTally{}
				}
				err = tally.count(events, m.Op, m.Value, SuccessMatched)
			case Failure:
				if tally == nil {
					tally = &successTally{}
				}
				err = tally.count(events, m.Op, m.Value, FailureMatched)
			case ConstantModifier:
				events = append(events, DieEvent{
					Value: m.Op.apply(0, m.Value),
					Die:   ConstantDie{},
				})
			default:
				err = unsupported(fmt.Sprintf("modifier %T", m))
			}
			if err != nil {
				return nil, err
			}
		}
		if tally != nil {
			events = tally.collapse(events)
		}
	}
	return events, nil
}

// matching returns the indices of eligible events whose value satisfies
// the comparison point, in generation order.
func matching(events []DieEvent, eligible func(DieEvent) bool, op ComparisonOperator, value int) ([]int, error) {
	var idx []int
	for i, ev := range events {
		if !eligible(ev) {
			continue
		}
		ok, err := op.Holds(ev.Value, value)
		if err != nil {
			return nil, err
		}
		if ok {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func generating(ev DieEvent) bool {
	return ev.isDice() && ev.Status != StatusDiscarded
}

func selecting(ev DieEvent) bool {
	return ev.isDice() && ev.Status == StatusKept
}

func (e *Evaluator) rerollOnce(events []DieEvent, m RerollOnce) ([]DieEvent, error) {
	idx, err := matching(events, generating, m.Op, m.Value)
	if err != nil {
		return nil, err
	}
	for _, i := range idx {
		events[i].Status = StatusDiscarded
		die := events[i].Die
		ev, err := e.roll(die, Reroll{Of: die}, EventReroll)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (e *Evaluator) rerollMultiple(events []DieEvent, m RerollMultiple) ([]DieEvent, error) {
	idx, err := matching(events, generating, m.Op, m.Value)
	if err != nil {
		return nil, err
	}
	for _, i := range idx {
		events[i].Status = StatusDiscarded
		die := events[i].Die
		for attempt := 1; attempt <= MaxRerolls; attempt++ {
			ev, err := e.roll(die, Reroll{Of: die}, EventReroll)
			if err != nil {
				return nil, err
			}
			again, err := m.Op.Holds(ev.Value, m.Value)
			if err != nil {
				return nil, err
			}
			// The last draw stands even if it still matches.
			if again && attempt < MaxRerolls {
				ev.Status = StatusDiscarded
			}
			events = append(events, ev)
			if !again {
				break
			}
		}
	}
	return events, nil
}

func (e *Evaluator) explode(events []DieEvent, m Explode) ([]DieEvent, error) {
	idx, err := matching(events, generating, m.Op, m.Value)
	if err != nil {
		return nil, err
	}
	for _, i := range idx {
		die := events[i].Die
		for n := 0; n < e.maxExplosions; n++ {
			ev, err := e.roll(die, die, EventExplosion)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
			again, err := m.Op.Holds(ev.Value, m.Value)
			if err != nil {
				return nil, err
			}
			if !again {
				break
			}
		}
	}
	return events, nil
}

// compound folds each matching die and its chain of extra draws into one
// Compound event. The chain draws stay in the trace as Discarded.
func (e *Evaluator) compound(events []DieEvent, m Compound) ([]DieEvent, error) {
	idx, err := matching(events, generating, m.Op, m.Value)
	if err != nil {
		return nil, err
	}
	for _, i := range idx {
		die := events[i].Die
		total := events[i].Value
		for n := 0; n < e.maxCompounds; n++ {
			link, err := e.roll(die, die, EventCompound)
			if err != nil {
				return nil, err
			}
			link.Status = StatusDiscarded
			events = append(events, link)
			total += link.Value
			again, err := m.Op.Holds(link.Value, m.Value)
			if err != nil {
				return nil, err
			}
			if !again {
				break
			}
		}
		events[i].Status = StatusDiscarded
		events = append(events, DieEvent{
			Value:        total,
			Type:         EventCompound,
			Die:          die,
			Significance: significanceOf(die, total),
		})
	}
	return events, nil
}

// ranked returns the indices of kept dice ordered by value, highest first
// when highest is set. Equal values keep their generation order.
func ranked(events []DieEvent, highest bool) []int {
	var idx []int
	for i, ev := range events {
		if selecting(ev) {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if highest {
			return events[b].Value - events[a].Value
		}
		return events[a].Value - events[b].Value
	})
	return idx
}

func keep(events []DieEvent, m Keep) error {
	if m.Count <= 0 {
		return unsupported(fmt.Sprintf("keep count %d", m.Count))
	}
	idx := ranked(events, m.Highest)
	if len(idx) <= m.Count {
		return nil
	}
	for _, i := range idx[m.Count:] {
		events[i].Status = StatusDropped
	}
	return nil
}

func drop(events []DieEvent, m Drop) error {
	if m.Count <= 0 {
		return unsupported(fmt.Sprintf("drop count %d", m.Count))
	}
	idx := ranked(events, m.Highest)
	for _, i := range idx[:min(m.Count, len(idx))] {
		events[i].Status = StatusDropped
	}
	return nil
}

// successTally accumulates success and failure counts within the
// finalization phase.
type successTally struct {
	successes int
	failures  int
}

func (t *successTally) count(events []DieEvent, op ComparisonOperator, value int, mark SuccessStatus) error {
	idx, err := matching(events, selecting, op, value)
	if err != nil {
		return err
	}
	for _, i := range idx {
		events[i].Success = mark
	}
	if mark == FailureMatched {
		t.failures += len(idx)
	} else {
		t.successes += len(idx)
	}
	return nil
}

// collapse replaces every die with one summary event holding the net
// count. Constant summaries are kept.
func (t *successTally) collapse(events []DieEvent) []DieEvent {
	out := []DieEvent{{Value: t.successes - t.failures, Die: SuccessDie{}}}
	for _, ev := range events {
		if _, ok := ev.Die.(ConstantDie); ok {
			out = append(out, ev)
		}
	}
	return out
}
