package dice

// EventType records how a die event came to exist.
type EventType int

const (
	EventInitial EventType = iota
	EventReroll
	EventExplosion
	EventCompound
)

func (t EventType) String() string {
	switch t {
	case EventInitial:
		return "initial"
	case EventReroll:
		return "reroll"
	case EventExplosion:
		return "explosion"
	case EventCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// Significance marks a die that landed on its lowest or highest face.
type Significance int

const (
	SignificanceNone Significance = iota
	SignificanceMinimum
	SignificanceMaximum
)

func (s Significance) String() string {
	switch s {
	case SignificanceMinimum:
		return "minimum"
	case SignificanceMaximum:
		return "maximum"
	default:
		return "none"
	}
}

// Status is the disposition of a die event. Only kept events count toward
// the total.
type Status int

const (
	StatusKept Status = iota
	StatusDropped
	StatusDiscarded
)

func (s Status) String() string {
	switch s {
	case StatusKept:
		return "kept"
	case StatusDropped:
		return "dropped"
	case StatusDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// SuccessStatus records whether a success or failure comparison matched.
type SuccessStatus int

const (
	SuccessNeutral SuccessStatus = iota
	SuccessMatched
	FailureMatched
)

func (s SuccessStatus) String() string {
	switch s {
	case SuccessMatched:
		return "success"
	case FailureMatched:
		return "failure"
	default:
		return "neutral"
	}
}

// DieEvent is one atomic contribution to a roll.
//
// Group and GroupOperator are set for events produced by a term of an
// ArithmeticRoll and identify the term index and its sign.
type DieEvent struct {
	Value         int
	Type          EventType
	Die           DieType
	Significance  Significance
	Status        Status
	Success       SuccessStatus
	Group         *int
	GroupOperator *ArithmeticOperator
}

// Counted reports whether the event contributes to the total.
func (e DieEvent) Counted() bool {
	return e.Status == StatusKept
}

// Contribution returns the signed amount this event adds to the total.
func (e DieEvent) Contribution() int {
	if !e.Counted() {
		return 0
	}
	if e.GroupOperator != nil && *e.GroupOperator == Subtract {
		return -e.Value
	}
	return e.Value
}

// isDice reports whether the event is a real die that modifiers may act on.
func (e DieEvent) isDice() bool {
	if isSummary(e.Die) {
		return false
	}
	switch e.Type {
	case EventInitial, EventReroll, EventExplosion, EventCompound:
		return true
	default:
		return false
	}
}

// Result is the outcome of a detailed evaluation. Events are in the order
// they were generated.
type Result struct {
	Value  int
	Events []DieEvent
}

// KeptTotal sums the contributions of every event. It equals Value.
func (r Result) KeptTotal() int {
	total := 0
	for _, e := range r.Events {
		total += e.Contribution()
	}
	return total
}

// Kept returns the events that count toward the total.
func (r Result) Kept() []DieEvent {
	var out []DieEvent
	for _, e := range r.Events {
		if e.Counted() {
			out = append(out, e)
		}
	}
	return out
}
