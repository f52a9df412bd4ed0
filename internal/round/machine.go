package round

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is where the current minute's round sits in the reveal protocol.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerated
	PhaseRevealed
	PhaseRecorded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerated:
		return "generated"
	case PhaseRevealed:
		return "revealed"
	case PhaseRecorded:
		return "recorded"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Action is a side effect the scheduler must perform after a transition.
type Action int

const (
	ActionGenerate Action = iota + 1
	ActionReveal
	ActionRecord
)

func (a Action) String() string {
	switch a {
	case ActionGenerate:
		return "generate"
	case ActionReveal:
		return "reveal"
	case ActionRecord:
		return "record"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Policy places the three steps at second offsets within each minute.
type Policy struct {
	Name       string
	GenerateAt int
	RevealAt   int
	RecordAt   int
}

var (
	// ThreePhase hides the digit until second 45 and records it at 59.
	ThreePhase = Policy{Name: "three-phase", GenerateAt: 0, RevealAt: 45, RecordAt: 59}
	// TwoPhase records on the reveal tick.
	TwoPhase = Policy{Name: "two-phase", GenerateAt: 0, RevealAt: 45, RecordAt: 45}
	// Instant shows and records the digit as soon as the minute starts.
	Instant = Policy{Name: "instant", GenerateAt: 0, RevealAt: 0, RecordAt: 0}
)

// ErrUnknownPolicy is returned by ParsePolicy.
var ErrUnknownPolicy = errors.New("unknown reveal policy")

// ParsePolicy resolves a policy by name; empty selects ThreePhase.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ThreePhase.Name:
		return ThreePhase, nil
	case TwoPhase.Name:
		return TwoPhase, nil
	case Instant.Name:
		return Instant, nil
	}
	return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Next is the transition function. Given the phase before this tick and the
// second of minute, it returns the new phase and the actions to run in order.
// Reveal requires a round generated this cycle and record requires one
// revealed this cycle, so a missed generate tick skips the whole minute.
func Next(phase Phase, sec int, p Policy) (Phase, []Action) {
	var actions []Action
	if sec == p.GenerateAt {
		phase = PhaseGenerated
		actions = append(actions, ActionGenerate)
	}
	if sec == p.RevealAt && phase == PhaseGenerated {
		phase = PhaseRevealed
		actions = append(actions, ActionReveal)
	}
	if sec == p.RecordAt && phase == PhaseRevealed {
		phase = PhaseRecorded
		actions = append(actions, ActionRecord)
	}
	return phase, actions
}
