package dialogue

import "fmt"

// Phase is one named stage of a multi-step reflective script.
type Phase string

const (
	PhaseFeel       Phase = "feel"
	PhaseUnderstand Phase = "understand"
	PhaseRelieve    Phase = "relieve"

	PhaseIdentify Phase = "identify"
	PhaseAct      Phase = "act"

	PhaseChat Phase = "chat"

	// PhaseCrisis sits outside every ordered progression. It is sticky:
	// once entered, only an explicit session clear leaves it.
	PhaseCrisis Phase = "crisis"
)

// Style selects which ordered phase script a session runs.
type Style string

const (
	StyleJournal   Style = "journal"
	StyleCoach     Style = "coach"
	StyleCompanion Style = "companion"
)

var stylePhases = map[Style][]Phase{
	StyleJournal:   {PhaseFeel, PhaseUnderstand, PhaseRelieve},
	StyleCoach:     {PhaseIdentify, PhaseAct, PhaseRelieve},
	StyleCompanion: {PhaseChat},
}

// ParseStyle validates a style name, defaulting blank to companion.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleJournal, StyleCoach, StyleCompanion:
		return Style(s), nil
	case "":
		return StyleCompanion, nil
	default:
		return "", fmt.Errorf("unknown dialogue style %q", s)
	}
}

// PhasesFor returns the ordered phase list for a style.
func PhasesFor(style Style) []Phase {
	phases := stylePhases[style]
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// Machine tracks progression through a style's ordered phases. It is a
// small value type: methods return the successor state instead of
// mutating shared memory, which keeps the machine independently
// testable and lets the session layer own all mutation.
type Machine struct {
	Style  Style `json:"style"`
	Index  int   `json:"index"`
	Crisis bool  `json:"crisis"`
}

func NewMachine(style Style) Machine {
	return Machine{Style: style}
}

// Current returns the active phase.
func (m Machine) Current() Phase {
	if m.Crisis {
		return PhaseCrisis
	}
	phases := stylePhases[m.Style]
	if len(phases) == 0 {
		return PhaseChat
	}
	if m.Index >= len(phases) {
		return phases[len(phases)-1]
	}
	return phases[m.Index]
}

// Advance moves to the next phase. At the last phase it is a no-op
// plateau, and in crisis it never moves.
func (m Machine) Advance() Machine {
	if m.Crisis {
		return m
	}
	phases := stylePhases[m.Style]
	if m.Index < len(phases)-1 {
		m.Index++
	}
	return m
}

// EnterCrisis latches the crisis marker from any state.
func (m Machine) EnterCrisis() Machine {
	m.Crisis = true
	return m
}

// Reset returns to the first phase and clears the crisis latch. Used
// only on explicit session clear.
func (m Machine) Reset() Machine {
	m.Index = 0
	m.Crisis = false
	return m
}

// AtLastPhase reports whether the ordered progression has plateaued.
func (m Machine) AtLastPhase() bool {
	if m.Crisis {
		return false
	}
	phases := stylePhases[m.Style]
	return len(phases) == 0 || m.Index >= len(phases)-1
}
