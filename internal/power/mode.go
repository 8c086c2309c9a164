// Package power implements the global timed state that flips every ghost
// between pursuing and fleeing.
package power

type State int

const (
	Normal State = iota
	Empowered
)

func (s State) String() string {
	if s == Empowered {
		return "empowered"
	}
	return "normal"
}

// Mode counts down the empowered window in ticks. The zero value is
// Normal.
type Mode struct {
	active    bool
	remaining int
}

// Activate enters Empowered for duration ticks. Activating while already
// empowered restarts the countdown instead of extending it.
func (m *Mode) Activate(duration int) {
	if duration <= 0 {
		return
	}
	m.active = true
	m.remaining = duration
}

// Advance consumes one tick and reports whether the mode expired on this
// call.
func (m *Mode) Advance() bool {
	if !m.active {
		return false
	}
	m.remaining--
	if m.remaining > 0 {
		return false
	}
	m.Clear()
	return true
}

// Clear returns to Normal immediately.
func (m *Mode) Clear() {
	m.active = false
	m.remaining = 0
}

func (m *Mode) Active() bool   { return m.active }
func (m *Mode) Remaining() int { return m.remaining }

func (m *Mode) State() State {
	if m.active {
		return Empowered
	}
	return Normal
}
