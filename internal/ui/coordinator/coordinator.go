// Package coordinator decides when user input becomes a search dispatch.
package coordinator

import (
	"time"

	"filmseek/internal/config"
)

// Trigger identifies the UI event that fired a dispatch.
type Trigger string

const (
	TriggerDebounce Trigger = "debounce"
	TriggerEnter    Trigger = "enter"
	TriggerButton   Trigger = "button"
)

// Coordinator collapses bursts of keystrokes into one dispatch and lets
// explicit triggers fire immediately. Timer state is token-based: every
// keystroke invalidates the previous token, so a timer that fires with a
// stale token is a cancelled one. All state lives on the instance, so
// multiple widgets can coexist.
type Coordinator struct {
	triggers config.Triggers
	quiesce  time.Duration

	counter int // last token handed out
	pending int // token of the live timer, 0 when none
}

// New creates a coordinator with the given trigger set and quiescence
// interval.
func New(triggers config.Triggers, quiesce time.Duration) *Coordinator {
	return &Coordinator{
		triggers: triggers,
		quiesce:  quiesce,
	}
}

// Keystroke records a character-level input change. Any previously
// scheduled timer is invalidated. When the input trigger is enabled it
// returns a fresh token and the delay after which the caller should
// report the timer back via TimerFired.
func (c *Coordinator) Keystroke() (token int, delay time.Duration, ok bool) {
	c.pending = 0
	if !c.triggers.Input {
		return 0, 0, false
	}

	c.counter++
	c.pending = c.counter
	return c.pending, c.quiesce, true
}

// TimerFired reports whether the timer with the given token is still the
// live one. A true result means the debounced dispatch should fire now;
// stale tokens belong to timers superseded by later input.
func (c *Coordinator) TimerFired(token int) bool {
	if c.pending == 0 || token != c.pending {
		return false
	}
	c.pending = 0
	return true
}

// Submit records an explicit trigger (Enter or the search button) and
// reports whether it should dispatch. Explicit intent supersedes the
// debounce, so any pending timer is cancelled either way.
func (c *Coordinator) Submit(t Trigger) bool {
	c.pending = 0
	switch t {
	case TriggerEnter:
		return c.triggers.Enter
	case TriggerButton:
		return c.triggers.Button
	default:
		return false
	}
}

// PendingToken returns the live timer token, 0 when none. Used by tests
// and diagnostics.
func (c *Coordinator) PendingToken() int {
	return c.pending
}
