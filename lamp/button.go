package lamp

import (
	"fmt"
	"math"
	"time"
)

// ButtonState is the state of the press classifier.
type ButtonState int

const (
	// Idle: not pressed, or pressed for less than the short threshold.
	Idle ButtonState = iota
	// Held: pressed past the short threshold, strip is blanked.
	Held
	// AwaitingRelease: a long press fired, waiting for the button to come up.
	AwaitingRelease
)

func (s ButtonState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Held:
		return "held"
	case AwaitingRelease:
		return "awaiting-release"
	}
	return fmt.Sprintf("ButtonState(%d)", int(s))
}

// Event is what a single Tick of the Button reports.
type Event int

const (
	EventNone Event = iota
	// EventBlank: the press just crossed the short threshold.
	EventBlank
	// EventShortPress: released after the short and before the long threshold.
	EventShortPress
	// EventLongPress: still pressed when the long threshold ran out.
	EventLongPress
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventBlank:
		return "blank"
	case EventShortPress:
		return "short"
	case EventLongPress:
		return "long"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Button classifies the samples of a single push button, one sample per
// cycle. A press shorter than ShortCycles does nothing, a press released
// within LongCycles is a short press, anything longer is a long press. It
// never blocks: the waits of a hold are states.
type Button struct {
	shortCycles uint8
	longCycles  uint8
	counter     uint8
	state       ButtonState
}

// CyclesFor converts a press duration into a number of cycles of length
// cycle, the way the thresholds are derived (integer division).
func CyclesFor(press, cycle time.Duration) uint8 {
	if cycle <= 0 {
		return 0
	}
	n := press / cycle
	if n > math.MaxUint8-1 {
		n = math.MaxUint8 - 1
	}
	return uint8(n)
}

func NewButton(shortCycles, longCycles uint8) *Button {
	return &Button{shortCycles: shortCycles, longCycles: longCycles}
}

func (b *Button) State() ButtonState {
	return b.state
}

func (b *Button) Counter() uint8 {
	return b.counter
}

// Tick feeds one sample into the classifier.
func (b *Button) Tick(pressed bool) Event {
	switch b.state {
	case Idle:
		if !pressed {
			b.counter = 0
			return EventNone
		}
		b.count()
		if b.counter > b.shortCycles {
			b.state = Held
			return EventBlank
		}
	case Held:
		if !pressed {
			b.counter = 0
			b.state = Idle
			return EventShortPress
		}
		b.count()
		if b.counter > b.longCycles {
			b.counter = 0
			b.state = AwaitingRelease
			return EventLongPress
		}
	case AwaitingRelease:
		if !pressed {
			b.counter = 0
			b.state = Idle
		}
	}
	return EventNone
}

// count increments the counter, stopping at the ceiling instead of wrapping.
func (b *Button) count() {
	if b.counter < math.MaxUint8 {
		b.counter++
	}
}
