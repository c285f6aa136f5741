package lamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// feed presses the button for n samples and returns the events seen.
func feed(b *Button, pressed bool, n int) []Event {
	var evs []Event
	for i := 0; i < n; i++ {
		if ev := b.Tick(pressed); ev != EventNone {
			evs = append(evs, ev)
		}
	}
	return evs
}

func TestCyclesFor(t *testing.T) {
	assert.Equal(t, uint8(5), CyclesFor(time.Second, 200*time.Millisecond))
	assert.Equal(t, uint8(25), CyclesFor(5*time.Second, 200*time.Millisecond))
	assert.Equal(t, uint8(4), CyclesFor(999*time.Millisecond, 200*time.Millisecond), "integer division")
	assert.Equal(t, uint8(254), CyclesFor(time.Hour, time.Millisecond), "capped below the counter ceiling")
	assert.Equal(t, uint8(0), CyclesFor(time.Second, 0))
}

func TestButton_TapIsIgnored(t *testing.T) {
	b := NewButton(5, 25)
	assert.Empty(t, feed(b, true, 5), "a press up to the short threshold produces no event")
	assert.Equal(t, Idle, b.State())
	assert.Empty(t, feed(b, false, 1))
	assert.Equal(t, uint8(0), b.Counter(), "releasing resets the counter")
}

func TestButton_ShortPress(t *testing.T) {
	b := NewButton(5, 25)
	assert.Empty(t, feed(b, true, 5))
	assert.Equal(t, EventBlank, b.Tick(true), "the sixth sample crosses the short threshold")
	assert.Equal(t, Held, b.State())

	assert.Empty(t, feed(b, true, 19), "25 samples in total is still a short press")
	assert.Equal(t, EventShortPress, b.Tick(false))
	assert.Equal(t, Idle, b.State())
	assert.Equal(t, uint8(0), b.Counter())
}

func TestButton_LongPress(t *testing.T) {
	b := NewButton(5, 25)
	assert.Equal(t, []Event{EventBlank}, feed(b, true, 25))
	assert.Equal(t, EventLongPress, b.Tick(true), "the 26th sample is a long press")
	assert.Equal(t, AwaitingRelease, b.State())

	assert.Empty(t, feed(b, true, 100), "holding on after a long press does nothing")
	assert.Empty(t, feed(b, false, 1), "release after a long press is not a short press")
	assert.Equal(t, Idle, b.State())
}

func TestButton_CounterSaturates(t *testing.T) {
	b := NewButton(250, 255)
	feed(b, true, 400)
	assert.Equal(t, uint8(255), b.Counter(), "the counter stops at its ceiling")
	assert.Equal(t, Held, b.State(), "a long threshold of 255 is never exceeded")
	assert.Equal(t, EventShortPress, b.Tick(false))
}

func TestButtonStateString(t *testing.T) {
	assert.Equal(t, "awaiting-release", AwaitingRelease.String())
	assert.Equal(t, "long", EventLongPress.String())
	assert.Equal(t, "ButtonState(7)", ButtonState(7).String())
}
