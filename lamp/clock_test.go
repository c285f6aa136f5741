package lamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewGate(200*time.Millisecond, t0)

	assert.False(t, g.Ready(t0.Add(100*time.Millisecond)))
	assert.False(t, g.Ready(t0.Add(200*time.Millisecond)), "exactly one period is not enough")
	assert.True(t, g.Ready(t0.Add(201*time.Millisecond)))
	assert.False(t, g.Ready(t0.Add(300*time.Millisecond)), "the period restarts at the accepted call")

	assert.True(t, g.Ready(t0.Add(2*time.Second)), "a late call runs once")
	assert.False(t, g.Ready(t0.Add(2100*time.Millisecond)), "missed periods are not caught up")
}
