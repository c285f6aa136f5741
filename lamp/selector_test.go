package lamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSelector_AdvanceWraps(t *testing.T) {
	s := NewSelector(5, 3)
	for i := 1; i < 5; i++ {
		assert.Equal(t, i, s.AdvanceColor())
	}
	assert.Equal(t, 0, s.AdvanceColor(), "advancing past the last color plan wraps to 0")

	s.AdvanceBrightness()
	s.AdvanceBrightness()
	assert.Equal(t, 0, s.AdvanceBrightness(), "advancing past the last brightness plan wraps to 0")
}

func TestSelector_NoBrightnessPlans(t *testing.T) {
	s := NewSelector(2, 0)
	assert.Equal(t, 0, s.AdvanceBrightness(), "without brightness plans the index stays 0")
	assert.ErrorIs(t, s.SetBrightness(0), ErrPlanOutOfRange)
}

func TestSelector_SetOutOfRange(t *testing.T) {
	s := NewSelector(5, 3)
	assert.NoError(t, s.SetColor(3))
	assert.ErrorIs(t, s.SetColor(99), ErrPlanOutOfRange)
	assert.ErrorIs(t, s.SetColor(-1), ErrPlanOutOfRange)
	assert.ErrorIs(t, s.SetColor(5), ErrPlanOutOfRange)
	assert.Equal(t, 3, s.Color(), "a rejected index leaves the selection alone")

	assert.NoError(t, s.SetBrightness(2))
	assert.ErrorIs(t, s.SetBrightness(3), ErrPlanOutOfRange)
	assert.Equal(t, 2, s.Brightness())
}

func TestSelector_AdvanceIsModulo(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 16).Draw(t, "count")
		n := rapid.IntRange(0, 100).Draw(t, "presses")
		s := NewSelector(count, count)
		for i := 0; i < n; i++ {
			s.AdvanceColor()
		}
		if s.Color() != n%count {
			t.Fatalf("after %d advances of %d plans got %d", n, count, s.Color())
		}
	})
}
