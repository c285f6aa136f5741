package lamp

import (
	"errors"
	"log/slog"
)

// ErrPlanOutOfRange is returned when a plan index does not name a plan.
var ErrPlanOutOfRange = errors.New("plan index out of range")

// Selector holds the active color plan and the active brightness plan.
// Both indices always name an existing plan (the brightness index stays 0
// when there are no brightness plans).
type Selector struct {
	color       int
	colorCount  int
	bright      int
	brightCount int
}

func NewSelector(colorCount, brightCount int) *Selector {
	return &Selector{colorCount: colorCount, brightCount: brightCount}
}

func (s *Selector) Color() int {
	return s.color
}

func (s *Selector) Brightness() int {
	return s.bright
}

// AdvanceColor selects the next color plan, wrapping to the first one after
// the last.
func (s *Selector) AdvanceColor() int {
	s.color = next(s.color, s.colorCount)
	slog.Info("Color plan advanced", "plan", s.color)
	return s.color
}

// AdvanceBrightness selects the next brightness plan, wrapping to the first
// one after the last.
func (s *Selector) AdvanceBrightness() int {
	s.bright = next(s.bright, s.brightCount)
	slog.Info("Brightness plan advanced", "plan", s.bright)
	return s.bright
}

// SetColor selects color plan i. An index outside the plan list leaves the
// selection unchanged and returns ErrPlanOutOfRange.
func (s *Selector) SetColor(i int) error {
	if i < 0 || i >= s.colorCount {
		return ErrPlanOutOfRange
	}
	s.color = i
	slog.Info("Color plan set", "plan", s.color)
	return nil
}

// SetBrightness selects brightness plan i, see SetColor.
func (s *Selector) SetBrightness(i int) error {
	if i < 0 || i >= s.brightCount {
		return ErrPlanOutOfRange
	}
	s.bright = i
	slog.Info("Brightness plan set", "plan", s.bright)
	return nil
}

func next(i, count int) int {
	i++
	if i >= count {
		return 0
	}
	return i
}
