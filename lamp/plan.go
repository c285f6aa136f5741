package lamp

import (
	"fmt"
	"strings"
)

// PlanKind tags the variant of a ColorPlan.
type PlanKind int

const (
	// Cycling plans advance the phase accumulator and sample the sine table.
	Cycling PlanKind = iota
	// Fixed plans show a constant color.
	Fixed
	// Custom plans show whatever was captured into their slot.
	Custom
)

func (k PlanKind) String() string {
	switch k {
	case Cycling:
		return "sine"
	case Fixed:
		return "fixed"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("PlanKind(%d)", int(k))
}

// ParsePlanKind is the inverse of PlanKind.String.
func ParsePlanKind(s string) (PlanKind, error) {
	switch strings.ToLower(s) {
	case "sine", "cycling":
		return Cycling, nil
	case "fixed", "lamp":
		return Fixed, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("unknown color effect %q", s)
}

// ColorPlan is one selectable display mode.
type ColorPlan struct {
	Name string
	Kind PlanKind
	// Increment is used by Cycling plans.
	Increment Increment
	// Color is used by Fixed plans.
	Color Led
	// Slot is used by Custom plans.
	Slot int
	// Gamma enables gamma correction of the color channels.
	Gamma bool
}

// BrightnessEffect tags the variant of a BrightnessPlan.
type BrightnessEffect int

const (
	// Steady shows the level as is.
	Steady BrightnessEffect = iota
	// Fade follows the brightness phase channel between 0 and the level.
	Fade
	// Stars lets single LEDs flare up to the level over a dim base.
	Stars
)

func (e BrightnessEffect) String() string {
	switch e {
	case Steady:
		return "fixed"
	case Fade:
		return "fade"
	case Stars:
		return "stars"
	}
	return fmt.Sprintf("BrightnessEffect(%d)", int(e))
}

// ParseBrightnessEffect is the inverse of BrightnessEffect.String.
func ParseBrightnessEffect(s string) (BrightnessEffect, error) {
	switch strings.ToLower(s) {
	case "fixed", "":
		return Steady, nil
	case "fade":
		return Fade, nil
	case "stars":
		return Stars, nil
	}
	return 0, fmt.Errorf("unknown brightness effect %q", s)
}

// BrightnessPlan is one selectable global brightness level.
type BrightnessPlan struct {
	Name   string
	Effect BrightnessEffect
	Level  byte
	// Increment drives the brightness phase channel for Fade.
	Increment uint8
}

// LongPressAction selects what a long button press does.
type LongPressAction int

const (
	// NextBrightness advances the brightness plan.
	NextBrightness LongPressAction = iota
	// CaptureSlot stores the current color in the next custom slot.
	CaptureSlot
)

// Profile bundles everything that differs between the program variants.
type Profile struct {
	Name            string
	ColorPlans      []ColorPlan
	BrightnessPlans []BrightnessPlan
	Sine            *[128]byte
	// StartPhase is the initial table position per channel.
	StartPhase [channels]uint8
	// Floor is added to every sine sample of a Cycling plan.
	Floor byte
	// SineBrightness derives the brightness of Cycling plans from the
	// brightness phase channel (sample >> 3) instead of a BrightnessPlan.
	SineBrightness bool
	// Slots holds the default content of the custom slots.
	Slots     []Led
	LongPress LongPressAction
	// BrightnessMask is applied to every BrightnessPlan level.
	BrightnessMask byte
	// StarSeed seeds the PRNG of the Stars effect.
	StarSeed uint64
}

// Validate checks the invariants the engine relies on.
func (p *Profile) Validate() error {
	if len(p.ColorPlans) == 0 {
		return fmt.Errorf("profile %s: at least one color plan is required", p.Name)
	}
	if p.Sine == nil {
		return fmt.Errorf("profile %s: no sine table", p.Name)
	}
	for i, cp := range p.ColorPlans {
		if cp.Kind == Custom && (cp.Slot < 0 || cp.Slot >= len(p.Slots)) {
			return fmt.Errorf("profile %s: color plan %d (%s) uses slot %d, only %d slots defined", p.Name, i, cp.Name, cp.Slot, len(p.Slots))
		}
	}
	if p.LongPress == CaptureSlot && len(p.Slots) == 0 {
		return fmt.Errorf("profile %s: capture on long press needs custom slots", p.Name)
	}
	return nil
}
