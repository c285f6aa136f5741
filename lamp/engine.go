package lamp

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// Engine computes one frame per cycle from the button sample, the active
// plans and the phase accumulator. It is not safe for concurrent use: the
// cycle loop owns it and everyone else goes through that loop.
type Engine struct {
	profile   Profile
	ledsTotal int
	acc       *Accumulator
	sel       *Selector
	button    *Button
	slots     []Led
	nextSlot  int
	// current is the color and brightness of the last animated frame.
	current Led
	// flash counts the remaining frames of a capture confirmation.
	flash     int
	flashLed  Led
	holdBlank bool
	rnd       *rand.Rand
	cycles    uint64
}

// NewEngine builds an engine for profile driving ledsTotal LEDs.
func NewEngine(profile Profile, ledsTotal int, shortCycles, longCycles uint8) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if ledsTotal <= 0 {
		return nil, fmt.Errorf("need at least one LED, got %d", ledsTotal)
	}
	if shortCycles >= longCycles {
		return nil, fmt.Errorf("short press (%d cycles) must be shorter than long press (%d cycles)", shortCycles, longCycles)
	}
	slots := make([]Led, len(profile.Slots))
	copy(slots, profile.Slots)
	return &Engine{
		profile:   profile,
		ledsTotal: ledsTotal,
		acc:       NewAccumulator(profile.StartPhase),
		sel:       NewSelector(len(profile.ColorPlans), len(profile.BrightnessPlans)),
		button:    NewButton(shortCycles, longCycles),
		slots:     slots,
		rnd:       rand.New(rand.NewPCG(profile.StarSeed, profile.StarSeed^0x9E3779B97F4A7C15)),
	}, nil
}

// Step runs one cycle: classify the button sample, act on it, and return
// the frame to show.
func (e *Engine) Step(pressed bool) Frame {
	e.cycles++
	switch e.button.Tick(pressed) {
	case EventBlank:
		slog.Debug("Button held, blanking strip")
		e.flash = 0
		return Blank(e.ledsTotal)
	case EventShortPress:
		e.sel.AdvanceColor()
	case EventLongPress:
		return e.longPress()
	}

	switch {
	case e.button.State() == Held:
		return Blank(e.ledsTotal)
	case e.flash > 0:
		return e.flashFrame()
	case e.button.State() == AwaitingRelease:
		if e.holdBlank {
			return Blank(e.ledsTotal)
		}
		return NewFrame(e.ledsTotal, e.current)
	}
	return e.animate()
}

func (e *Engine) longPress() Frame {
	if e.profile.LongPress == CaptureSlot {
		e.capture()
		e.holdBlank = true
		return e.flashFrame()
	}
	e.holdBlank = false
	e.sel.AdvanceBrightness()
	// show the new level right away instead of waiting for the release
	if _, ok := e.brightnessPlan(); ok && e.colorPlan().Kind != Custom {
		e.current.Brightness = e.level(e.brightnessSample())
	}
	return NewFrame(e.ledsTotal, e.current)
}

// capture copies the last animated color into the next custom slot and
// starts the confirmation flash: slot+1 flashes.
func (e *Engine) capture() {
	slot := e.nextSlot
	e.slots[slot] = e.current
	e.flashLed = e.current
	e.flash = 2 * (slot + 1)
	slog.Info("Custom slot captured", "slot", slot,
		"red", e.current.Red, "green", e.current.Green, "blue", e.current.Blue, "brightness", e.current.Brightness)
	e.nextSlot = (slot + 1) % len(e.slots)
}

func (e *Engine) flashFrame() Frame {
	e.flash--
	if e.flash%2 == 1 {
		return NewFrame(e.ledsTotal, e.flashLed)
	}
	return Blank(e.ledsTotal)
}

func (e *Engine) colorPlan() ColorPlan {
	return e.profile.ColorPlans[e.sel.Color()]
}

func (e *Engine) brightnessPlan() (BrightnessPlan, bool) {
	if len(e.profile.BrightnessPlans) == 0 {
		return BrightnessPlan{}, false
	}
	return e.profile.BrightnessPlans[e.sel.Brightness()], true
}

func (e *Engine) animate() Frame {
	plan := e.colorPlan()
	bp, hasBP := e.brightnessPlan()

	var inc Increment
	if plan.Kind == Cycling {
		inc = plan.Increment
	}
	if hasBP && bp.Effect == Fade {
		inc[ChanBrightness] = bp.Increment
	}
	e.acc.Advance(inc)

	var led Led
	switch plan.Kind {
	case Cycling:
		led = Led{
			Red:   e.acc.Sample(e.profile.Sine, ChanRed) + e.profile.Floor,
			Green: e.acc.Sample(e.profile.Sine, ChanGreen) + e.profile.Floor,
			Blue:  e.acc.Sample(e.profile.Sine, ChanBlue) + e.profile.Floor,
		}
		if plan.Gamma {
			led = led.Corrected()
		}
	case Fixed:
		led = plan.Color
		if plan.Gamma {
			led = led.Corrected()
		}
	case Custom:
		e.current = e.slots[plan.Slot]
		return NewFrame(e.ledsTotal, e.current)
	}

	switch {
	case plan.Kind == Cycling && e.profile.SineBrightness:
		led.Brightness = e.acc.Sample(e.profile.Sine, ChanBrightness) >> 3
	case hasBP:
		led.Brightness = e.level(e.brightnessSample())
	default:
		led.Brightness = MaxBrightness
	}
	e.current = led

	if hasBP && bp.Effect == Stars {
		return e.stars(led, bp)
	}
	return NewFrame(e.ledsTotal, led)
}

// brightnessSample is the brightness channel of the accumulator, used by Fade.
func (e *Engine) brightnessSample() byte {
	return e.acc.Sample(e.profile.Sine, ChanBrightness)
}

// level is the brightness register value of the active brightness plan.
func (e *Engine) level(sample byte) byte {
	bp, _ := e.brightnessPlan()
	level := bp.Level
	switch bp.Effect {
	case Fade:
		level = byte(uint(sample) * uint(bp.Level) / 255)
	case Stars:
		level = bp.Level / 4
	}
	return level & e.profile.BrightnessMask
}

// stars lets one LED in eight flare to the full level each cycle.
func (e *Engine) stars(base Led, bp BrightnessPlan) Frame {
	f := NewFrame(e.ledsTotal, base)
	for i := range f {
		if e.rnd.IntN(8) == 0 {
			f[i].Brightness = bp.Level & e.profile.BrightnessMask
		}
	}
	return f
}

// SetColorPlan selects color plan i; see Selector.SetColor.
func (e *Engine) SetColorPlan(i int) error {
	return e.sel.SetColor(i)
}

// SetBrightnessPlan selects brightness plan i; see Selector.SetBrightness.
func (e *Engine) SetBrightnessPlan(i int) error {
	return e.sel.SetBrightness(i)
}

// Slots returns a copy of the custom slots.
func (e *Engine) Slots() []Led {
	ret := make([]Led, len(e.slots))
	copy(ret, e.slots)
	return ret
}

// State is a read only snapshot of the engine for observers.
type State struct {
	Variant            string   `json:"variant"`
	ColorPlan          int      `json:"colorPlan"`
	ColorPlanName      string   `json:"colorPlanName"`
	BrightnessPlan     int      `json:"brightnessPlan"`
	BrightnessPlanName string   `json:"brightnessPlanName"`
	ColorPlans         []string `json:"colorPlans"`
	BrightnessPlans    []string `json:"brightnessPlans"`
	Current            Led      `json:"current"`
	Button             string   `json:"button"`
	Cycles             uint64   `json:"cycles"`
}

// Snapshot describes the current selection and output.
func (e *Engine) Snapshot() State {
	st := State{
		Variant:         e.profile.Name,
		ColorPlan:       e.sel.Color(),
		ColorPlanName:   e.colorPlan().Name,
		BrightnessPlan:  e.sel.Brightness(),
		ColorPlans:      make([]string, len(e.profile.ColorPlans)),
		BrightnessPlans: make([]string, len(e.profile.BrightnessPlans)),
		Current:         e.current,
		Button:          e.button.State().String(),
		Cycles:          e.cycles,
	}
	for i, cp := range e.profile.ColorPlans {
		st.ColorPlans[i] = cp.Name
	}
	for i, bp := range e.profile.BrightnessPlans {
		st.BrightnessPlans[i] = bp.Name
	}
	if bp, ok := e.brightnessPlan(); ok {
		st.BrightnessPlanName = bp.Name
	}
	return st
}
