package lamp

import (
	"fmt"

	"lautenbacher.net/lavalamp/config"
)

// ProfileFromConfig starts from the preset named by cfg.Variant and replaces
// whatever the configuration overrides.
func ProfileFromConfig(cfg config.LampConfig) (Profile, error) {
	p, err := Preset(cfg.Variant)
	if err != nil {
		return Profile{}, err
	}
	p.BrightnessMask = byte(cfg.BrightnessMask)
	p.StarSeed = cfg.StarSeed
	if cfg.Sine != "" {
		table, ok := SineTable(cfg.Sine)
		if !ok {
			return Profile{}, fmt.Errorf("unknown sine table %q", cfg.Sine)
		}
		p.Sine = table
	}

	if len(cfg.ColorPlans) > 0 {
		plans := make([]ColorPlan, 0, len(cfg.ColorPlans))
		for _, cc := range cfg.ColorPlans {
			cp, err := colorPlanFromConfig(cc)
			if err != nil {
				return Profile{}, err
			}
			plans = append(plans, cp)
		}
		p.ColorPlans = plans
	}

	if len(cfg.BrightnessPlans) > 0 {
		plans := make([]BrightnessPlan, 0, len(cfg.BrightnessPlans))
		for _, bc := range cfg.BrightnessPlans {
			effect, err := ParseBrightnessEffect(bc.Effect)
			if err != nil {
				return Profile{}, fmt.Errorf("brightness plan %s: %w", bc.Name, err)
			}
			plans = append(plans, BrightnessPlan{
				Name:      bc.Name,
				Effect:    effect,
				Level:     byte(bc.Level),
				Increment: uint8(bc.Increment),
			})
		}
		p.BrightnessPlans = plans
	}

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func colorPlanFromConfig(cc config.ColorPlanConfig) (ColorPlan, error) {
	kind, err := ParsePlanKind(cc.Effect)
	if err != nil {
		return ColorPlan{}, fmt.Errorf("color plan %s: %w", cc.Name, err)
	}
	cp := ColorPlan{Name: cc.Name, Kind: kind, Slot: cc.Slot, Gamma: cc.Gamma}
	for c, v := range cc.Increment {
		if c >= channels {
			break
		}
		cp.Increment[c] = uint8(v)
	}
	if len(cc.LedRGB) == 3 {
		cp.Color = Led{Red: byte(cc.LedRGB[0]), Green: byte(cc.LedRGB[1]), Blue: byte(cc.LedRGB[2]), Brightness: MaxBrightness}
	}
	return cp, nil
}
