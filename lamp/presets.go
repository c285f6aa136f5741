package lamp

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Names of the built in variants.
const (
	VariantDimmable = "dimmable"
	VariantCustom   = "custom"
	VariantWeb      = "web"
)

var white = Led{Red: 255, Green: 255, Blue: 255}

// cycling returns the four speed plans Fast, Medium, Slow and Glacial.
// glacialGreen differs between the variants.
func cycling(gamma bool, glacialGreen uint8) []ColorPlan {
	return []ColorPlan{
		{Name: "Fast", Kind: Cycling, Increment: Increment{125, 93, 26, 0}, Gamma: gamma},
		{Name: "Medium", Kind: Cycling, Increment: Increment{62, 47, 13, 0}, Gamma: gamma},
		{Name: "Slow", Kind: Cycling, Increment: Increment{31, 23, 7, 0}, Gamma: gamma},
		{Name: "Glacial", Kind: Cycling, Increment: Increment{15, glacialGreen, 3, 0}, Gamma: gamma},
	}
}

var presets = map[string]func() Profile{
	VariantDimmable: func() Profile {
		return Profile{
			Name:       VariantDimmable,
			ColorPlans: append(cycling(true, 17), ColorPlan{Name: "Lamp", Kind: Fixed, Color: white}),
			BrightnessPlans: []BrightnessPlan{
				{Name: "Full", Level: 31},
				{Name: "Medium", Level: 19},
				{Name: "Low", Level: 11},
			},
			Sine:           &SineLow,
			StartPhase:     [channels]uint8{44, 111, 88, 0},
			Floor:          15,
			LongPress:      NextBrightness,
			BrightnessMask: MaxBrightness,
		}
	},
	VariantCustom: func() Profile {
		plans := cycling(false, 17)
		for slot := 0; slot < 4; slot++ {
			plans = append(plans, ColorPlan{Name: fmt.Sprintf("Custom %d", slot+1), Kind: Custom, Slot: slot})
		}
		return Profile{
			Name:       VariantCustom,
			ColorPlans: plans,
			Sine:       &SineLow,
			StartPhase: [channels]uint8{111, 86, 98, 0},
			Slots: []Led{
				white.WithBrightness(7),
				white.WithBrightness(15),
				white.WithBrightness(23),
				white.WithBrightness(31),
			},
			SineBrightness: true,
			LongPress:      CaptureSlot,
			BrightnessMask: MaxBrightness,
		}
	},
	VariantWeb: func() Profile {
		return Profile{
			Name:       VariantWeb,
			ColorPlans: append(cycling(true, 11), ColorPlan{Name: "Lamp", Kind: Fixed, Color: white}),
			BrightnessPlans: []BrightnessPlan{
				{Name: "Dim", Level: 11},
				{Name: "Normal", Level: 19},
				{Name: "Solar", Level: 31},
			},
			Sine:           &SineHigh,
			StartPhase:     [channels]uint8{111, 86, 98, 0},
			LongPress:      NextBrightness,
			BrightnessMask: MaxBrightness,
		}
	},
}

// Preset returns a fresh copy of the built in profile called name.
func Preset(name string) (Profile, error) {
	build, ok := presets[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown variant %q (known: %v)", name, Variants())
	}
	return build(), nil
}

// Variants lists the names of the built in profiles.
func Variants() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
