package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const CONFILE = "config.yml"

// Variants the lamp package knows how to build.
var knownVariants = []string{"dimmable", "custom", "web"}

var (
	knownColorEffects      = []string{"sine", "cycling", "fixed", "lamp", "custom"}
	knownBrightnessEffects = []string{"", "fixed", "fade", "stars"}
	knownSines             = []string{"", "low", "high"}
)

type Config struct {
	RealHW     bool           `yaml:"-"`
	Configfile string         `yaml:"-"`
	Lamp       LampConfig     `yaml:"Lamp"`
	Network    NetworkConfig  `yaml:"Network"`
	NightDim   NightDimConfig `yaml:"NightDim"`
	Hardware   HardwareConfig `yaml:"Hardware"`
	Logging    LoggingConfig  `yaml:"Logging"`
}

type LampConfig struct {
	Variant    string        `yaml:"Variant"`
	LedsTotal  int           `yaml:"LedsTotal"`
	CycleDelay time.Duration `yaml:"CycleDelay"`
	PollDelay  time.Duration `yaml:"PollDelay"`
	ShortPress time.Duration `yaml:"ShortPress"`
	LongPress  time.Duration `yaml:"LongPress"`
	// BrightnessMask is applied to brightness plan levels. 0x1F keeps the
	// five register bits; 0x31 reproduces the legacy lamps.
	BrightnessMask int    `yaml:"BrightnessMask"`
	StarSeed       uint64 `yaml:"StarSeed"`
	// Sine picks the sine table ("low" or "high"); empty keeps the variant's.
	Sine string `yaml:"Sine"`
	// Optional, replace the plan lists of the variant.
	ColorPlans      []ColorPlanConfig      `yaml:"ColorPlans"`
	BrightnessPlans []BrightnessPlanConfig `yaml:"BrightnessPlans"`
}

type ColorPlanConfig struct {
	Name      string `yaml:"Name"`
	Effect    string `yaml:"Effect"`
	Increment []int  `yaml:"Increment"`
	LedRGB    []int  `yaml:"LedRGB"`
	Slot      int    `yaml:"Slot"`
	Gamma     bool   `yaml:"Gamma"`
}

type BrightnessPlanConfig struct {
	Name      string `yaml:"Name"`
	Effect    string `yaml:"Effect"`
	Level     int    `yaml:"Level"`
	Increment int    `yaml:"Increment"`
}

type NetworkConfig struct {
	Enabled         bool          `yaml:"Enabled"`
	Listen          string        `yaml:"Listen"`
	CredentialsFile string        `yaml:"CredentialsFile"`
	ResetWindow     time.Duration `yaml:"ResetWindow"`
	ResetPoll       time.Duration `yaml:"ResetPoll"`
	// CommandTimeout bounds how long a request waits for the cycle loop.
	CommandTimeout time.Duration `yaml:"CommandTimeout"`
}

type NightDimConfig struct {
	Enabled         bool    `yaml:"Enabled"`
	Latitude        float64 `yaml:"Latitude"`
	Longitude       float64 `yaml:"Longitude"`
	NightBrightness int     `yaml:"NightBrightness"`
	DayBrightness   int     `yaml:"DayBrightness"`
}

type HardwareConfig struct {
	SPIFrequency int `yaml:"SPIFrequency"`
	ButtonGPIO   int `yaml:"ButtonGPIO"`
}

type LoggingConfig struct {
	TUI LogConfig `yaml:"TUI"`
	HW  LogConfig `yaml:"HW"`
}

type LogConfig struct {
	Level  string `yaml:"Level"`
	Format string `yaml:"Format"`
	File   string `yaml:"File"`
}

// ReadConfig decodes cfile, fills in defaults and validates the result.
func ReadConfig(cfile string, realp bool) (*Config, error) {
	f, err := os.Open(cfile)
	if err != nil {
		return nil, fmt.Errorf("can't open config file %s: %w", cfile, err)
	}
	defer f.Close()

	conf := &Config{}
	if err := yaml.NewDecoder(f).Decode(conf); err != nil {
		return nil, fmt.Errorf("can't decode config file %s: %w", cfile, err)
	}
	conf.RealHW = realp
	conf.Configfile = cfile
	conf.applyDefaults()

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) applyDefaults() {
	l := &c.Lamp
	if l.Variant == "" {
		l.Variant = "dimmable"
	}
	if l.LedsTotal == 0 {
		l.LedsTotal = 5
	}
	if l.CycleDelay == 0 {
		l.CycleDelay = 200 * time.Millisecond
	}
	if l.PollDelay == 0 {
		l.PollDelay = 10 * time.Millisecond
	}
	if l.ShortPress == 0 {
		l.ShortPress = 1 * time.Second
	}
	if l.LongPress == 0 {
		l.LongPress = 5 * time.Second
	}
	if l.BrightnessMask == 0 {
		l.BrightnessMask = 0x1F
	}
	n := &c.Network
	if n.Listen == "" {
		n.Listen = ":8080"
	}
	if n.ResetWindow == 0 {
		n.ResetWindow = 2 * time.Second
	}
	if n.ResetPoll == 0 {
		n.ResetPoll = 10 * time.Millisecond
	}
	if n.CommandTimeout == 0 {
		n.CommandTimeout = time.Second
	}
	if c.Hardware.SPIFrequency == 0 {
		c.Hardware.SPIFrequency = 1_000_000
	}
	if c.Hardware.ButtonGPIO == 0 {
		c.Hardware.ButtonGPIO = 12
	}
}

// Validate reports the first inconsistency found in the configuration.
func (c *Config) Validate() error {
	l := c.Lamp
	if !slices.Contains(knownVariants, l.Variant) {
		return fmt.Errorf("Lamp.Variant %q is unknown, use one of %v", l.Variant, knownVariants)
	}
	if l.LedsTotal < 1 || l.LedsTotal > 1024 {
		return fmt.Errorf("Lamp.LedsTotal (%d) must be between 1 and 1024", l.LedsTotal)
	}
	if l.CycleDelay <= 0 {
		return fmt.Errorf("Lamp.CycleDelay must be positive")
	}
	if l.PollDelay <= 0 || l.PollDelay > l.CycleDelay {
		return fmt.Errorf("Lamp.PollDelay (%v) must be positive and not longer than Lamp.CycleDelay (%v)", l.PollDelay, l.CycleDelay)
	}
	if l.ShortPress >= l.LongPress {
		return fmt.Errorf("Lamp.ShortPress (%v) must be shorter than Lamp.LongPress (%v)", l.ShortPress, l.LongPress)
	}
	if l.LongPress/l.CycleDelay >= 255 {
		return fmt.Errorf("Lamp.LongPress (%v) must be less than 255 cycles of %v", l.LongPress, l.CycleDelay)
	}
	if l.ShortPress/l.CycleDelay == l.LongPress/l.CycleDelay {
		return fmt.Errorf("Lamp.ShortPress and Lamp.LongPress fall into the same cycle count")
	}
	if err := checkByte("Lamp.BrightnessMask", l.BrightnessMask); err != nil {
		return err
	}
	if !slices.Contains(knownSines, l.Sine) {
		return fmt.Errorf("Lamp.Sine %q is unknown, use one of %v", l.Sine, knownSines[1:])
	}

	for i, cp := range l.ColorPlans {
		name := fmt.Sprintf("Lamp.ColorPlans[%d]", i)
		if cp.Name == "" {
			return fmt.Errorf("%s.Name must not be empty", name)
		}
		if !slices.Contains(knownColorEffects, cp.Effect) {
			return fmt.Errorf("%s.Effect %q is unknown, use one of %v", name, cp.Effect, knownColorEffects)
		}
		if len(cp.Increment) != 0 && len(cp.Increment) != 3 && len(cp.Increment) != 4 {
			return fmt.Errorf("%s.Increment needs 3 or 4 values, got %d", name, len(cp.Increment))
		}
		for _, v := range cp.Increment {
			if err := checkByte(name+".Increment", v); err != nil {
				return err
			}
		}
		if len(cp.LedRGB) != 0 && len(cp.LedRGB) != 3 {
			return fmt.Errorf("%s.LedRGB needs 3 values, got %d", name, len(cp.LedRGB))
		}
		for _, v := range cp.LedRGB {
			if err := checkByte(name+".LedRGB", v); err != nil {
				return err
			}
		}
		if cp.Slot < 0 {
			return fmt.Errorf("%s.Slot must not be negative", name)
		}
	}

	for i, bp := range l.BrightnessPlans {
		name := fmt.Sprintf("Lamp.BrightnessPlans[%d]", i)
		if bp.Name == "" {
			return fmt.Errorf("%s.Name must not be empty", name)
		}
		if !slices.Contains(knownBrightnessEffects, bp.Effect) {
			return fmt.Errorf("%s.Effect %q is unknown, use one of %v", name, bp.Effect, knownBrightnessEffects[1:])
		}
		if err := checkByte(name+".Level", bp.Level); err != nil {
			return err
		}
		if err := checkByte(name+".Increment", bp.Increment); err != nil {
			return err
		}
	}

	if c.NightDim.Enabled {
		if c.NightDim.Latitude < -90 || c.NightDim.Latitude > 90 {
			return fmt.Errorf("NightDim.Latitude (%f) must be between -90 and 90", c.NightDim.Latitude)
		}
		if c.NightDim.Longitude < -180 || c.NightDim.Longitude > 180 {
			return fmt.Errorf("NightDim.Longitude (%f) must be between -180 and 180", c.NightDim.Longitude)
		}
		if c.NightDim.NightBrightness < 0 || c.NightDim.DayBrightness < 0 {
			return fmt.Errorf("NightDim brightness plan indices must not be negative")
		}
	}

	if c.Network.ResetPoll <= 0 || c.Network.ResetPoll > c.Network.ResetWindow {
		return fmt.Errorf("Network.ResetPoll (%v) must be positive and not longer than Network.ResetWindow (%v)", c.Network.ResetPoll, c.Network.ResetWindow)
	}
	return nil
}

func checkByte(name string, v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%s value %d must be between 0 and 255", name, v)
	}
	return nil
}
