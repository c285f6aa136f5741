package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLamp = `
Lamp:
  Variant: "web"
  LedsTotal: 5
  CycleDelay: 200ms
  PollDelay: 10ms
  ShortPress: 1s
  LongPress: 5s
  StarSeed: 42
  Sine: "low"
  ColorPlans:
    - { Name: "Fast", Effect: "sine", Increment: [125, 93, 26], Gamma: true }
    - { Name: "Lamp", Effect: "fixed", LedRGB: [255, 200, 100] }
  BrightnessPlans:
    - { Name: "Dim", Level: 11 }
    - { Name: "Breathe", Effect: "fade", Level: 31, Increment: 4 }
`

const validRest = `
Network:
  Enabled: true
  Listen: ":9090"
  CredentialsFile: "/tmp/lavalamp-wifi.json"
NightDim:
  Enabled: true
  Latitude: 50.1
  Longitude: 8.7
  NightBrightness: 0
  DayBrightness: 1
Logging:
  TUI:
    Level: "DEBUG"
    Format: "text"
    File: "/tmp/lavalamp-tui.log"
  HW:
    Level: "WARN"
    Format: "json"
    File: "/var/log/lavalamp-hw.log"
`

func getBaseConfig() string {
	return validLamp + validRest
}

func createConfigFile(t *testing.T, configData string) string {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yml")
	err := os.WriteFile(configFile, []byte(configData), 0o644)
	if err != nil {
		t.Fatalf("Failed to write dummy config file: %v", err)
	}
	return configFile
}

func TestReadConfig(t *testing.T) {
	configFile := createConfigFile(t, getBaseConfig())

	conf, err := ReadConfig(configFile, true)
	require.NoError(t, err, "ReadConfig should not return an error")

	assert.True(t, conf.RealHW, "RealHW should be taken from the argument")
	assert.Equal(t, configFile, conf.Configfile, "Configfile should be remembered")
	assert.Equal(t, "web", conf.Lamp.Variant, "Lamp.Variant should be web")
	assert.Equal(t, 200*time.Millisecond, conf.Lamp.CycleDelay, "Lamp.CycleDelay should be 200ms")
	assert.Equal(t, 5*time.Second, conf.Lamp.LongPress, "Lamp.LongPress should be 5s")
	assert.Equal(t, uint64(42), conf.Lamp.StarSeed, "Lamp.StarSeed should be 42")
	assert.Equal(t, "low", conf.Lamp.Sine, "Lamp.Sine should be low")
	assert.Len(t, conf.Lamp.ColorPlans, 2, "two color plans should be read")
	assert.Equal(t, []int{125, 93, 26}, conf.Lamp.ColorPlans[0].Increment, "increment of the first plan")
	assert.True(t, conf.Lamp.ColorPlans[0].Gamma, "first plan is gamma corrected")
	assert.Equal(t, []int{255, 200, 100}, conf.Lamp.ColorPlans[1].LedRGB, "color of the fixed plan")
	assert.Equal(t, "fade", conf.Lamp.BrightnessPlans[1].Effect, "second brightness plan fades")

	assert.Equal(t, ":9090", conf.Network.Listen, "Network.Listen should be :9090")
	assert.InDelta(t, 50.1, conf.NightDim.Latitude, 1e-9, "NightDim.Latitude")

	assert.Equal(t, "DEBUG", conf.Logging.TUI.Level, "Logging.TUI.Level should be DEBUG")
	assert.Equal(t, "json", conf.Logging.HW.Format, "Logging.HW.Format should be json")
	assert.Equal(t, "/var/log/lavalamp-hw.log", conf.Logging.HW.File, "Logging.HW.File")
}

func TestReadConfig_Defaults(t *testing.T) {
	configFile := createConfigFile(t, "Lamp: {}\n")

	conf, err := ReadConfig(configFile, false)
	require.NoError(t, err, "an empty lamp section is valid")

	assert.Equal(t, "dimmable", conf.Lamp.Variant, "default variant")
	assert.Equal(t, 5, conf.Lamp.LedsTotal, "default LED count")
	assert.Equal(t, 200*time.Millisecond, conf.Lamp.CycleDelay, "default cycle delay")
	assert.Equal(t, 10*time.Millisecond, conf.Lamp.PollDelay, "default poll delay")
	assert.Equal(t, time.Second, conf.Lamp.ShortPress, "default short press")
	assert.Equal(t, 5*time.Second, conf.Lamp.LongPress, "default long press")
	assert.Equal(t, 0x1F, conf.Lamp.BrightnessMask, "default brightness mask")
	assert.Equal(t, 2*time.Second, conf.Network.ResetWindow, "default reset window")
	assert.Equal(t, 10*time.Millisecond, conf.Network.ResetPoll, "default reset poll")
	assert.Equal(t, 12, conf.Hardware.ButtonGPIO, "default button pin")
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.yml"), false)
	assert.Error(t, err, "ReadConfig should fail for a missing file")
	assert.Contains(t, err.Error(), "can't open config file")
}

func TestReadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		message string
	}{
		{"unknown variant", `Variant: "web"`, `Variant: "disco"`, "Lamp.Variant"},
		{"rgb out of range", "[255, 200, 100]", "[256, 200, 100]", "must be between 0 and 255"},
		{"increment out of range", "[125, 93, 26]", "[125, 930, 26]", "must be between 0 and 255"},
		{"short increment", "[125, 93, 26]", "[125, 93]", "needs 3 or 4 values"},
		{"unknown color effect", `Effect: "sine"`, `Effect: "plasma"`, "Effect \"plasma\" is unknown"},
		{"unknown brightness effect", `Effect: "fade"`, `Effect: "strobe"`, "Effect \"strobe\" is unknown"},
		{"level out of range", "Level: 11", "Level: 300", "must be between 0 and 255"},
		{"short not shorter than long", "ShortPress: 1s", "ShortPress: 5s", "must be shorter than"},
		{"long press too long", "LongPress: 5s", "LongPress: 60s", "less than 255 cycles"},
		{"poll longer than cycle", "PollDelay: 10ms", "PollDelay: 1s", "Lamp.PollDelay"},
		{"latitude", "Latitude: 50.1", "Latitude: 91", "NightDim.Latitude"},
		{"longitude", "Longitude: 8.7", "Longitude: -181", "NightDim.Longitude"},
		{"no leds", "LedsTotal: 5", "LedsTotal: -1", "Lamp.LedsTotal"},
		{"unknown sine", `Sine: "low"`, `Sine: "square"`, "Lamp.Sine \"square\" is unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := strings.Replace(getBaseConfig(), tt.old, tt.new, 1)
			require.NotEqual(t, getBaseConfig(), data, "replacement must change the config")
			_, err := ReadConfig(createConfigFile(t, data), false)
			if assert.Error(t, err, "ReadConfig should return an error") {
				assert.Contains(t, err.Error(), tt.message, "error message should name the problem")
			}
		})
	}
}

func TestReadConfig_NightDimDisabledSkipsChecks(t *testing.T) {
	data := strings.Replace(getBaseConfig(), "Latitude: 50.1", "Latitude: 500", 1)
	data = strings.Replace(data, "NightDim:\n  Enabled: true", "NightDim:\n  Enabled: false", 1)
	_, err := ReadConfig(createConfigFile(t, data), false)
	assert.NoError(t, err, "coordinates are only checked when night dimming is enabled")
}

func TestWatch(t *testing.T) {
	configFile := createConfigFile(t, getBaseConfig())
	var calls atomic.Int32

	w, err := Watch(configFile, func() { calls.Add(1) })
	require.NoError(t, err, "Watch should not fail")
	defer w.Close()

	// a sibling file must not trigger a reload
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(configFile), "other.yml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(configFile, []byte(getBaseConfig()+"\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond,
		"writing the config file should trigger onChange")
}
