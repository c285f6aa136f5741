package platform

import (
	"fmt"
	"log/slog"

	"github.com/stianeikeland/go-rpio/v4"

	"lautenbacher.net/lavalamp/config"
	"lautenbacher.net/lavalamp/lamp"
)

type RaspberryPiPlatform struct {
	*AbstractPlatform
	encoder   *apa102Encoder
	buttonPin rpio.Pin
	spiWrite  func([]byte)
	opened    bool
}

// gpio calls, replaced in tests
var (
	gpioOpen  = rpio.Open
	gpioClose = rpio.Close
	spiBegin  = rpio.SpiBegin
)

func NewRaspberryPiPlatform(conf *config.Config) *RaspberryPiPlatform {
	inst := &RaspberryPiPlatform{
		encoder:   newApa102Encoder(conf.Lamp.LedsTotal),
		buttonPin: rpio.Pin(conf.Hardware.ButtonGPIO),
	}
	inst.AbstractPlatform = newAbstractPlatform(conf, inst.rpiDisplayFunc)
	return inst
}

func (s *RaspberryPiPlatform) Start() error {
	slog.Info("Initialise GPIO and Spi...")
	if err := gpioOpen(); err != nil {
		return fmt.Errorf("failed to open gpio memory: %w", err)
	}
	if err := spiBegin(rpio.Spi0); err != nil {
		if cerr := gpioClose(); cerr != nil {
			slog.Error("Error closing gpio memory", "error", cerr)
		}
		return fmt.Errorf("failed to begin spi: %w", err)
	}
	s.opened = true
	rpio.SpiSpeed(s.config.Hardware.SPIFrequency)
	rpio.SpiChipSelect(0)
	s.spiWrite = func(data []byte) { rpio.SpiTransmit(data...) }

	// the button pulls the pin to ground
	s.buttonPin.Input()
	s.buttonPin.PullUp()
	slog.Info("Button configured", "gpio", s.config.Hardware.ButtonGPIO)

	s.startDisplayDriver()
	close(s.readyChan)
	return nil
}

func (s *RaspberryPiPlatform) Stop() {
	s.stopDisplayDriver()
	if !s.opened {
		return
	}
	// leave the strip dark
	s.spiWrite(s.encoder.encode(lamp.Blank(s.config.Lamp.LedsTotal)))
	rpio.SpiEnd(rpio.Spi0)
	if err := gpioClose(); err != nil {
		slog.Error("Error closing gpio memory", "error", err)
	}
	s.opened = false
}

// ButtonPressed is true while the pin reads low.
func (s *RaspberryPiPlatform) ButtonPressed() bool {
	return s.buttonPin.Read() == rpio.Low
}

func (s *RaspberryPiPlatform) rpiDisplayFunc(frame lamp.Frame) {
	s.spiWrite(s.encoder.encode(frame))
}
