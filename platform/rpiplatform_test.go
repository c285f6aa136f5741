package platform

import (
	"errors"
	"testing"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/assert"

	"lautenbacher.net/lavalamp/config"
)

func TestRaspberryPiPlatform_SpiFailureClosesGpio(t *testing.T) {
	origOpen, origClose, origBegin := gpioOpen, gpioClose, spiBegin
	defer func() { gpioOpen, gpioClose, spiBegin = origOpen, origClose, origBegin }()

	var opens, closes int
	gpioOpen = func() error { opens++; return nil }
	gpioClose = func() error { closes++; return nil }
	spiBegin = func(rpio.SpiDev) error { return errors.New("spi busy") }

	p := NewRaspberryPiPlatform(&config.Config{Lamp: config.LampConfig{LedsTotal: 5}})
	err := p.Start()

	assert.ErrorContains(t, err, "failed to begin spi", "Start should report the SPI error")
	assert.Equal(t, 1, opens, "gpio memory should have been opened once")
	assert.Equal(t, 1, closes, "gpio memory should be closed again when SPI fails")
	assert.False(t, p.opened, "a failed start leaves nothing open for Stop")
}

func TestRaspberryPiPlatform_OpenFailure(t *testing.T) {
	origOpen, origClose := gpioOpen, gpioClose
	defer func() { gpioOpen, gpioClose = origOpen, origClose }()

	var closes int
	gpioOpen = func() error { return errors.New("no /dev/gpiomem") }
	gpioClose = func() error { closes++; return nil }

	p := NewRaspberryPiPlatform(&config.Config{Lamp: config.LampConfig{LedsTotal: 5}})
	assert.ErrorContains(t, p.Start(), "failed to open gpio memory")
	assert.Equal(t, 0, closes, "nothing to close when open failed")
}
