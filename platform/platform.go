package platform

import (
	"lautenbacher.net/lavalamp/lamp"
)

// Platform abstracts the real hardware away from the TUI simulation.
type Platform interface {
	// Start opens the hardware (or starts the TUI).
	Start() error

	// Stop releases all platform resources.
	Stop()

	// DisplayLeds hands a complete frame to the output device. It does not
	// block; when the device is busy only the latest frame is shown.
	DisplayLeds(frame lamp.Frame)

	// ButtonPressed samples the push button.
	ButtonPressed() bool

	// Ready is closed once the platform can show frames.
	Ready() <-chan bool
}
