package platform

import (
	"lautenbacher.net/lavalamp/lamp"
)

// apa102Encoder turns frames into the SPI byte stream of APA102/SK9822
// strips. The buffer is allocated once for the configured strip length.
type apa102Encoder struct {
	buffer []byte
}

func apa102Size(ledsTotal int) int {
	return 4 + 4*ledsTotal + ledsTotal/16 + 1
}

func newApa102Encoder(ledsTotal int) *apa102Encoder {
	return &apa102Encoder{buffer: make([]byte, apa102Size(ledsTotal))}
}

// encode returns the stream for frame. The slice is only valid until the
// next call.
func (e *apa102Encoder) encode(frame lamp.Frame) []byte {
	size := apa102Size(len(frame))
	if size > len(e.buffer) {
		e.buffer = make([]byte, size)
	}
	display := e.buffer[:size]

	// Frame start: 4 zero bytes
	copy(display[0:4], []byte{0x00, 0x00, 0x00, 0x00})

	offset := 4
	for _, led := range frame {
		// protocol: brightness byte, blue, green, red
		display[offset] = 0xE0 | (led.Brightness & lamp.MaxBrightness)
		display[offset+1] = led.Blue
		display[offset+2] = led.Green
		display[offset+3] = led.Red
		offset += 4
	}

	// Frame end: at least n/2 clock edges, sent as 0xFF bytes
	for i := offset; i < size; i++ {
		display[i] = 0xFF
	}
	return display
}
