package lamp

import "github.com/lucasb-eyer/go-colorful"

// MaxBrightness is the largest value the 5 bit global brightness register of
// an SK9822/APA102 accepts.
const MaxBrightness = 0x1F

// Led is the color and brightness of one position on the strip.
type Led struct {
	Red        byte `json:"red"`
	Green      byte `json:"green"`
	Blue       byte `json:"blue"`
	Brightness byte `json:"brightness"`
}

// True if all components are zero, false otherwise
func (s Led) IsEmpty() bool {
	return s.Red == 0 && s.Green == 0 && s.Blue == 0 && s.Brightness == 0
}

// WithBrightness returns a copy of s with the brightness register replaced.
func (s Led) WithBrightness(b byte) Led {
	s.Brightness = b
	return s
}

// Corrected returns a copy of s with every color channel passed through the
// gamma table. The brightness register is left alone.
func (s Led) Corrected() Led {
	s.Red = Gamma[s.Red]
	s.Green = Gamma[s.Green]
	s.Blue = Gamma[s.Blue]
	return s
}

// Visible approximates what the eye sees: the color channels scaled by the
// brightness register.
func (s Led) Visible() colorful.Color {
	scale := float64(s.Brightness&MaxBrightness) / MaxBrightness / 255
	return colorful.Color{
		R: float64(s.Red) * scale,
		G: float64(s.Green) * scale,
		B: float64(s.Blue) * scale,
	}
}

// Hex is the Visible color as #rrggbb.
func (s Led) Hex() string {
	return s.Visible().Clamped().Hex()
}

// Frame is one full update of the strip, one Led per physical position.
type Frame []Led

// NewFrame returns a frame of size leds all set to led.
func NewFrame(size int, led Led) Frame {
	f := make(Frame, size)
	for i := range f {
		f[i] = led
	}
	return f
}

// Blank returns a frame of size leds that are all off.
func Blank(size int) Frame {
	return make(Frame, size)
}

// Single returns a frame where only position index is lit.
func Single(size int, index int, led Led) Frame {
	f := make(Frame, size)
	if index >= 0 && index < size {
		f[index] = led
	}
	return f
}

// IsBlank reports whether every Led of the frame is off.
func (f Frame) IsBlank() bool {
	for _, led := range f {
		if !led.IsEmpty() {
			return false
		}
	}
	return true
}
