package lamp

// SineLow is one sine period over 128 steps with amplitude 120 around 120
// (0x00..0xEF). Index 0x20 is the maximum, 0x60 the minimum.
var SineLow = [128]byte{
	0x78, 0x7D, 0x83, 0x89, 0x8F, 0x94, 0x9A, 0xA0,
	0xA5, 0xAA, 0xB0, 0xB5, 0xBA, 0xBE, 0xC3, 0xC7,
	0xCC, 0xD0, 0xD3, 0xD7, 0xDA, 0xDE, 0xE0, 0xE3,
	0xE5, 0xE8, 0xE9, 0xEB, 0xEC, 0xED, 0xEE, 0xEE,
	0xEF, 0xEE, 0xEE, 0xED, 0xEC, 0xEB, 0xE9, 0xE8,
	0xE5, 0xE3, 0xE0, 0xDE, 0xDA, 0xD7, 0xD3, 0xD0,
	0xCC, 0xC7, 0xC3, 0xBE, 0xBA, 0xB5, 0xB0, 0xAA,
	0xA5, 0xA0, 0x9A, 0x94, 0x8F, 0x89, 0x83, 0x7D,
	0x78, 0x73, 0x6D, 0x67, 0x61, 0x5C, 0x56, 0x50,
	0x4B, 0x46, 0x40, 0x3B, 0x36, 0x32, 0x2D, 0x29,
	0x24, 0x20, 0x1D, 0x19, 0x16, 0x12, 0x10, 0x0D,
	0x0B, 0x08, 0x07, 0x05, 0x04, 0x03, 0x02, 0x02,
	0x00, 0x02, 0x02, 0x03, 0x04, 0x05, 0x07, 0x08,
	0x0B, 0x0D, 0x10, 0x12, 0x16, 0x19, 0x1D, 0x20,
	0x24, 0x29, 0x2D, 0x32, 0x36, 0x3B, 0x40, 0x46,
	0x4B, 0x50, 0x56, 0x5C, 0x61, 0x67, 0x6D, 0x73,
}

// SineHigh is the same wave lifted to an offset of 135 (0x0F..0xFF) so a
// color channel never drops to black.
var SineHigh = [128]byte{
	0x87, 0x8C, 0x92, 0x98, 0x9E, 0xA4, 0xA9, 0xAF,
	0xB4, 0xBA, 0xBF, 0xC4, 0xC9, 0xCE, 0xD3, 0xD7,
	0xDB, 0xDF, 0xE3, 0xE7, 0xEA, 0xED, 0xF0, 0xF3,
	0xF5, 0xF7, 0xF9, 0xFB, 0xFC, 0xFD, 0xFE, 0xFE,
	0xFF, 0xFE, 0xFE, 0xFD, 0xFC, 0xFB, 0xF9, 0xF7,
	0xF5, 0xF3, 0xF0, 0xED, 0xEA, 0xE7, 0xE3, 0xDF,
	0xDB, 0xD7, 0xD3, 0xCE, 0xC9, 0xC4, 0xBF, 0xBA,
	0xB4, 0xAF, 0xA9, 0xA4, 0x9E, 0x98, 0x92, 0x8C,
	0x87, 0x82, 0x7C, 0x76, 0x70, 0x6A, 0x65, 0x5F,
	0x5A, 0x54, 0x4F, 0x4A, 0x45, 0x40, 0x3B, 0x37,
	0x33, 0x2F, 0x2B, 0x27, 0x24, 0x21, 0x1E, 0x1B,
	0x19, 0x17, 0x15, 0x13, 0x12, 0x11, 0x10, 0x10,
	0x0F, 0x10, 0x10, 0x11, 0x12, 0x13, 0x15, 0x17,
	0x19, 0x1B, 0x1E, 0x21, 0x24, 0x27, 0x2B, 0x2F,
	0x33, 0x37, 0x3B, 0x40, 0x45, 0x4A, 0x4F, 0x54,
	0x5A, 0x5F, 0x65, 0x6A, 0x70, 0x76, 0x7C, 0x82,
}

// Gamma maps a linear 8 bit intensity onto a perceptual one, gamma 2.5.
var Gamma = [256]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 4, 4,
	4, 4, 4, 5, 5, 5, 5, 6, 6, 6, 6, 7, 7, 7, 7, 8,
	8, 8, 9, 9, 9, 10, 10, 10, 11, 11, 12, 12, 12, 13, 13, 14,
	14, 15, 15, 15, 16, 16, 17, 17, 18, 18, 19, 19, 20, 20, 21, 22,
	22, 23, 23, 24, 25, 25, 26, 26, 27, 28, 28, 29, 30, 30, 31, 32,
	33, 33, 34, 35, 36, 36, 37, 38, 39, 40, 40, 41, 42, 43, 44, 45,
	46, 46, 47, 48, 49, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 60,
	61, 62, 63, 64, 65, 67, 68, 69, 70, 71, 72, 73, 75, 76, 77, 78,
	80, 81, 82, 83, 85, 86, 87, 89, 90, 91, 93, 94, 95, 97, 98, 99,
	101, 102, 104, 105, 107, 108, 110, 111, 113, 114, 116, 117, 119, 121, 122, 124,
	125, 127, 129, 130, 132, 134, 135, 137, 139, 141, 142, 144, 146, 148, 150, 151,
	153, 155, 157, 159, 161, 163, 165, 166, 168, 170, 172, 174, 176, 178, 180, 182,
	184, 186, 189, 191, 193, 195, 197, 199, 201, 204, 206, 208, 210, 212, 215, 217,
	219, 221, 224, 226, 228, 231, 233, 235, 238, 240, 243, 245, 248, 250, 253, 255,
}

// SineTable returns the table registered under name ("low" or "high").
func SineTable(name string) (*[128]byte, bool) {
	switch name {
	case "low":
		return &SineLow, true
	case "high":
		return &SineHigh, true
	}
	return nil, false
}
