package lamp

// Channel indices into an Accumulator.
const (
	ChanRed = iota
	ChanGreen
	ChanBlue
	ChanBrightness
	channels
)

// Increment holds the per cycle phase step of every channel.
type Increment [channels]uint8

// Accumulator keeps one 16 bit phase per channel. Only the high byte
// selects a table entry, so the increment is a fraction of a table step and
// slow increments give slow color drift.
type Accumulator struct {
	phase [channels]uint16
}

// NewAccumulator returns an accumulator whose channels start at the given
// table positions (the high byte of each phase).
func NewAccumulator(start [channels]uint8) *Accumulator {
	a := &Accumulator{}
	for c, s := range start {
		a.phase[c] = uint16(s) << 8
	}
	return a
}

// Advance adds inc to every phase, wrapping modulo 65536.
func (a *Accumulator) Advance(inc Increment) {
	for c := range a.phase {
		a.phase[c] += uint16(inc[c])
	}
}

// Phase returns the raw 16 bit phase of channel c.
func (a *Accumulator) Phase(c int) uint16 {
	return a.phase[c]
}

// Sample looks up channel c in table.
func (a *Accumulator) Sample(table *[128]byte, c int) byte {
	return table[TableIndex(a.phase[c])]
}

// TableIndex maps a phase onto the 128 entry sine table.
func TableIndex(phase uint16) uint8 {
	return uint8(phase>>8) & 0x7F
}
