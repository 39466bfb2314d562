package channels

// lengthTable maps a 5-bit load value written to a channel's length-counter
// register to the number of half-frame clocks it should sound for.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// LengthCounter silences a channel once it counts down to zero, unless the
// channel's halt/loop flag keeps reloading it.
type LengthCounter struct {
	value uint8
}

// Load sets the counter from a 5-bit length-table index.
func (l *LengthCounter) Load(index uint8) { l.value = lengthTable[index&0x1F] }

// Clock decrements the counter once per half frame unless halted.
func (l *LengthCounter) Clock(halt bool) {
	if !halt && l.value > 0 {
		l.value--
	}
}

// Active reports whether the channel should still produce sound.
func (l *LengthCounter) Active() bool { return l.value > 0 }

// Clear silences the channel immediately (APU $4015 disable, or power-up).
func (l *LengthCounter) Clear() { l.value = 0 }

// Value exposes the raw counter, mainly for $4015 status reporting.
func (l *LengthCounter) Value() uint8 { return l.value }
