// Package channels implements the APU's envelope, sweep, length-counter
// and duty/LFSR sequencer sub-units shared by the pulse and noise channels.
package channels

// EnvelopeUnit is the decay-to-zero (or looping) volume generator clocked
// once per quarter frame.
type EnvelopeUnit struct {
	Start    bool
	Loop     bool
	Constant bool
	Period   uint8 // divider reload value, and the constant volume level

	divider    uint8
	decayLevel uint8
}

// Clock advances the envelope by one quarter frame.
func (e *EnvelopeUnit) Clock() {
	if e.Start {
		e.Start = false
		e.decayLevel = 15
		e.divider = e.Period
		return
	}

	if e.divider > 0 {
		e.divider--
		return
	}

	e.divider = e.Period
	switch {
	case e.decayLevel > 0:
		e.decayLevel--
	case e.Loop:
		e.decayLevel = 15
	}
}

// Volume returns the channel's current volume level: the constant level
// when Constant is set, otherwise the decaying envelope level.
func (e *EnvelopeUnit) Volume() uint8 {
	if e.Constant {
		return e.Period
	}
	return e.decayLevel
}

// Reset returns the envelope to its power-up state.
func (e *EnvelopeUnit) Reset() {
	*e = EnvelopeUnit{}
}
