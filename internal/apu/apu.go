// Package apu implements the NES Audio Processing Unit's pulse and noise
// channels, frame sequencer, and $4000-$4017 register window. Triangle and
// DMC are intentionally unimplemented.
package apu

import "github.com/GeFeC/nesgo/internal/apu/channels"

// NTSC frame-sequencer step boundaries, in APU cycles (one APU cycle is six
// master clock ticks: the APU runs at half the CPU rate, and the CPU runs
// at a third of the master rate).
const (
	step1     = 3729
	step2     = 7457
	step3     = 11186
	step4Four = 14916
	step4Five = 14915
	step5Five = 18641
)

// APU drives two pulse channels and a noise channel from a single
// master-clock-rate Tick; channel timers and the frame sequencer clock at
// one sixth that rate, the way the real hardware's divided clock does.
type APU struct {
	Pulse1 *channels.PulseChannel
	Pulse2 *channels.PulseChannel
	Noise  *channels.NoiseChannel

	fiveStepMode bool
	irqInhibit   bool
	frameIRQ     bool

	masterCycle uint64 // ticks since reset, at master-clock rate
	apuCycle    uint64 // APU-rate cycles since reset (masterCycle / 6)

	sampleCallback  func(float32)
	cyclesPerSample float64 // master cycles per output sample
	sampleCursor    float64
}

// New constructs an APU with its channels in their power-up state.
func New() *APU {
	return &APU{
		Pulse1: channels.NewPulseChannel(true),
		Pulse2: channels.NewPulseChannel(false),
		Noise:  channels.NewNoiseChannel(),
	}
}

// SetSampleCallback installs the sink invoked once per resampled output
// frame, and configures the master-cycles-per-sample ratio for the given
// output sample rate (e.g. 44100) against the NTSC master clock.
func (a *APU) SetSampleCallback(sampleRate float64, callback func(float32)) {
	a.sampleCallback = callback
	const cpuClockHz = 1789773.0
	const masterClockHz = cpuClockHz * 3
	a.cyclesPerSample = masterClockHz / sampleRate
}

// Reset returns the APU to its power-up state.
func (a *APU) Reset() {
	*a = *New()
}

// WriteRegister handles a CPU write into $4000-$4017 (pulse/noise/status/
// frame-counter subset; triangle and DMC registers are ignored).
func (a *APU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x4000:
		a.Pulse1.WriteControl(value)
	case 0x4001:
		a.Pulse1.WriteSweep(value)
	case 0x4002:
		a.Pulse1.WriteTimerLow(value)
	case 0x4003:
		a.Pulse1.WriteTimerHigh(value)
	case 0x4004:
		a.Pulse2.WriteControl(value)
	case 0x4005:
		a.Pulse2.WriteSweep(value)
	case 0x4006:
		a.Pulse2.WriteTimerLow(value)
	case 0x4007:
		a.Pulse2.WriteTimerHigh(value)
	case 0x400C:
		a.Noise.WriteControl(value)
	case 0x400E:
		a.Noise.WritePeriod(value)
	case 0x400F:
		a.Noise.WriteLength(value)
	case 0x4015:
		a.Pulse1.SetEnabled(value&0x01 != 0)
		a.Pulse2.SetEnabled(value&0x02 != 0)
		a.Noise.SetEnabled(value&0x04 != 0)
	case 0x4017:
		a.fiveStepMode = value&0x80 != 0
		a.irqInhibit = value&0x40 != 0
		if a.irqInhibit {
			a.frameIRQ = false
		}
		a.apuCycle = 0
		if a.fiveStepMode {
			a.clockQuarterFrame()
			a.clockHalfFrame()
		}
	}
}

// ReadStatus handles a CPU read of $4015: channel-active bits plus the
// frame IRQ flag, which this read clears.
func (a *APU) ReadStatus() uint8 {
	var status uint8
	if a.Pulse1.LengthActive() {
		status |= 0x01
	}
	if a.Pulse2.LengthActive() {
		status |= 0x02
	}
	if a.Noise.LengthActive() {
		status |= 0x04
	}
	if a.frameIRQ {
		status |= 0x40
	}
	a.frameIRQ = false
	return status
}

// FrameIRQPending reports whether the frame sequencer's IRQ line is
// asserted.
func (a *APU) FrameIRQPending() bool { return a.frameIRQ }

func (a *APU) clockQuarterFrame() {
	a.Pulse1.ClockEnvelope()
	a.Pulse2.ClockEnvelope()
	a.Noise.ClockEnvelope()
}

func (a *APU) clockHalfFrame() {
	a.Pulse1.ClockSweepAndLength()
	a.Pulse2.ClockSweepAndLength()
	a.Noise.ClockLength()
}

// Tick advances the APU by one master clock tick, matching the rate the
// System drives the PPU at. Every sixth call is one APU cycle: channel
// timers clock and the frame sequencer advances on its NTSC schedule.
func (a *APU) Tick() {
	a.masterCycle++
	if a.masterCycle%6 == 0 {
		a.apuCycle++
		a.Pulse1.ClockTimer()
		a.Pulse2.ClockTimer()
		a.Noise.ClockTimer()
		a.tickFrameSequencer()
	}
}

// EmitSample advances the audio-time accumulator by one master cycle and,
// once it has accumulated a full output sample period, resamples the
// current mixed output through the sample callback. Called last in the
// System's per-tick schedule, after interrupts have been delivered.
func (a *APU) EmitSample() {
	if a.sampleCallback == nil || a.cyclesPerSample <= 0 {
		return
	}
	a.sampleCursor++
	if a.sampleCursor >= a.cyclesPerSample {
		a.sampleCursor -= a.cyclesPerSample
		a.sampleCallback(a.mix())
	}
}

func (a *APU) tickFrameSequencer() {
	position := a.apuCycle % a.sequenceLength()

	if a.fiveStepMode {
		switch position {
		case step1, step5Five:
			a.clockQuarterFrame()
		case step2:
			a.clockQuarterFrame()
			a.clockHalfFrame()
		case step3:
			a.clockQuarterFrame()
		case step4Five:
			a.clockQuarterFrame()
			a.clockHalfFrame()
		}
		return
	}

	switch position {
	case step1, step3:
		a.clockQuarterFrame()
	case step2:
		a.clockQuarterFrame()
		a.clockHalfFrame()
	case step4Four:
		a.clockQuarterFrame()
		a.clockHalfFrame()
		if !a.irqInhibit {
			a.frameIRQ = true
		}
	}
}

func (a *APU) sequenceLength() uint64 {
	if a.fiveStepMode {
		return step5Five + 1
	}
	return step4Four + 1
}

// mix produces the output sample from the two pulse channels and the noise
// channel, clamped to [-1, 1].
func (a *APU) mix() float32 {
	p1 := float32(a.Pulse1.Output())
	p2 := float32(a.Pulse2.Output())
	n := float32(a.Noise.Output())

	out := 0.00752*(p1+p2) + 0.00494*n
	switch {
	case out > 1:
		return 1
	case out < -1:
		return -1
	default:
		return out
	}
}
