package apu

import "testing"

func TestPulseLengthLoadsWhenEnabled(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01) // enable pulse 1
	a.WriteRegister(0x4000, 0x3F) // constant volume 15, duty 0
	a.WriteRegister(0x4002, 0x00)
	a.WriteRegister(0x4003, 0x00) // length index 0 -> loaded only because enabled

	if !a.Pulse1.LengthActive() {
		t.Fatalf("pulse 1 length counter should be active after timer-high write")
	}
}

func TestStatusReadReflectsChannelEnable(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x05) // enable pulse1 + noise
	a.WriteRegister(0x4003, 0x08) // load pulse1 length
	a.WriteRegister(0x400F, 0x08) // load noise length

	status := a.ReadStatus()
	if status&0x01 == 0 {
		t.Errorf("status bit0 (pulse1) not set")
	}
	if status&0x02 != 0 {
		t.Errorf("status bit1 (pulse2) should be clear, pulse2 never enabled")
	}
	if status&0x04 == 0 {
		t.Errorf("status bit2 (noise) not set")
	}
}

func TestDisablingChannelClearsLength(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08)
	if !a.Pulse1.LengthActive() {
		t.Fatalf("expected length active after load")
	}

	a.WriteRegister(0x4015, 0x00)
	if a.Pulse1.LengthActive() {
		t.Errorf("disabling channel via $4015 should clear its length counter")
	}
}

func TestFourStepModeAssertsFrameIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step, IRQ enabled

	for i := uint64(0); i <= step4Four*6; i++ {
		a.Tick()
	}

	if !a.FrameIRQPending() {
		t.Fatalf("expected frame IRQ pending after step 4 of 4-step sequence")
	}
	status := a.ReadStatus()
	if status&0x40 == 0 {
		t.Errorf("status bit6 should report frame IRQ")
	}
	if a.FrameIRQPending() {
		t.Errorf("reading status should clear the frame IRQ flag")
	}
}

func TestFiveStepModeNeverAssertsIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x80) // 5-step mode

	for i := uint64(0); i <= (step5Five+10)*6; i++ {
		a.Tick()
	}

	if a.FrameIRQPending() {
		t.Errorf("5-step mode must never assert the frame IRQ")
	}
}

func TestIRQInhibitSuppressesFrameIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x40) // 4-step, IRQ inhibited

	for i := uint64(0); i <= step4Four*6; i++ {
		a.Tick()
	}

	if a.FrameIRQPending() {
		t.Errorf("IRQ inhibit bit should suppress the frame IRQ")
	}
}

func TestSweepMutesLowPeriodPulse(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x3F) // constant volume, max
	a.WriteRegister(0x4002, 0x02)
	a.WriteRegister(0x4003, 0x08) // period = 2, well under the 8 floor

	if a.Pulse1.Output() != 0 {
		t.Errorf("pulse with period < 8 should be muted regardless of duty/volume")
	}
}

func TestNoiseOutputRespectsLengthCounter(t *testing.T) {
	a := New()
	a.WriteRegister(0x400C, 0x0F) // constant volume 15
	a.WriteRegister(0x400E, 0x00)
	// Never enabled via $4015: length counter stays at zero.
	a.WriteRegister(0x400F, 0x08)

	if a.Noise.Output() != 0 {
		t.Errorf("noise channel output should be 0 while disabled at $4015")
	}
}
