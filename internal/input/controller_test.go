package input

import "testing"

func TestControllerReadOrderMatchesButtonLayout(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, true, false, false, false, true}) // A, Start, Right
	c.Write(1) // strobe high
	c.Write(0) // strobe low, latch

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		got := c.Read()
		if got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestControllerReadPastEighthBitReturnsOne(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if got := c.Read(); got != 1 {
		t.Errorf("9th read = %d, want 1 (open bus high)", got)
	}
}

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(1) // strobe held high
	if got := c.Read(); got != 1 {
		t.Errorf("read while strobed = %d, want 1", got)
	}
	if got := c.Read(); got != 1 {
		t.Errorf("repeated read while strobed = %d, want 1 (no shifting)", got)
	}
}

func TestPortsSecondControllerHighBitSet(t *testing.T) {
	p := NewPorts()
	p.Write(0x4016, 1)
	p.Write(0x4016, 0)
	if got := p.Read(0x4017); got&0x40 == 0 {
		t.Errorf("$4017 read = %#02x, want bit 6 set", got)
	}
}

func TestPortsStrobeWritesBothControllers(t *testing.T) {
	p := NewPorts()
	p.Controller2.SetButton(ButtonA, true)
	p.Write(0x4016, 1)
	p.Write(0x4016, 0)
	if got := p.Read(0x4017); got&1 == 0 {
		t.Errorf("controller 2 bit0 = 0, want button A bit set")
	}
}
