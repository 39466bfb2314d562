// Package input implements the NES's two controller ports at $4016/$4017.
package input

// Button identifies one of the eight standard controller buttons, ordered
// to match the shift register's read order (A first, Right last).
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single NES gamepad: a strobe latch feeding an 8-bit
// shift register that the CPU drains one bit per read.
type Controller struct {
	buttons       uint8
	shiftRegister uint8
	strobe        bool
}

// New creates a released (no buttons held) controller.
func New() *Controller { return &Controller{} }

// SetButton sets or clears a single button's held state.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// SetButtons replaces all eight button states at once, in A, B, Select,
// Start, Up, Down, Left, Right order.
func (c *Controller) SetButtons(pressed [8]bool) {
	var value uint8
	for i, down := range pressed {
		if down {
			value |= 1 << uint(i)
		}
	}
	c.buttons = value
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// IsPressed reports whether the given button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to the controller's strobe line. While strobe is
// held high the shift register continuously reloads from live button
// state; the falling edge latches it for the upcoming serial read.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// Read shifts out the next button bit, LSB first. Once all 8 bits have
// been read, subsequent reads return 1 (open-bus high on real hardware).
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	result := c.shiftRegister & 1
	c.shiftRegister = (c.shiftRegister >> 1) | 0x80
	return result
}

// Reset clears button state and the shift register.
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
}

// Ports owns both controller ports and implements memory.InputInterface
// over the CPU-visible $4016/$4017 window.
type Ports struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewPorts creates a pair of idle controllers.
func NewPorts() *Ports {
	return &Ports{Controller1: New(), Controller2: New()}
}

// Reset resets both controllers.
func (p *Ports) Reset() {
	p.Controller1.Reset()
	p.Controller2.Reset()
}

// Read services a CPU read of $4016 or $4017. Controller 2's upper bits
// read back as 0x40 set, matching the open-bus behavior real NES hardware
// exhibits on that port.
func (p *Ports) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return p.Controller1.Read()
	case 0x4017:
		return p.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write services a CPU write to $4016; the strobe line is wired to both
// controller ports simultaneously.
func (p *Ports) Write(address uint16, value uint8) {
	if address == 0x4016 {
		p.Controller1.Write(value)
		p.Controller2.Write(value)
	}
}
