// Package periph implements the memory-mapped peripherals of the SoC:
// the single-bit GPIO output and the UART with its instruction-memory
// loader path.
package periph

// GPIOAddr is the exact-match byte address of the GPIO register.
const GPIOAddr uint32 = 0x80000000

// GPIO is a single-bit output register. A write latches bit 0 of the
// stored word into the pin; a read returns the pin zero-extended to 32
// bits.
type GPIO struct {
	pin bool
}

// NewGPIO creates a GPIO peripheral with the pin low.
func NewGPIO() *GPIO {
	return &GPIO{}
}

// Write latches bit 0 of value into the pin.
func (g *GPIO) Write(value uint32) {
	g.pin = value&1 == 1
}

// Read returns {31'b0, pin}.
func (g *GPIO) Read() uint32 {
	if g.pin {
		return 1
	}
	return 0
}

// Pin returns the current pin level.
func (g *GPIO) Pin() bool {
	return g.pin
}

// Reset drives the pin low.
func (g *GPIO) Reset() {
	g.pin = false
}
