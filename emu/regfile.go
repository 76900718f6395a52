// Package emu provides the architectural state primitives of the core:
// register file, ALU, and the instruction/data memories.
package emu

// RegFile is the 32-entry general-purpose register file with two read
// ports and one write port. Register 0 is hard-wired to zero: the file
// itself drops writes to x0, so readers never need to special-case it.
type RegFile struct {
	x [32]uint32
}

// NewRegFile creates a register file with all registers zero.
func NewRegFile() *RegFile {
	return &RegFile{}
}

// Read returns the value of register reg.
func (r *RegFile) Read(reg uint8) uint32 {
	return r.x[reg&0x1F]
}

// Write stores value into register reg. Writes to register 0 are dropped.
func (r *RegFile) Write(reg uint8, value uint32) {
	if reg&0x1F == 0 {
		return
	}
	r.x[reg&0x1F] = value
}
