// Package pipeline provides the 5-stage in-order RV32 pipeline model.
package pipeline

import "github.com/microrv/rvsoc/insts"

// DecodeLatch carries the fetched instruction into the decode stage
// (the IF/ID boundary). It can be held (stall) or cleared (flush); flush
// wins when both apply in the same cycle.
type DecodeLatch struct {
	// Valid indicates the latch holds a live instruction.
	Valid bool

	// PC is the fetch address of the instruction.
	PC uint32

	// PCPlus4 is the sequential successor address.
	PCPlus4 uint32

	// Instr is the raw 32-bit instruction word.
	Instr uint32
}

// Clear squashes the latch. The instruction word becomes NOP so a
// squashed slot decodes to the all-disabled control bundle.
func (l *DecodeLatch) Clear() {
	*l = DecodeLatch{Instr: insts.NOP}
}

// ExecuteLatch carries the decoded control bundle and operands into the
// execute stage (the ID/EX boundary).
type ExecuteLatch struct {
	Valid bool

	PC      uint32
	PCPlus4 uint32

	// Ctrl is the control bundle produced by decode, carried unchanged.
	Ctrl insts.Control

	// RD1 and RD2 are the register-file values read in decode.
	RD1 uint32
	RD2 uint32

	// Register indices for the hazard/forwarding unit.
	Rs1 uint8
	Rs2 uint8
	Rd  uint8

	// Imm is the extended immediate selected by ImmSrc.
	Imm uint32
}

// Clear squashes the latch: the zero control bundle is the no-op bundle,
// and data fields are don't-care.
func (l *ExecuteLatch) Clear() {
	*l = ExecuteLatch{}
}

// MemoryLatch carries the execute results into the memory stage (the
// EX/MEM boundary).
type MemoryLatch struct {
	Valid bool

	Ctrl insts.Control

	// ALUResult is the computed value, or the access address for
	// loads/stores and MMIO.
	ALUResult uint32

	// WriteData is the (forwarded) rs2 value for stores.
	WriteData uint32

	// UOut is the U-type output path value (lui/auipc).
	UOut uint32

	PCPlus4 uint32
	Rd      uint8
}

// Clear squashes the latch.
func (l *MemoryLatch) Clear() {
	*l = MemoryLatch{}
}

// WritebackLatch carries the memory-stage results into writeback (the
// MEM/WB boundary).
type WritebackLatch struct {
	Valid bool

	Ctrl insts.Control

	ALUResult uint32

	// ReadData is the memory/MMIO read value.
	ReadData uint32

	UOut    uint32
	PCPlus4 uint32
	Rd      uint8
}

// Clear squashes the latch.
func (l *WritebackLatch) Clear() {
	*l = WritebackLatch{}
}
