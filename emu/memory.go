package emu

import (
	"fmt"

	"github.com/microrv/rvsoc/insts"
)

// LoaderPort is the secondary bus-master port into instruction memory,
// driven by the UART loader. When WriteEnable is set the port owns the
// memory's write path for that cycle and the fetch path waits.
type LoaderPort struct {
	WriteEnable bool
	Address     uint32
	Data        uint32
}

// InstrMem is the bounded word-addressable instruction store. The core's
// fetch path is read-only; the UART loader port is the only writer.
// Out-of-range or unaligned fetches return the canonical NOP encoding.
type InstrMem struct {
	words []uint32

	checks      bool
	cycleWrites int
}

// NewInstrMem creates an instruction memory holding the given number of
// 32-bit words.
func NewInstrMem(words int) *InstrMem {
	return &InstrMem{words: make([]uint32, words)}
}

// EnableInvariantChecks makes the memory panic when two writes land in
// the same cycle. One writer per cycle holds by construction of the
// decode logic, so a violation is an internal bug, not a runtime error.
func (m *InstrMem) EnableInvariantChecks() {
	m.checks = true
}

// BeginCycle resets the per-cycle writer accounting. The core calls it
// once per clock tick.
func (m *InstrMem) BeginCycle() {
	m.cycleWrites = 0
}

// Size returns the capacity in words.
func (m *InstrMem) Size() int {
	return len(m.words)
}

// Fetch returns the instruction at byte address addr.
func (m *InstrMem) Fetch(addr uint32) uint32 {
	if addr&0x3 != 0 {
		return insts.NOP
	}
	idx := addr >> 2
	if idx >= uint32(len(m.words)) {
		return insts.NOP
	}
	return m.words[idx]
}

// Write commits one loader-port word at byte address addr. Out-of-range
// and unaligned writes are dropped silently.
func (m *InstrMem) Write(addr, word uint32) {
	m.noteWrite("instruction memory")
	if addr&0x3 != 0 {
		return
	}
	idx := addr >> 2
	if idx >= uint32(len(m.words)) {
		return
	}
	m.words[idx] = word
}

// LoadImage copies a program image into the low words of the memory.
// Words beyond the capacity are dropped. LoadImage models power-on
// initialization and bypasses the per-cycle writer accounting.
func (m *InstrMem) LoadImage(image []uint32) {
	for i, w := range image {
		if i >= len(m.words) {
			return
		}
		m.words[i] = w
	}
}

func (m *InstrMem) noteWrite(name string) {
	m.cycleWrites++
	if m.checks && m.cycleWrites > 1 {
		panic(fmt.Sprintf("%s: %d writes in one cycle", name, m.cycleWrites))
	}
}

// DataMem is the bounded word-addressable data store. Unaligned or
// out-of-range reads return zero; such writes are dropped. There is no
// trap architecture.
type DataMem struct {
	words []uint32

	checks      bool
	cycleWrites int
}

// NewDataMem creates a data memory holding the given number of 32-bit
// words.
func NewDataMem(words int) *DataMem {
	return &DataMem{words: make([]uint32, words)}
}

// EnableInvariantChecks makes the memory panic when two writes land in
// the same cycle.
func (m *DataMem) EnableInvariantChecks() {
	m.checks = true
}

// BeginCycle resets the per-cycle writer accounting.
func (m *DataMem) BeginCycle() {
	m.cycleWrites = 0
}

// Size returns the capacity in words.
func (m *DataMem) Size() int {
	return len(m.words)
}

// ReadWord returns the word at byte address addr.
func (m *DataMem) ReadWord(addr uint32) uint32 {
	if addr&0x3 != 0 {
		return 0
	}
	idx := addr >> 2
	if idx >= uint32(len(m.words)) {
		return 0
	}
	return m.words[idx]
}

// WriteWord stores a word at byte address addr.
func (m *DataMem) WriteWord(addr, value uint32) {
	m.cycleWrites++
	if m.checks && m.cycleWrites > 1 {
		panic(fmt.Sprintf("data memory: %d writes in one cycle", m.cycleWrites))
	}
	if addr&0x3 != 0 {
		return
	}
	idx := addr >> 2
	if idx >= uint32(len(m.words)) {
		return
	}
	m.words[idx] = value
}
