package pipeline

import (
	"github.com/microrv/rvsoc/emu"
	"github.com/microrv/rvsoc/insts"
)

// FetchStage reads instruction words from instruction memory.
type FetchStage struct {
	imem *emu.InstrMem
}

// NewFetchStage creates a fetch stage over the given instruction memory.
func NewFetchStage(imem *emu.InstrMem) *FetchStage {
	return &FetchStage{imem: imem}
}

// Fetch reads the instruction at pc. Out-of-range fetches return NOP.
func (s *FetchStage) Fetch(pc uint32) uint32 {
	return s.imem.Fetch(pc)
}

// DecodeStage produces the control bundle, reads the register file, and
// extracts the immediate.
type DecodeStage struct {
	regFile *emu.RegFile
	decoder *insts.Decoder
}

// NewDecodeStage creates a decode stage over the given register file.
func NewDecodeStage(regFile *emu.RegFile) *DecodeStage {
	return &DecodeStage{
		regFile: regFile,
		decoder: insts.NewDecoder(),
	}
}

// DecodeResult holds the decode-stage outputs for one instruction.
type DecodeResult struct {
	Ctrl insts.Control

	RD1 uint32
	RD2 uint32

	Rs1 uint8
	Rs2 uint8
	Rd  uint8

	Imm uint32
}

// Decode decodes one instruction word.
func (s *DecodeStage) Decode(word uint32) DecodeResult {
	ctrl := s.decoder.Decode(word)
	rs1 := insts.Rs1(word)
	rs2 := insts.Rs2(word)

	return DecodeResult{
		Ctrl: ctrl,
		RD1:  s.regFile.Read(rs1),
		RD2:  s.regFile.Read(rs2),
		Rs1:  rs1,
		Rs2:  rs2,
		Rd:   insts.Rd(word),
		Imm:  insts.Immediate(word, ctrl.ImmSrc),
	}
}

// ExecuteStage runs the ALU and resolves branch/jump redirects.
type ExecuteStage struct {
	alu *emu.ALU
}

// NewExecuteStage creates an execute stage.
func NewExecuteStage() *ExecuteStage {
	return &ExecuteStage{alu: emu.NewALU()}
}

// ExecuteResult holds the execute-stage outputs for one instruction.
type ExecuteResult struct {
	ALUResult uint32

	// WriteData is the forwarded rs2 value bound for the memory stage.
	WriteData uint32

	// PCSrc is true when the redirect target is taken this cycle.
	PCSrc  bool
	Target uint32

	// UOut is the U-type output path value.
	UOut uint32
}

// Execute computes the ALU result and redirect decision. srcA is the
// forwarded rs1 operand; writeData is the forwarded rs2 operand, used
// both as the pre-immediate ALU operand and as the store value.
func (s *ExecuteStage) Execute(ex *ExecuteLatch, srcA, writeData uint32) ExecuteResult {
	srcB := writeData
	if ex.Ctrl.ALUSrc {
		srcB = ex.Imm
	}
	aluResult, zero := s.alu.Execute(ex.Ctrl.ALUControl, srcA, srcB)

	// Target base: rs1 value for jalr, PC otherwise. The hardware feeds
	// the raw decode-stage RD1 here, not the forwarded operand.
	base := ex.PC
	if ex.Ctrl.JalSrc {
		base = ex.RD1
	}
	// Both arms of the USrc selector resolve to the same extended
	// immediate, so the selector does not appear in the target sum.
	target := base + ex.Imm

	uout := target
	if ex.Ctrl.UOControl {
		uout = ex.Imm
	}

	return ExecuteResult{
		ALUResult: aluResult,
		WriteData: writeData,
		PCSrc:     (zero && ex.Ctrl.Branch) || ex.Ctrl.Jump,
		Target:    target,
		UOut:      uout,
	}
}

// MemoryStage performs the routed memory access for the instruction in
// the EX/MEM latch.
type MemoryStage struct {
	router *Router
}

// NewMemoryStage creates a memory stage over the given MMIO router.
func NewMemoryStage(router *Router) *MemoryStage {
	return &MemoryStage{router: router}
}

// Access performs the store and/or load for the latched instruction and
// returns the read data (zero when the instruction does not load).
func (s *MemoryStage) Access(mem *MemoryLatch) uint32 {
	if !mem.Valid {
		return 0
	}
	if mem.Ctrl.MemWrite {
		s.router.Write(mem.ALUResult, mem.WriteData)
	}
	if mem.Ctrl.ResultSrc == insts.ResultMem {
		return s.router.Read(mem.ALUResult)
	}
	return 0
}

// WritebackStage selects the retiring result and commits the register
// write.
type WritebackStage struct {
	regFile *emu.RegFile
}

// NewWritebackStage creates a writeback stage over the given register
// file.
func NewWritebackStage(regFile *emu.RegFile) *WritebackStage {
	return &WritebackStage{regFile: regFile}
}

// Writeback commits the latched instruction's result. It returns the
// selected result so the execute stage can forward it in the same cycle.
func (s *WritebackStage) Writeback(wb *WritebackLatch) uint32 {
	var result uint32
	switch wb.Ctrl.ResultSrc {
	case insts.ResultALU:
		result = wb.ALUResult
	case insts.ResultMem:
		result = wb.ReadData
	case insts.ResultPCPlus4:
		result = wb.PCPlus4
	case insts.ResultUOut:
		result = wb.UOut
	}
	if wb.Valid && wb.Ctrl.RegWrite {
		s.regFile.Write(wb.Rd, result)
	}
	return result
}
