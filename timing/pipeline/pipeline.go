package pipeline

import (
	"github.com/microrv/rvsoc/emu"
	"github.com/microrv/rvsoc/insts"
)

// Statistics holds pipeline performance counters.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of cycles the fetch stage was held.
	Stalls uint64
	// Flushes is the number of taken-redirect flushes.
	Flushes uint64
	// DataHazards is the number of cycles a forwarding path was active.
	DataHazards uint64
}

// CPI returns the cycles per retired instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Pipeline is the 5-stage in-order RV32 pipeline:
// Fetch (IF) -> Decode (ID) -> Execute (EX) -> Memory (MEM) -> Writeback (WB).
//
// Tick evaluates stages back-to-front (WB, MEM, EX, ID, IF), computing the
// next latch contents combinationally and committing them at cycle end.
// The hazard unit's stall/flush decisions are therefore same-cycle: they
// gate the commit of the very cycle that produced them.
type Pipeline struct {
	// Pipeline latches.
	dec DecodeLatch
	ex  ExecuteLatch
	mem MemoryLatch
	wb  WritebackLatch

	// Stages.
	fetchStage     *FetchStage
	decodeStage    *DecodeStage
	executeStage   *ExecuteStage
	memoryStage    *MemoryStage
	writebackStage *WritebackStage

	// Hazard detection.
	hazardUnit *HazardUnit

	regFile *emu.RegFile

	// Program counter.
	pc uint32

	stats Statistics
}

// NewPipeline creates a pipeline over the given register file,
// instruction memory, and memory-stage router.
func NewPipeline(regFile *emu.RegFile, imem *emu.InstrMem, router *Router) *Pipeline {
	return &Pipeline{
		fetchStage:     NewFetchStage(imem),
		decodeStage:    NewDecodeStage(regFile),
		executeStage:   NewExecuteStage(),
		memoryStage:    NewMemoryStage(router),
		writebackStage: NewWritebackStage(regFile),
		hazardUnit:     NewHazardUnit(),
		regFile:        regFile,
	}
}

// PC returns the current fetch address.
func (p *Pipeline) PC() uint32 {
	return p.pc
}

// SetPC sets the fetch address.
func (p *Pipeline) SetPC(pc uint32) {
	p.pc = pc
}

// Stats returns the pipeline performance counters.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// DecodeLatchValue returns the current IF/ID latch contents.
func (p *Pipeline) DecodeLatchValue() DecodeLatch { return p.dec }

// ExecuteLatchValue returns the current ID/EX latch contents.
func (p *Pipeline) ExecuteLatchValue() ExecuteLatch { return p.ex }

// MemoryLatchValue returns the current EX/MEM latch contents.
func (p *Pipeline) MemoryLatchValue() MemoryLatch { return p.mem }

// WritebackLatchValue returns the current MEM/WB latch contents.
func (p *Pipeline) WritebackLatchValue() WritebackLatch { return p.wb }

// Tick advances the pipeline by one clock cycle. extStall is the
// cpu_stall line from the UART loader: while it is held, the PC and the
// decode latch freeze (fetch results are discarded and retried) so no
// instruction is decoded from a word the loader is mid-write on.
// Instructions already past decode drain normally.
func (p *Pipeline) Tick(extStall bool) {
	p.stats.Cycles++

	// Writeback. Runs first so the register write lands before this
	// cycle's decode-stage register read (write-then-read ordering
	// within one cycle). The selected result also feeds the
	// writeback-stage forwarding path below.
	resultW := p.writebackStage.Writeback(&p.wb)
	if p.wb.Valid {
		p.stats.Instructions++
	}

	// Memory. The routed access for the instruction latched in EX/MEM.
	readData := p.memoryStage.Access(&p.mem)
	var nextWB WritebackLatch
	if p.mem.Valid {
		nextWB = WritebackLatch{
			Valid:     true,
			Ctrl:      p.mem.Ctrl,
			ALUResult: p.mem.ALUResult,
			ReadData:  readData,
			UOut:      p.mem.UOut,
			PCPlus4:   p.mem.PCPlus4,
			Rd:        p.mem.Rd,
		}
	}

	// Execute, with operand forwarding. Forwarding decisions depend only
	// on latched register indices, so they resolve before the ALU runs.
	fwd := p.hazardUnit.DetectForwarding(&p.ex, &p.mem, &p.wb)
	if fwd.ForwardAE != ForwardNone || fwd.ForwardBE != ForwardNone {
		p.stats.DataHazards++
	}
	srcA := p.forwardedValue(fwd.ForwardAE, p.ex.RD1, resultW)
	writeData := p.forwardedValue(fwd.ForwardBE, p.ex.RD2, resultW)

	var execRes ExecuteResult
	if p.ex.Valid {
		execRes = p.executeStage.Execute(&p.ex, srcA, writeData)
	}

	var nextMem MemoryLatch
	if p.ex.Valid {
		nextMem = MemoryLatch{
			Valid:     true,
			Ctrl:      p.ex.Ctrl,
			ALUResult: execRes.ALUResult,
			WriteData: execRes.WriteData,
			UOut:      execRes.UOut,
			PCPlus4:   p.ex.PCPlus4,
			Rd:        p.ex.Rd,
		}
	}

	// Hazard resolution. Load-use looks at the decode-stage source
	// indices straight off the latched instruction word; the redirect
	// condition comes from this cycle's execute stage.
	loadUse := p.dec.Valid &&
		p.hazardUnit.DetectLoadUse(&p.ex, insts.Rs1(p.dec.Instr), insts.Rs2(p.dec.Instr))
	hz := p.hazardUnit.ComputeStalls(loadUse, execRes.PCSrc)
	if extStall {
		// cpu_stall behaves like a load-use stall: hold F and D, bubble
		// E so the held instruction is not issued twice.
		hz.StallF = true
		hz.StallD = true
		hz.FlushE = true
	}
	if hz.StallF {
		p.stats.Stalls++
	}
	if hz.FlushD {
		p.stats.Flushes++
	}

	// Decode.
	var nextEx ExecuteLatch
	if p.dec.Valid {
		d := p.decodeStage.Decode(p.dec.Instr)
		nextEx = ExecuteLatch{
			Valid:   true,
			PC:      p.dec.PC,
			PCPlus4: p.dec.PCPlus4,
			Ctrl:    d.Ctrl,
			RD1:     d.RD1,
			RD2:     d.RD2,
			Rs1:     d.Rs1,
			Rs2:     d.Rs2,
			Rd:      d.Rd,
			Imm:     d.Imm,
		}
	}

	// Fetch.
	nextDec := DecodeLatch{
		Valid:   true,
		PC:      p.pc,
		PCPlus4: p.pc + 4,
		Instr:   p.fetchStage.Fetch(p.pc),
	}

	// Latch commit. Flush takes precedence over stall: a squashed
	// instruction must never retire.
	p.wb = nextWB
	p.mem = nextMem
	if hz.FlushE {
		p.ex.Clear()
	} else {
		p.ex = nextEx
	}
	if hz.FlushD {
		p.dec.Clear()
	} else if !hz.StallD {
		p.dec = nextDec
	}
	if !hz.StallF {
		if execRes.PCSrc {
			p.pc = execRes.Target
		} else {
			p.pc += 4
		}
	}
}

// forwardedValue resolves one operand according to the forwarding
// decision. Both forwarding paths carry the producer's selected result,
// so a U-type or link producer forwards its real value rather than a
// meaningless ALU output.
func (p *Pipeline) forwardedValue(fwd Forward, regValue, resultW uint32) uint32 {
	switch fwd {
	case ForwardMem:
		return p.memForwardValue()
	case ForwardWriteback:
		return resultW
	default:
		return regValue
	}
}

// memForwardValue is the value on the memory-stage forwarding bus. A
// load's data is not on it; that case is unreachable because load-use
// detection stalls the consumer for one cycle.
func (p *Pipeline) memForwardValue() uint32 {
	switch p.mem.Ctrl.ResultSrc {
	case insts.ResultUOut:
		return p.mem.UOut
	case insts.ResultPCPlus4:
		return p.mem.PCPlus4
	default:
		return p.mem.ALUResult
	}
}

// Reset returns the PC and all latch control state to the no-op power-on
// state. Register file and memory contents are untouched, matching the
// hardware reset, and statistics are preserved.
func (p *Pipeline) Reset() {
	p.pc = 0
	p.dec.Clear()
	p.ex.Clear()
	p.mem.Clear()
	p.wb.Clear()
}
