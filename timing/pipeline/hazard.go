package pipeline

import "github.com/microrv/rvsoc/insts"

// Forward selects the source for an execute-stage operand.
type Forward uint8

const (
	// ForwardNone uses the register-file value read in decode (the
	// oldest producer).
	ForwardNone Forward = iota
	// ForwardMem uses the memory-stage ALU result (the most recent
	// in-flight producer).
	ForwardMem
	// ForwardWriteback uses the writeback-stage selected result.
	ForwardWriteback
)

// ForwardingResult carries the per-operand forwarding decisions. AE is
// the first ALU operand path; BE is the second, pre-immediate-mux path,
// which also feeds the store-data value.
type ForwardingResult struct {
	ForwardAE Forward
	ForwardBE Forward
}

// Signals is the stall/flush bundle the hazard unit emits each cycle.
type Signals struct {
	// StallF holds the PC; StallD holds the decode latch.
	StallF bool
	StallD bool

	// FlushD squashes the decode latch (wrong-path fetch after a taken
	// branch). FlushE squashes the execute latch (load-use bubble, or
	// the wrong-path instruction that was mid-decode).
	FlushD bool
	FlushE bool
}

// HazardUnit computes forwarding, stall, and flush decisions every cycle
// from cross-stage register-index comparisons. It holds no state: every
// output is a pure function of the current latch contents.
type HazardUnit struct{}

// NewHazardUnit creates a hazard/forwarding unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// DetectForwarding resolves both execute-stage operand paths against the
// in-flight destinations in the memory and writeback stages. The most
// recent producer wins; register 0 never forwards.
func (h *HazardUnit) DetectForwarding(ex *ExecuteLatch, mem *MemoryLatch, wb *WritebackLatch) ForwardingResult {
	if !ex.Valid {
		return ForwardingResult{}
	}
	return ForwardingResult{
		ForwardAE: h.forwardForReg(ex.Rs1, mem, wb),
		ForwardBE: h.forwardForReg(ex.Rs2, mem, wb),
	}
}

func (h *HazardUnit) forwardForReg(rs uint8, mem *MemoryLatch, wb *WritebackLatch) Forward {
	if rs == 0 {
		return ForwardNone
	}
	if mem.Valid && mem.Ctrl.RegWrite && mem.Rd == rs {
		return ForwardMem
	}
	if wb.Valid && wb.Ctrl.RegWrite && wb.Rd == rs {
		return ForwardWriteback
	}
	return ForwardNone
}

// DetectLoadUse reports a load in execute whose destination feeds either
// decode-stage source register. The loaded value is not available until
// after the memory stage, so forwarding cannot cover this case and one
// stall cycle is required.
func (h *HazardUnit) DetectLoadUse(ex *ExecuteLatch, rs1D, rs2D uint8) bool {
	if !ex.Valid || ex.Ctrl.ResultSrc != insts.ResultMem {
		return false
	}
	if ex.Rd == 0 {
		return false
	}
	return ex.Rd == rs1D || ex.Rd == rs2D
}

// ComputeStalls folds the load-use and redirect conditions into the
// stall/flush bundle. The two FlushE reasons combine with OR; neither
// overrides the other.
func (h *HazardUnit) ComputeStalls(loadUse, pcSrcE bool) Signals {
	return Signals{
		StallF: loadUse,
		StallD: loadUse,
		FlushD: pcSrcE,
		FlushE: loadUse || pcSrcE,
	}
}
