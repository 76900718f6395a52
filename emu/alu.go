package emu

import "github.com/microrv/rvsoc/insts"

// ALU is the combinational arithmetic/logic/compare unit. It holds no
// state; Execute is a pure function of its operands.
type ALU struct{}

// NewALU creates an ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Execute computes op over srcA and srcB. It returns the result and the
// zero flag, which the execute stage combines with the Branch control bit
// to resolve taken branches. Shift amounts use the low 5 bits of srcB.
func (a *ALU) Execute(op insts.ALUOp, srcA, srcB uint32) (uint32, bool) {
	var result uint32

	switch op {
	case insts.ALUAdd:
		result = srcA + srcB
	case insts.ALUSub:
		result = srcA - srcB
	case insts.ALUAnd:
		result = srcA & srcB
	case insts.ALUOr:
		result = srcA | srcB
	case insts.ALUXor:
		result = srcA ^ srcB
	case insts.ALUSlt:
		if int32(srcA) < int32(srcB) {
			result = 1
		}
	case insts.ALUSltu:
		if srcA < srcB {
			result = 1
		}
	case insts.ALUSll:
		result = srcA << (srcB & 0x1F)
	case insts.ALUSrl:
		result = srcA >> (srcB & 0x1F)
	case insts.ALUSra:
		result = uint32(int32(srcA) >> (srcB & 0x1F))
	}

	return result, result == 0
}
