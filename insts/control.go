package insts

// ALUOp is the 4-bit ALU operation select produced by the ALU-operation
// decoder and consumed by the execute stage.
type ALUOp uint8

// ALU operations.
const (
	ALUAdd ALUOp = iota
	ALUSub
	ALUAnd
	ALUOr
	ALUXor
	ALUSlt
	ALUSltu
	ALUSll
	ALUSrl
	ALUSra
)

// ResultSrc selects which value the writeback stage commits to the
// register file.
type ResultSrc uint8

// Writeback result sources.
const (
	ResultALU ResultSrc = iota // ALU result
	ResultMem                  // memory/MMIO read data
	ResultPCPlus4              // link address (jal, jalr)
	ResultUOut                 // U-type output (lui, auipc)
)

// Control is the per-instruction control bundle. It is produced once in
// the decode stage and carried unchanged through the later pipeline
// latches. The zero value is the no-op bundle used for flushed slots.
type Control struct {
	RegWrite bool
	MemWrite bool
	Jump     bool
	Branch   bool

	// ALUSrc selects the immediate (rather than the forwarded rs2 value)
	// as the second ALU operand.
	ALUSrc bool

	// JalSrc selects the rs1 value (rather than the PC) as the
	// branch/jump target base, for jalr.
	JalSrc bool

	// USrc and UOControl steer the U-type output path (lui/auipc).
	USrc      bool
	UOControl bool

	ResultSrc  ResultSrc
	ALUControl ALUOp
	ImmSrc     ImmFormat
}

// Decoder is the main control decoder: it maps an instruction word to its
// control bundle, including the ALU-operation sub-decode. Unknown opcodes
// decode to the all-disabled bundle and retire as bubbles.
type Decoder struct{}

// NewDecoder creates a control decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode produces the control bundle for one instruction word.
func (d *Decoder) Decode(word uint32) Control {
	var c Control

	switch Opcode(word) {
	case OpcodeLoad:
		c.RegWrite = true
		c.ALUSrc = true
		c.ResultSrc = ResultMem
		c.ImmSrc = ImmI
		c.ALUControl = ALUAdd
	case OpcodeStore:
		c.MemWrite = true
		c.ALUSrc = true
		c.ImmSrc = ImmS
		c.ALUControl = ALUAdd
	case OpcodeOpImm:
		c.RegWrite = true
		c.ALUSrc = true
		c.ImmSrc = ImmI
		c.ALUControl = d.aluControl(Funct3(word), Funct7(word), false)
	case OpcodeOp:
		c.RegWrite = true
		c.ALUControl = d.aluControl(Funct3(word), Funct7(word), true)
	case OpcodeBranch:
		c.Branch = true
		c.ImmSrc = ImmB
		c.ALUControl = ALUSub
	case OpcodeJal:
		c.RegWrite = true
		c.Jump = true
		c.ImmSrc = ImmJ
		c.ResultSrc = ResultPCPlus4
	case OpcodeJalr:
		c.RegWrite = true
		c.Jump = true
		c.JalSrc = true
		c.ImmSrc = ImmI
		c.ResultSrc = ResultPCPlus4
	case OpcodeLui:
		c.RegWrite = true
		c.USrc = true
		c.UOControl = true
		c.ImmSrc = ImmU
		c.ResultSrc = ResultUOut
	case OpcodeAuipc:
		c.RegWrite = true
		c.USrc = true
		c.ImmSrc = ImmU
		c.ResultSrc = ResultUOut
	}

	return c
}

// aluControl is the ALU-operation decoder for OP and OP-IMM instructions.
// isReg distinguishes the register form, where funct7 bit 5 selects sub.
// For the immediate form only the shift-right encodings carry funct7.
func (d *Decoder) aluControl(funct3, funct7 uint32, isReg bool) ALUOp {
	switch funct3 {
	case 0x0:
		if isReg && funct7&0x20 != 0 {
			return ALUSub
		}
		return ALUAdd
	case 0x1:
		return ALUSll
	case 0x2:
		return ALUSlt
	case 0x3:
		return ALUSltu
	case 0x4:
		return ALUXor
	case 0x5:
		if funct7&0x20 != 0 {
			return ALUSra
		}
		return ALUSrl
	case 0x6:
		return ALUOr
	default:
		return ALUAnd
	}
}
