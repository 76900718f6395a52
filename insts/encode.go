package insts

// Instruction word encoders, used by tests and tooling to assemble small
// programs without an external toolchain.

// EncodeR encodes an R-type instruction.
func EncodeR(opcode uint32, rd uint8, funct3 uint32, rs1, rs2 uint8, funct7 uint32) uint32 {
	return funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 |
		uint32(rd)<<7 | opcode
}

// EncodeI encodes an I-type instruction with a 12-bit signed immediate.
func EncodeI(opcode uint32, rd uint8, funct3 uint32, rs1 uint8, imm int32) uint32 {
	return uint32(imm&0xFFF)<<20 | uint32(rs1)<<15 | funct3<<12 |
		uint32(rd)<<7 | opcode
}

// EncodeS encodes an S-type instruction.
func EncodeS(opcode uint32, funct3 uint32, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm & 0xFFF)
	return (u>>5)<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 |
		(u&0x1F)<<7 | opcode
}

// EncodeB encodes a B-type instruction. The offset is in bytes and must
// be even.
func EncodeB(opcode uint32, funct3 uint32, rs1, rs2 uint8, offset int32) uint32 {
	u := uint32(offset)
	return (u>>12&0x1)<<31 | (u>>5&0x3F)<<25 | uint32(rs2)<<20 |
		uint32(rs1)<<15 | funct3<<12 | (u>>1&0xF)<<8 | (u>>11&0x1)<<7 | opcode
}

// EncodeU encodes a U-type instruction from a 20-bit upper immediate.
func EncodeU(opcode uint32, rd uint8, imm20 uint32) uint32 {
	return imm20<<12 | uint32(rd)<<7 | opcode
}

// EncodeJ encodes a J-type instruction. The offset is in bytes and must
// be even.
func EncodeJ(opcode uint32, rd uint8, offset int32) uint32 {
	u := uint32(offset)
	return (u>>20&0x1)<<31 | (u>>1&0x3FF)<<21 | (u>>11&0x1)<<20 |
		(u>>12&0xFF)<<12 | uint32(rd)<<7 | opcode
}

// Convenience encoders for the instructions the tests use most.

// ADDI encodes addi rd, rs1, imm.
func ADDI(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpcodeOpImm, rd, 0x0, rs1, imm) }

// ADD encodes add rd, rs1, rs2.
func ADD(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeOp, rd, 0x0, rs1, rs2, 0x00) }

// SUB encodes sub rd, rs1, rs2.
func SUB(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeOp, rd, 0x0, rs1, rs2, 0x20) }

// LW encodes lw rd, offset(rs1).
func LW(rd, rs1 uint8, offset int32) uint32 { return EncodeI(OpcodeLoad, rd, 0x2, rs1, offset) }

// SW encodes sw rs2, offset(rs1).
func SW(rs2, rs1 uint8, offset int32) uint32 { return EncodeS(OpcodeStore, 0x2, rs1, rs2, offset) }

// BEQ encodes beq rs1, rs2, offset.
func BEQ(rs1, rs2 uint8, offset int32) uint32 { return EncodeB(OpcodeBranch, 0x0, rs1, rs2, offset) }

// JAL encodes jal rd, offset.
func JAL(rd uint8, offset int32) uint32 { return EncodeJ(OpcodeJal, rd, offset) }

// JALR encodes jalr rd, offset(rs1).
func JALR(rd, rs1 uint8, offset int32) uint32 { return EncodeI(OpcodeJalr, rd, 0x0, rs1, offset) }

// LUI encodes lui rd, imm20.
func LUI(rd uint8, imm20 uint32) uint32 { return EncodeU(OpcodeLui, rd, imm20) }

// AUIPC encodes auipc rd, imm20.
func AUIPC(rd uint8, imm20 uint32) uint32 { return EncodeU(OpcodeAuipc, rd, imm20) }
