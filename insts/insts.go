// Package insts provides RV32I instruction word definitions and decoding.
package insts

// NOP is the canonical no-op encoding (addi x0, x0, 0). Out-of-range
// instruction fetches resolve to this word.
const NOP uint32 = 0x00000013

// Base opcodes (instruction word bits [6:0]).
const (
	OpcodeLoad   uint32 = 0x03 // lw
	OpcodeOpImm  uint32 = 0x13 // addi, andi, ori, xori, slti, sltiu, shifts
	OpcodeAuipc  uint32 = 0x17 // auipc
	OpcodeStore  uint32 = 0x23 // sw
	OpcodeOp     uint32 = 0x33 // add, sub, and, or, xor, slt, sltu, shifts
	OpcodeLui    uint32 = 0x37 // lui
	OpcodeBranch uint32 = 0x63 // beq
	OpcodeJalr   uint32 = 0x67 // jalr
	OpcodeJal    uint32 = 0x6F // jal
)

// Opcode extracts the base opcode field.
func Opcode(word uint32) uint32 { return word & 0x7F }

// Rd extracts the destination register index.
func Rd(word uint32) uint8 { return uint8((word >> 7) & 0x1F) }

// Funct3 extracts the funct3 field.
func Funct3(word uint32) uint32 { return (word >> 12) & 0x7 }

// Rs1 extracts the first source register index.
func Rs1(word uint32) uint8 { return uint8((word >> 15) & 0x1F) }

// Rs2 extracts the second source register index.
func Rs2(word uint32) uint8 { return uint8((word >> 20) & 0x1F) }

// Funct7 extracts the funct7 field.
func Funct7(word uint32) uint32 { return (word >> 25) & 0x7F }
