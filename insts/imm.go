package insts

// ImmFormat selects which immediate encoding the immediate generator
// extracts. It is carried through the pipeline as the 3-bit ImmSrc field
// of the control bundle.
type ImmFormat uint8

// Immediate formats.
const (
	ImmI ImmFormat = iota // loads, OP-IMM, jalr
	ImmS                  // stores
	ImmB                  // branches
	ImmJ                  // jal
	ImmU                  // lui, auipc
)

// Immediate extracts and sign/zero-extends the immediate encoded in word
// according to format. B and J immediates have their low bit hard-wired
// to zero.
func Immediate(word uint32, format ImmFormat) uint32 {
	switch format {
	case ImmI:
		return uint32(int32(word) >> 20)
	case ImmS:
		return uint32((int32(word)>>25)<<5 | int32((word>>7)&0x1F))
	case ImmB:
		return uint32((int32(word)>>31)<<12 |
			int32((word>>7)&0x1)<<11 |
			int32((word>>25)&0x3F)<<5 |
			int32((word>>8)&0xF)<<1)
	case ImmJ:
		return uint32((int32(word)>>31)<<20 |
			int32((word>>12)&0xFF)<<12 |
			int32((word>>20)&0x1)<<11 |
			int32((word>>21)&0x3FF)<<1)
	case ImmU:
		return word & 0xFFFFF000
	default:
		return 0
	}
}
