package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/microrv/rvsoc/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Context("loads and stores", func() {
		It("should decode lw", func() {
			c := decoder.Decode(insts.LW(2, 0, 4))

			Expect(c.RegWrite).To(BeTrue())
			Expect(c.MemWrite).To(BeFalse())
			Expect(c.ALUSrc).To(BeTrue())
			Expect(c.ResultSrc).To(Equal(insts.ResultMem))
			Expect(c.ImmSrc).To(Equal(insts.ImmI))
			Expect(c.ALUControl).To(Equal(insts.ALUAdd))
		})

		It("should decode sw", func() {
			c := decoder.Decode(insts.SW(1, 6, 0))

			Expect(c.RegWrite).To(BeFalse())
			Expect(c.MemWrite).To(BeTrue())
			Expect(c.ALUSrc).To(BeTrue())
			Expect(c.ImmSrc).To(Equal(insts.ImmS))
			Expect(c.ALUControl).To(Equal(insts.ALUAdd))
		})
	})

	Context("ALU instructions", func() {
		It("should decode addi", func() {
			c := decoder.Decode(insts.ADDI(1, 0, 1))

			Expect(c.RegWrite).To(BeTrue())
			Expect(c.ALUSrc).To(BeTrue())
			Expect(c.ResultSrc).To(Equal(insts.ResultALU))
			Expect(c.ALUControl).To(Equal(insts.ALUAdd))
		})

		It("should decode add", func() {
			c := decoder.Decode(insts.ADD(3, 1, 2))

			Expect(c.RegWrite).To(BeTrue())
			Expect(c.ALUSrc).To(BeFalse())
			Expect(c.ALUControl).To(Equal(insts.ALUAdd))
		})

		It("should decode sub via funct7", func() {
			c := decoder.Decode(insts.SUB(3, 1, 2))

			Expect(c.ALUControl).To(Equal(insts.ALUSub))
		})

		It("should decode srai via funct7 in the immediate form", func() {
			// srai x1, x2, 3
			word := insts.EncodeI(insts.OpcodeOpImm, 1, 0x5, 2, 3|0x400)
			c := decoder.Decode(word)

			Expect(c.ALUControl).To(Equal(insts.ALUSra))
		})

		It("should decode srli without funct7 bit 5", func() {
			word := insts.EncodeI(insts.OpcodeOpImm, 1, 0x5, 2, 3)
			c := decoder.Decode(word)

			Expect(c.ALUControl).To(Equal(insts.ALUSrl))
		})
	})

	Context("control transfer", func() {
		It("should decode beq", func() {
			c := decoder.Decode(insts.BEQ(1, 2, 8))

			Expect(c.Branch).To(BeTrue())
			Expect(c.Jump).To(BeFalse())
			Expect(c.RegWrite).To(BeFalse())
			Expect(c.ImmSrc).To(Equal(insts.ImmB))
			Expect(c.ALUControl).To(Equal(insts.ALUSub))
		})

		It("should decode jal", func() {
			c := decoder.Decode(insts.JAL(5, 8))

			Expect(c.Jump).To(BeTrue())
			Expect(c.JalSrc).To(BeFalse())
			Expect(c.RegWrite).To(BeTrue())
			Expect(c.ResultSrc).To(Equal(insts.ResultPCPlus4))
			Expect(c.ImmSrc).To(Equal(insts.ImmJ))
		})

		It("should decode jalr with the register base select", func() {
			c := decoder.Decode(insts.JALR(5, 1, 0))

			Expect(c.Jump).To(BeTrue())
			Expect(c.JalSrc).To(BeTrue())
			Expect(c.ResultSrc).To(Equal(insts.ResultPCPlus4))
			Expect(c.ImmSrc).To(Equal(insts.ImmI))
		})
	})

	Context("upper-immediate instructions", func() {
		It("should decode lui onto the U output path", func() {
			c := decoder.Decode(insts.LUI(6, 0x80000))

			Expect(c.RegWrite).To(BeTrue())
			Expect(c.USrc).To(BeTrue())
			Expect(c.UOControl).To(BeTrue())
			Expect(c.ResultSrc).To(Equal(insts.ResultUOut))
		})

		It("should decode auipc with UOControl clear", func() {
			c := decoder.Decode(insts.AUIPC(7, 1))

			Expect(c.USrc).To(BeTrue())
			Expect(c.UOControl).To(BeFalse())
			Expect(c.ResultSrc).To(Equal(insts.ResultUOut))
		})
	})

	Context("unknown opcodes", func() {
		It("should decode to the all-disabled bundle", func() {
			c := decoder.Decode(0x00000000)

			Expect(c).To(Equal(insts.Control{}))
		})
	})
})

var _ = Describe("Immediate generator", func() {
	It("should extract I-type immediates with sign extension", func() {
		Expect(insts.Immediate(insts.ADDI(1, 0, 1), insts.ImmI)).To(Equal(uint32(1)))
		Expect(insts.Immediate(insts.ADDI(1, 0, -1), insts.ImmI)).To(Equal(uint32(0xFFFFFFFF)))
	})

	It("should extract S-type immediates", func() {
		Expect(insts.Immediate(insts.SW(1, 6, 0), insts.ImmS)).To(Equal(uint32(0)))
		Expect(insts.Immediate(insts.SW(1, 6, 4), insts.ImmS)).To(Equal(uint32(4)))
		Expect(insts.Immediate(insts.SW(1, 6, -4), insts.ImmS)).To(Equal(uint32(0xFFFFFFFC)))
	})

	It("should extract B-type immediates with the low bit zeroed", func() {
		Expect(insts.Immediate(insts.BEQ(0, 0, 8), insts.ImmB)).To(Equal(uint32(8)))
		Expect(insts.Immediate(insts.BEQ(0, 0, -4), insts.ImmB)).To(Equal(uint32(0xFFFFFFFC)))
	})

	It("should extract J-type immediates", func() {
		Expect(insts.Immediate(insts.JAL(0, 0), insts.ImmJ)).To(Equal(uint32(0)))
		Expect(insts.Immediate(insts.JAL(0, 2048), insts.ImmJ)).To(Equal(uint32(2048)))
		Expect(insts.Immediate(insts.JAL(0, -8), insts.ImmJ)).To(Equal(uint32(0xFFFFFFF8)))
	})

	It("should extract U-type immediates without sign extension", func() {
		Expect(insts.Immediate(insts.LUI(6, 0x80000), insts.ImmU)).To(Equal(uint32(0x80000000)))
	})
})

var _ = Describe("Encoders", func() {
	It("should reproduce the reference encodings", func() {
		Expect(insts.ADDI(1, 0, 1)).To(Equal(uint32(0x00100093)))
		Expect(insts.LUI(6, 0x80000)).To(Equal(uint32(0x80000337)))
		Expect(insts.SW(1, 6, 0)).To(Equal(uint32(0x00132023)))
		Expect(insts.ADDI(0, 0, 0)).To(Equal(insts.NOP))
		Expect(insts.JAL(0, 0)).To(Equal(uint32(0x0000006F)))
	})

	It("should round-trip register fields", func() {
		word := insts.ADD(3, 1, 2)

		Expect(insts.Rd(word)).To(Equal(uint8(3)))
		Expect(insts.Rs1(word)).To(Equal(uint8(1)))
		Expect(insts.Rs2(word)).To(Equal(uint8(2)))
		Expect(insts.Opcode(word)).To(Equal(insts.OpcodeOp))
	})
})
