package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/microrv/rvsoc/config"
	"github.com/microrv/rvsoc/insts"
	"github.com/microrv/rvsoc/loader"
	"github.com/microrv/rvsoc/timing/core"
)

// feedWord delivers one instruction word to the UART a byte at a time,
// least significant byte first, the way the serial receiver would.
func feedWord(soc *core.Core, word uint32) {
	for shift := 0; shift < 32; shift += 8 {
		soc.UART().RecvByte(byte(word >> shift))
	}
}

var _ = Describe("Core", func() {
	var soc *core.Core

	BeforeEach(func() {
		soc = core.New(config.Default(), core.WithInvariantChecks())
	})

	Context("GPIO scenario", func() {
		It("should raise the pin and leave data memory untouched", func() {
			soc.LoadProgram([]uint32{
				insts.ADDI(1, 0, 1),
				insts.LUI(6, 0x80000),
				insts.SW(1, 6, 0),
			})

			// Three cycles past the store's writeback.
			soc.RunCycles(10)

			Expect(soc.GPIO().Pin()).To(BeTrue())
			Expect(soc.DataMem().ReadWord(0)).To(Equal(uint32(0)))
		})

		It("should run the built-in bootstrap to the same effect", func() {
			soc.LoadProgram(loader.Bootstrap())

			soc.RunCycles(50)

			Expect(soc.GPIO().Pin()).To(BeTrue())
			Expect(soc.DataMem().ReadWord(0)).To(Equal(uint32(0)))
		})

		It("should read the pin back through a load", func() {
			soc.LoadProgram([]uint32{
				insts.ADDI(1, 0, 1),
				insts.LUI(6, 0x80000),
				insts.SW(1, 6, 0),
				insts.LW(2, 6, 0),
			})

			soc.RunCycles(12)

			Expect(soc.RegFile().Read(2)).To(Equal(uint32(1)))
		})
	})

	Context("UART reprogramming", func() {
		It("should hold the pipeline while programming mode is active", func() {
			soc.LoadProgram([]uint32{insts.ADDI(1, 0, 1)})
			soc.UART().SetProgramMode(true)

			soc.RunCycles(10)

			Expect(soc.Pipeline.PC()).To(Equal(uint32(0)))
			Expect(soc.RegFile().Read(1)).To(Equal(uint32(0)))
			Expect(soc.Stats().Instructions).To(Equal(uint64(0)))
		})

		It("should write assembled words to sequential instruction slots", func() {
			program := []uint32{
				insts.ADDI(5, 0, 1),
				insts.ADDI(6, 0, 2),
				insts.ADDI(7, 0, 3),
				insts.ADDI(8, 0, 42),
			}
			soc.UART().SetProgramMode(true)

			for _, word := range program {
				feedWord(soc, word)
			}
			soc.RunCycles(8) // one loader write per cycle

			for i, want := range program {
				Expect(soc.InstrMem().Fetch(uint32(i * 4))).To(Equal(want))
			}
			Expect(soc.LoaderWrites()).To(Equal(uint64(4)))
			Expect(soc.Pipeline.PC()).To(Equal(uint32(0)))
		})

		It("should execute the new program after leaving programming mode", func() {
			soc.UART().SetProgramMode(true)
			for _, word := range []uint32{
				insts.ADDI(5, 0, 1),
				insts.ADDI(6, 0, 2),
				insts.ADDI(7, 0, 3),
				insts.ADDI(8, 0, 42),
			} {
				feedWord(soc, word)
			}
			soc.RunCycles(8)
			soc.UART().SetProgramMode(false)

			soc.RunCycles(30)

			Expect(soc.RegFile().Read(5)).To(Equal(uint32(1)))
			Expect(soc.RegFile().Read(6)).To(Equal(uint32(2)))
			Expect(soc.RegFile().Read(7)).To(Equal(uint32(3)))
			Expect(soc.RegFile().Read(8)).To(Equal(uint32(42)))
		})

		It("should replace a running program", func() {
			soc.LoadProgram(loader.Bootstrap())
			soc.RunCycles(20)
			Expect(soc.GPIO().Pin()).To(BeTrue())

			soc.UART().SetProgramMode(true)
			for _, word := range []uint32{
				insts.ADDI(1, 0, 0),   // drive the pin low this time
				insts.LUI(6, 0x80000),
				insts.SW(1, 6, 0),
				insts.JAL(0, 0),
			} {
				feedWord(soc, word)
			}
			soc.RunCycles(8)
			soc.UART().SetProgramMode(false)
			soc.Reset()

			soc.RunCycles(20)

			Expect(soc.GPIO().Pin()).To(BeFalse())
			Expect(soc.DataMem().ReadWord(0)).To(Equal(uint32(0)))
		})

		It("should stall for loader writes even after mode is dropped", func() {
			soc.LoadProgram([]uint32{insts.ADDI(1, 0, 1)})
			soc.UART().SetProgramMode(true)
			feedWord(soc, insts.NOP)
			soc.UART().SetProgramMode(false)

			soc.Tick() // the queued word drains this cycle

			Expect(soc.Pipeline.PC()).To(Equal(uint32(0)))
			Expect(soc.LoaderWrites()).To(Equal(uint64(1)))
		})
	})

	Context("reset", func() {
		It("should clear control and peripheral state but not memories", func() {
			soc.LoadProgram(loader.Bootstrap())
			soc.RunCycles(20)
			Expect(soc.GPIO().Pin()).To(BeTrue())

			soc.Reset()

			Expect(soc.Pipeline.PC()).To(Equal(uint32(0)))
			Expect(soc.GPIO().Pin()).To(BeFalse())
			Expect(soc.InstrMem().Fetch(0)).To(Equal(insts.ADDI(1, 0, 1)))
		})
	})

	Context("statistics", func() {
		It("should count cycles and retired instructions", func() {
			soc.LoadProgram([]uint32{
				insts.ADDI(1, 0, 1),
				insts.ADDI(2, 0, 2),
			})

			soc.RunCycles(10)

			stats := soc.Stats()
			Expect(stats.Cycles).To(Equal(uint64(10)))
			Expect(stats.Instructions).To(BeNumerically(">=", 2))
			Expect(stats.CPI()).To(BeNumerically(">", 0))
		})
	})

	Context("sizing", func() {
		It("should honor configured memory bounds", func() {
			cfg := &config.Config{InstrMemWords: 8, DataMemWords: 4}
			small := core.New(cfg, core.WithInvariantChecks())

			Expect(small.InstrMem().Size()).To(Equal(8))
			Expect(small.DataMem().Size()).To(Equal(4))

			// Fetch past the 8th word resolves to the no-op encoding.
			Expect(small.InstrMem().Fetch(32)).To(Equal(insts.NOP))
		})
	})
})
