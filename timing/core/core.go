// Package core assembles the SoC: the 5-stage pipeline, the instruction
// and data memories, the GPIO and UART peripherals, and the arbitration
// that lets the UART loader rewrite instruction memory while the
// pipeline is held.
package core

import (
	"github.com/microrv/rvsoc/config"
	"github.com/microrv/rvsoc/emu"
	"github.com/microrv/rvsoc/periph"
	"github.com/microrv/rvsoc/timing/pipeline"
)

// Option is a functional option for configuring the Core.
type Option func(*Core)

// WithInvariantChecks makes the memories panic if two writers land on
// one resource in the same cycle. Enabled in tests; exactly one writer
// per resource per cycle must hold by construction.
func WithInvariantChecks() Option {
	return func(c *Core) {
		c.imem.EnableInvariantChecks()
		c.dmem.EnableInvariantChecks()
	}
}

// Core is the complete SoC model.
type Core struct {
	// Pipeline is the underlying 5-stage pipeline.
	Pipeline *pipeline.Pipeline

	regFile *emu.RegFile
	imem    *emu.InstrMem
	dmem    *emu.DataMem
	gpio    *periph.GPIO
	uart    *periph.UART

	loaderWrites uint64
}

// New creates a Core sized per cfg.
func New(cfg *config.Config, opts ...Option) *Core {
	regFile := emu.NewRegFile()
	imem := emu.NewInstrMem(cfg.InstrMemWords)
	dmem := emu.NewDataMem(cfg.DataMemWords)
	gpio := periph.NewGPIO()
	uart := periph.NewUART()
	router := pipeline.NewRouter(dmem, gpio, uart)

	c := &Core{
		Pipeline: pipeline.NewPipeline(regFile, imem, router),
		regFile:  regFile,
		imem:     imem,
		dmem:     dmem,
		gpio:     gpio,
		uart:     uart,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadProgram copies a program image into instruction memory, modeling
// power-on initialization.
func (c *Core) LoadProgram(image []uint32) {
	c.imem.LoadImage(image)
}

// Tick advances the whole SoC by one clock cycle. The loader port is
// arbitrated first: when the UART holds an assembled word, its write
// wins the instruction-memory port for this cycle and cpu_stall keeps
// the pipeline from decoding around it.
func (c *Core) Tick() {
	c.imem.BeginCycle()
	c.dmem.BeginCycle()

	stall := c.uart.CPUStall()
	port := c.uart.LoaderTick()
	if port.WriteEnable {
		c.imem.Write(port.Address, port.Data)
		c.loaderWrites++
	}

	c.Pipeline.Tick(stall || port.WriteEnable)
}

// RunCycles advances the SoC by the given number of cycles.
func (c *Core) RunCycles(n uint64) {
	for i := uint64(0); i < n; i++ {
		c.Tick()
	}
}

// Reset applies the synchronous reset: PC, pipeline latch control
// fields, and peripheral state return to their zero/no-op values.
// Register file and memory contents are unaffected.
func (c *Core) Reset() {
	c.Pipeline.Reset()
	c.gpio.Reset()
	c.uart.Reset()
}

// Stats returns the pipeline performance counters.
func (c *Core) Stats() pipeline.Statistics {
	return c.Pipeline.Stats()
}

// LoaderWrites returns the number of instruction-memory words written
// through the UART loader port.
func (c *Core) LoaderWrites() uint64 {
	return c.loaderWrites
}

// RegFile returns the register file.
func (c *Core) RegFile() *emu.RegFile { return c.regFile }

// InstrMem returns the instruction memory.
func (c *Core) InstrMem() *emu.InstrMem { return c.imem }

// DataMem returns the data memory.
func (c *Core) DataMem() *emu.DataMem { return c.dmem }

// GPIO returns the GPIO peripheral.
func (c *Core) GPIO() *periph.GPIO { return c.gpio }

// UART returns the UART peripheral.
func (c *Core) UART() *periph.UART { return c.uart }
