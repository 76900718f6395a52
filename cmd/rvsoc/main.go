// Package main provides the entry point for rvsoc, a cycle-accurate
// simulator of a 5-stage RV32 SoC with GPIO and UART peripherals.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/microrv/rvsoc/config"
	"github.com/microrv/rvsoc/loader"
	"github.com/microrv/rvsoc/timing/core"
)

var (
	configPath = flag.String("config", "", "Path to configuration JSON file")
	cycles     = flag.Uint64("cycles", 1000, "Number of clock cycles to simulate")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	imagePath := cfg.ImagePath
	if flag.NArg() > 0 {
		imagePath = flag.Arg(0)
	}

	image := loader.Bootstrap()
	if imagePath != "" {
		var err error
		image, err = loader.Load(imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
			os.Exit(1)
		}
	}

	maxCycles := *cycles
	if cfg.MaxCycles != 0 {
		maxCycles = cfg.MaxCycles
	}

	soc := core.New(cfg)
	soc.LoadProgram(image)

	if *verbose {
		source := imagePath
		if source == "" {
			source = "(bootstrap)"
		}
		fmt.Printf("Image: %s (%d words)\n", source, len(image))
		fmt.Printf("IMEM: %d words, DMEM: %d words\n", cfg.InstrMemWords, cfg.DataMemWords)
	}

	soc.RunCycles(maxCycles)

	stats := soc.Stats()
	fmt.Printf("Cycles:       %d\n", stats.Cycles)
	fmt.Printf("Instructions: %d\n", stats.Instructions)
	fmt.Printf("CPI:          %.2f\n", stats.CPI())
	fmt.Printf("Stalls:       %d\n", stats.Stalls)
	fmt.Printf("Flushes:      %d\n", stats.Flushes)
	fmt.Printf("Data hazards: %d\n", stats.DataHazards)
	if soc.LoaderWrites() > 0 {
		fmt.Printf("Loader writes: %d\n", soc.LoaderWrites())
	}
	fmt.Printf("GPIO pin:     %d\n", soc.GPIO().Read())
}
