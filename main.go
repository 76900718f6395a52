// Package main provides the entry point for rvsoc.
// rvsoc is a cycle-accurate simulator of a 5-stage RV32 SoC.
//
// For the full CLI, use: go run ./cmd/rvsoc
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rvsoc - 5-stage RV32 SoC simulator")
	fmt.Println("")
	fmt.Println("Usage: rvsoc [options] <program.hex|program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to configuration JSON file")
	fmt.Println("  -cycles    Number of clock cycles to simulate")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rvsoc' for the full simulator.")
	os.Exit(0)
}
