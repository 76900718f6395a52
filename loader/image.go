// Package loader provides program image loading for instruction memory.
package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/microrv/rvsoc/insts"
)

// Load reads a program image from path. The format is chosen by
// extension: ".hex" is parsed as one hexadecimal word per line
// ($readmemh style); anything else is read as raw little-endian words.
func Load(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".hex") {
		return LoadHex(f)
	}
	return LoadBin(f)
}

// LoadBin reads raw little-endian 32-bit words. A trailing partial word
// is zero-padded.
func LoadBin(r io.Reader) ([]uint32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	words := make([]uint32, 0, (len(data)+3)/4)
	for len(data) >= 4 {
		words = append(words, binary.LittleEndian.Uint32(data))
		data = data[4:]
	}
	if len(data) > 0 {
		var tail [4]byte
		copy(tail[:], data)
		words = append(words, binary.LittleEndian.Uint32(tail[:]))
	}
	return words, nil
}

// LoadHex reads one hexadecimal instruction word per line. Blank lines
// and lines starting with "//" or "#" are skipped; inline "//" comments
// are stripped.
func LoadHex(r io.Reader) ([]uint32, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad instruction word %q: %w", lineNo, line, err)
		}
		words = append(words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return words, nil
}

// Bootstrap returns the short fixed program used when no image is
// supplied: set x1 to 1, point x6 at the GPIO register, store, then
// idle in place.
func Bootstrap() []uint32 {
	return []uint32{
		insts.ADDI(1, 0, 1),    // addi x1, x0, 1
		insts.LUI(6, 0x80000),  // lui  x6, 0x80000
		insts.SW(1, 6, 0),      // sw   x1, 0(x6)
		insts.JAL(0, 0),        // jal  x0, 0 (idle loop)
	}
}
