package periph

import "github.com/microrv/rvsoc/emu"

// UART register byte addresses. The physical bit-framing receiver is out
// of scope; bytes enter the peripheral through RecvByte.
const (
	UARTDataAddr   uint32 = 0x80000004
	UARTCtrlAddr   uint32 = 0x80000008
	UARTStatusAddr uint32 = 0x8000000C
)

// Control register bits.
const (
	// CtrlProgramMode enables the instruction-memory loader path.
	CtrlProgramMode uint32 = 1 << 1
)

// Status register bits.
const (
	// StatusRxPending indicates a received byte is waiting in DATA.
	StatusRxPending uint32 = 1 << 0
)

// UART models the serial peripheral's register file and its secondary
// bus-master path into instruction memory. While programming mode is
// active, received bytes assemble little-endian into 32-bit words; each
// complete word is emitted on the loader port at a sequential word index,
// one word per cycle. CPUStall is held for the whole programming window
// so the pipeline never decodes a half-written program.
type UART struct {
	data   uint32
	ctrl   uint32
	status uint32

	// Loader word assembly.
	shift  uint32
	nbytes int

	pending  []uint32
	nextWord uint32
}

// NewUART creates a UART peripheral with programming mode off.
func NewUART() *UART {
	return &UART{}
}

// regSelect decodes the internal register index from address bits [3:2].
func regSelect(addr uint32) uint32 {
	return (addr >> 2) & 0x3
}

// WriteReg handles a memory-stage store routed to the UART window.
func (u *UART) WriteReg(addr, value uint32) {
	switch regSelect(addr) {
	case 1: // DATA: transmit path, out of scope beyond latching the byte
		u.data = value & 0xFF
	case 2: // CTRL
		entering := value&CtrlProgramMode != 0 && u.ctrl&CtrlProgramMode == 0
		u.ctrl = value
		if entering {
			u.resetLoader()
		}
	}
	// STATUS and the base word are read-only/unmapped.
}

// ReadReg handles a memory-stage load routed to the UART window.
func (u *UART) ReadReg(addr uint32) uint32 {
	switch regSelect(addr) {
	case 1:
		return u.data
	case 2:
		return u.ctrl
	case 3:
		return u.status
	default:
		return 0
	}
}

// SetProgramMode toggles programming mode directly, standing in for a
// host that cannot reach CTRL through the address decode.
func (u *UART) SetProgramMode(on bool) {
	if on {
		if u.ctrl&CtrlProgramMode == 0 {
			u.resetLoader()
		}
		u.ctrl |= CtrlProgramMode
	} else {
		u.ctrl &^= CtrlProgramMode
	}
}

// ProgramMode reports whether the loader path is enabled.
func (u *UART) ProgramMode() bool {
	return u.ctrl&CtrlProgramMode != 0
}

// RecvByte injects one received byte, as delivered by the (out-of-scope)
// framing state machine. In programming mode the byte joins the current
// little-endian word assembly.
func (u *UART) RecvByte(b byte) {
	u.data = uint32(b)
	u.status |= StatusRxPending

	if !u.ProgramMode() {
		return
	}
	u.shift |= uint32(b) << (8 * u.nbytes)
	u.nbytes++
	if u.nbytes == 4 {
		u.pending = append(u.pending, u.shift)
		u.shift = 0
		u.nbytes = 0
	}
}

// CPUStall reports whether the core must hold fetch and the decode latch
// this cycle.
func (u *UART) CPUStall() bool {
	return u.ProgramMode() || len(u.pending) > 0
}

// LoaderTick emits at most one instruction-memory write per cycle. The
// returned port is inactive when no assembled word is waiting.
func (u *UART) LoaderTick() emu.LoaderPort {
	if len(u.pending) == 0 {
		return emu.LoaderPort{}
	}
	word := u.pending[0]
	u.pending = u.pending[1:]
	port := emu.LoaderPort{
		WriteEnable: true,
		Address:     u.nextWord * 4,
		Data:        word,
	}
	u.nextWord++
	return port
}

// Reset returns all registers and loader state to power-on values.
func (u *UART) Reset() {
	*u = UART{}
}

func (u *UART) resetLoader() {
	u.shift = 0
	u.nbytes = 0
	u.pending = nil
	u.nextWord = 0
}
