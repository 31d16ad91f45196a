// Package memory implements the flat, byte-addressable memory of the
// simulated machine: little-endian 8/16/32-bit access with sign-extending
// reads, a memory-mapped console device, and the flat-binary loader.
package memory

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dbendik/rv32i/internal/hexfmt"
)

// fillByte is the value every byte of a freshly constructed memory is set
// to, making uninitialized reads visually obvious in a dump.
const fillByte = 0xa5

// ConsoleTxAddr is the write-only memory-mapped transmit register. A store
// here copies its low byte to the console writer configured with
// SetConsoleWriter.
const ConsoleTxAddr = 0xf0000000

// ConsoleStatusAddr is the read-only memory-mapped status register. It
// always reads as 1: this simulator has no transmit back-pressure.
const ConsoleStatusAddr = 0xf0000004

// Memory is a fixed-size, byte-addressable store.
type Memory struct {
	mem     []byte
	console io.Writer
}

// New returns a memory of at least siz bytes, rounded up to the next
// multiple of 16, filled with the poison byte 0xa5.
func New(siz uint32) *Memory {
	rounded := (siz + 15) &^ 0xf
	m := &Memory{mem: make([]byte, rounded)}
	for i := range m.mem {
		m.mem[i] = fillByte
	}
	return m
}

// SetConsoleWriter configures where bytes written to ConsoleTxAddr are sent.
// If unset, console writes are silently discarded.
func (m *Memory) SetConsoleWriter(w io.Writer) {
	m.console = w
}

// Size returns the memory's size in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.mem))
}

func (m *Memory) checkIllegal(addr uint32) bool {
	if addr >= uint32(len(m.mem)) {
		fmt.Println("WARNING: Address out of range:", hexfmt.Word32Prefixed(addr))
		return true
	}
	return false
}

// Get8 returns the byte at addr, or 0 if addr is out of range.
func (m *Memory) Get8(addr uint32) uint8 {
	switch addr {
	case ConsoleStatusAddr:
		return 1
	case ConsoleTxAddr:
		return 0
	}
	if addr >= ConsoleTxAddr && addr < ConsoleTxAddr+8 {
		return 0
	}
	if m.checkIllegal(addr) {
		return 0
	}
	return m.mem[addr]
}

// Get16 returns the little-endian 16-bit value at addr.
func (m *Memory) Get16(addr uint32) uint16 {
	first := m.Get8(addr)
	second := m.Get8(addr + 1)
	return uint16(second)<<8 | uint16(first)
}

// Get32 returns the little-endian 32-bit value at addr.
func (m *Memory) Get32(addr uint32) uint32 {
	first := m.Get16(addr)
	second := m.Get16(addr + 2)
	return uint32(second)<<16 | uint32(first)
}

// Get8Sx returns the sign-extended byte at addr.
func (m *Memory) Get8Sx(addr uint32) int32 {
	v := int32(m.Get8(addr))
	v <<= 24
	v >>= 24
	return v
}

// Get16Sx returns the sign-extended 16-bit value at addr.
func (m *Memory) Get16Sx(addr uint32) int32 {
	v := int32(m.Get16(addr))
	v <<= 16
	v >>= 16
	return v
}

// Get32Sx returns the 32-bit value at addr; provided for symmetry, since a
// full 32-bit read has no wider sign to extend into.
func (m *Memory) Get32Sx(addr uint32) int32 {
	return int32(m.Get32(addr))
}

// Set8 stores val at addr. Out-of-range writes are dropped after a warning.
func (m *Memory) Set8(addr uint32, val uint8) {
	switch addr {
	case ConsoleTxAddr:
		if m.console != nil {
			m.console.Write([]byte{val})
		}
		return
	case ConsoleStatusAddr:
		return
	}
	if addr >= ConsoleTxAddr && addr < ConsoleTxAddr+8 {
		return
	}
	if m.checkIllegal(addr) {
		return
	}
	m.mem[addr] = val
}

// Set16 stores the little-endian 16-bit val at addr.
func (m *Memory) Set16(addr uint32, val uint16) {
	m.Set8(addr, uint8(val))
	m.Set8(addr+1, uint8(val>>8))
}

// Set32 stores the little-endian 32-bit val at addr.
func (m *Memory) Set32(addr uint32, val uint32) {
	m.Set16(addr, uint16(val))
	m.Set16(addr+2, uint16(val>>16))
}

// LoadFile reads fname's entire contents into memory starting at address 0.
// It fails if the file cannot be opened or is larger than the memory.
func (m *Memory) LoadFile(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("can't open file %q for reading: %w", fname, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var addr uint32
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %q: %w", fname, err)
		}
		if addr >= uint32(len(m.mem)) {
			return fmt.Errorf("program too big")
		}
		m.mem[addr] = b
		addr++
	}
}

// Dump writes a 16-bytes-per-line hex and ASCII rendering of memory to w.
func (m *Memory) Dump(w io.Writer) {
	var ascii []byte
	for i := 0; i < len(m.mem); i++ {
		if i%16 == 0 {
			fmt.Fprintf(w, "%s: ", hexfmt.Word32(uint32(i)))
		} else if i%8 == 0 {
			fmt.Fprint(w, " ")
		}

		fmt.Fprintf(w, "%s ", hexfmt.Byte(m.mem[i]))

		ch := m.mem[i]
		if !isPrint(ch) {
			ch = '.'
		}
		ascii = append(ascii, ch)

		if (i+1)%16 == 0 {
			fmt.Fprintf(w, "*%s*\n", ascii)
			ascii = ascii[:0]
		}
	}
}

func isPrint(b byte) bool {
	return b >= 0x20 && b < 0x7f
}
