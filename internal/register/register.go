// Package register implements the RV32I architectural register file: 32
// signed 32-bit general-purpose registers with x0 hard-wired to zero.
package register

import (
	"fmt"
	"io"

	"github.com/dbendik/rv32i/internal/hexfmt"
)

const count = 32

// resetFill is the poison value used to make uninitialized register reads
// obvious in a trace or dump, matching the reference simulator's reset
// pattern.
const resetFill uint32 = 0xf0f0f0f0

// File is a fixed-size register file. The zero value is not usable; use New.
type File struct {
	regs [count]int32
}

// New returns a register file in its reset state.
func New() *File {
	f := &File{}
	f.Reset()
	return f
}

// Reset fills x1..x31 with the poison pattern and clears x0.
func (f *File) Reset() {
	for i := 1; i < count; i++ {
		fill := resetFill
		f.regs[i] = int32(fill)
	}
	f.regs[0] = 0
}

// Set stores val into register r. Writes to x0 are silently discarded.
func (f *File) Set(r uint32, val int32) {
	if r != 0 {
		f.regs[r] = val
	}
}

// Get returns the value of register r. x0 always reads as 0.
func (f *File) Get(r uint32) int32 {
	if r == 0 {
		return 0
	}
	return f.regs[r]
}

// Dump writes the register file to w, four registers per line, each
// formatted "xNN 0xHHHHHHHH", preceded by hdr on every line.
func (f *File) Dump(w io.Writer, hdr string) {
	for i := 0; i < count; i++ {
		if i%4 == 0 {
			if i != 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, hdr)
		}
		fmt.Fprintf(w, " x%-2d %s", i, hexfmt.Word32Prefixed(uint32(f.regs[i])))
	}
	fmt.Fprintln(w)
}
