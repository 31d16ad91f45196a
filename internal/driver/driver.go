// Package driver runs a hart's fetch-decode-execute loop to completion,
// optionally bounded by an instruction budget, and prints the termination
// message the loop ends with.
package driver

import (
	"fmt"
	"io"

	"github.com/dbendik/rv32i/internal/hart"
)

// Driver owns a single hart and drives its tick loop.
type Driver struct {
	Hart *hart.Hart
	Out  io.Writer
}

// New returns a Driver bound to h, printing termination messages to out.
func New(h *hart.Hart, out io.Writer) *Driver {
	return &Driver{Hart: h, Out: out}
}

// Run ticks the hart until it halts. If limit is 0, execution is unbounded.
// Otherwise at most limit instructions are executed; the register dump is
// suppressed on the final tick, and if the budget is exhausted before the
// hart halts on its own, the hart is force-halted.
func (d *Driver) Run(limit uint64) {
	var ticks uint64
	for !d.Hart.Halted {
		if limit != 0 && ticks == limit {
			d.Hart.Halted = true
			break
		}
		if limit != 0 && ticks == limit-1 {
			d.Hart.ShowRegisters = false
		}
		d.Hart.Tick("")
		ticks++
	}

	if d.Hart.HaltReason != "none" {
		fmt.Fprintf(d.Out, "Execution terminated. Reason: %s\n", d.Hart.HaltReason)
	}
	fmt.Fprintf(d.Out, "%d instructions executed\n", d.Hart.InsnCounter)
}
