package driver

import (
	"bytes"
	"testing"

	"github.com/dbendik/rv32i/internal/hart"
	"github.com/dbendik/rv32i/internal/memory"
	"github.com/stretchr/testify/require"
)

func TestRunUnlimitedHaltsOnEcall(t *testing.T) {
	m := memory.New(0x10)
	m.Set32(0, 0x00000073) // ecall
	h := hart.New(m)
	var out bytes.Buffer
	d := New(h, &out)
	d.Run(0)

	require.Contains(t, out.String(), "Execution terminated. Reason: ECALL instruction")
	require.Contains(t, out.String(), "1 instructions executed")
}

func TestRunBudgetExhaustedWithoutHalt(t *testing.T) {
	m := memory.New(0x10)
	m.Set32(0, 0x0000006f) // jal x0,0 (jump to itself), loops forever within budget
	h := hart.New(m)
	var out bytes.Buffer
	d := New(h, &out)
	d.Run(3)

	require.NotContains(t, out.String(), "Execution terminated", "natural halt reason stays \"none\"")
	require.Contains(t, out.String(), "3 instructions executed")
	require.True(t, h.Halted)
}

func TestRunSuppressesRegistersOnFinalTick(t *testing.T) {
	m := memory.New(0x10)
	m.Set32(0, 0x00000013)
	m.Set32(4, 0x00000013)
	h := hart.New(m)
	h.ShowInstructions = true
	h.ShowRegisters = true
	var trace bytes.Buffer
	h.Trace = &trace
	var out bytes.Buffer
	d := New(h, &out)
	d.Run(2)

	require.False(t, h.ShowRegisters, "register dump must be suppressed before the final tick")
}

func TestRunNaturalHaltBeforeBudget(t *testing.T) {
	m := memory.New(0x10)
	m.Set32(0, 0x00000073) // ecall on the very first tick
	h := hart.New(m)
	var out bytes.Buffer
	d := New(h, &out)
	d.Run(10)

	require.Contains(t, out.String(), "Execution terminated. Reason: ECALL instruction")
	require.Contains(t, out.String(), "1 instructions executed")
}
