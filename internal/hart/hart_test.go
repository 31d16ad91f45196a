package hart

import (
	"bytes"
	"testing"

	"github.com/dbendik/rv32i/internal/memory"
	"github.com/stretchr/testify/require"
)

func newTestHart(t *testing.T, words ...uint32) *Hart {
	t.Helper()
	m := memory.New(0x100)
	for i, w := range words {
		m.Set32(uint32(i*4), w)
	}
	h := New(m)
	var buf bytes.Buffer
	h.Trace = &buf
	return h
}

func TestAddiImmediate(t *testing.T) {
	h := newTestHart(t, 0x00500093) // addi x1, x0, 5
	h.Tick("")
	require.Equal(t, int32(5), h.Regs.Get(1))
	require.Equal(t, uint32(4), h.PC)
	require.Equal(t, uint64(1), h.InsnCounter)
}

func TestEcallHalts(t *testing.T) {
	h := newTestHart(t, 0x00000073) // ecall
	h.Tick("")
	require.True(t, h.Halted)
	require.Equal(t, "ECALL instruction", h.HaltReason)
}

func TestEbreakHalts(t *testing.T) {
	h := newTestHart(t, 0x00100073) // ebreak
	h.Tick("")
	require.True(t, h.Halted)
	require.Equal(t, "EBREAK instruction", h.HaltReason)
}

func TestSraiSignExtends(t *testing.T) {
	h := newTestHart(t,
		0xfff00093, // addi x1, x0, -1
		0x4010d113, // srai x2, x1, 1
	)
	h.Tick("")
	h.Tick("")
	require.Equal(t, int32(-1), h.Regs.Get(1))
	require.Equal(t, int32(-1), h.Regs.Get(2))
}

func TestBeqNotTaken(t *testing.T) {
	h := newTestHart(t,
		0x00100093, // addi x1,x0,1
		0x00200113, // addi x2,x0,2
		0xfe208ce3, // beq x1,x2,-8
	)
	h.Tick("")
	h.Tick("")
	h.Tick("")
	require.False(t, h.Halted)
	require.Equal(t, uint32(12), h.PC)
}

func TestCsrrsMhartid(t *testing.T) {
	h := newTestHart(t, 0xf1402573) // csrrs x10, mhartid, x0
	h.Tick("")
	require.False(t, h.Halted)
	require.Equal(t, int32(0), h.Regs.Get(10))
	require.Equal(t, uint32(4), h.PC)
}

func TestCsrrsIllegalCSRHalts(t *testing.T) {
	// csrrs x10, 0x000, x0 -- wrong CSR address
	insn := uint32(0x00002573)
	h := newTestHart(t, insn)
	h.Tick("")
	require.True(t, h.Halted)
	require.Equal(t, "Illegal CSR in CSRRS instruction", h.HaltReason)
}

func TestIllegalInstructionHaltsWithoutAdvancingPC(t *testing.T) {
	h := newTestHart(t, 0xffffffff)
	h.Tick("")
	require.True(t, h.Halted)
	require.Equal(t, "Illegal instruction", h.HaltReason)
	require.Equal(t, uint32(0), h.PC)
}

func TestMisalignedPCHalts(t *testing.T) {
	h := newTestHart(t, 0x00500093)
	h.PC = 1
	before := h.InsnCounter
	h.Tick("")
	require.True(t, h.Halted)
	require.Equal(t, "PC alignment error", h.HaltReason)
	require.Equal(t, before, h.InsnCounter, "counter must not advance on alignment halt")
}

func TestX0AlwaysZeroAfterTick(t *testing.T) {
	// addi x0, x0, 5 -- attempt to write x0
	h := newTestHart(t, 0x00500013)
	h.Tick("")
	require.Equal(t, int32(0), h.Regs.Get(0))
}

func TestJalAndJalrRoundTrip(t *testing.T) {
	// jal x1, 8 ; at pc=8: jalr x1, 0(x1) with rd==rs1
	h := newTestHart(t,
		0x008000ef, // jal x1, 8
		0x00000013, // nop (addi x0,x0,0)
		0x000080e7, // jalr x1, 0(x1)
	)
	h.Tick("") // jal: x1 = 4, pc = 8
	require.Equal(t, int32(4), h.Regs.Get(1))
	require.Equal(t, uint32(8), h.PC)

	// jalr x1, 0(x1): reads old x1 (4) as the base before rd(x1) is
	// overwritten with the return address.
	h.Tick("")
	require.Equal(t, uint32(4), h.PC)
	require.Equal(t, int32(12), h.Regs.Get(1))
}

func TestLoadStoreRoundTrip(t *testing.T) {
	m := memory.New(0x100)
	h := New(m)
	// addi x1, x0, 64 ; sw x1, 0(x0) ; lw x2, 0(x0)
	m.Set32(0, 0x04000093)
	m.Set32(4, 0x00102023)
	m.Set32(8, 0x00002103)
	h.Tick("")
	h.Tick("")
	h.Tick("")
	require.Equal(t, int32(64), h.Regs.Get(1))
	require.Equal(t, int32(64), h.Regs.Get(2))
}

func TestResetSetsStackPointer(t *testing.T) {
	m := memory.New(0x100)
	h := New(m)
	require.Equal(t, int32(0x100), h.Regs.Get(2))
	require.Equal(t, "none", h.HaltReason)
}
