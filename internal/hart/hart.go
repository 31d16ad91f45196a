// Package hart implements the single-hart fetch-decode-execute engine: the
// program counter, halt state machine, and the per-instruction execution
// semantics of RV32I, with optional disassembly-style trace output.
package hart

import (
	"fmt"
	"io"
	"os"

	"github.com/dbendik/rv32i/internal/decode"
	"github.com/dbendik/rv32i/internal/hexfmt"
	"github.com/dbendik/rv32i/internal/memory"
	"github.com/dbendik/rv32i/internal/register"
)

// instructionWidth is the column the trailing "// comment" aligns to.
// Disassembled strings longer than this (such as branches naming two-digit
// registers) are not padded, and the comment follows them directly.
const instructionWidth = 24

// mhartidCSR is the only CSR address this simulator implements: hart 0,
// no parallelism, so mhartid is always 0.
const mhartidCSR = 0xf14

// Hart is a single RV32I hardware thread bound to a Memory it does not own.
type Hart struct {
	PC          uint32
	Regs        *register.File
	InsnCounter uint64
	Halted      bool
	HaltReason  string

	ShowInstructions bool
	ShowRegisters    bool

	// Trace is where per-tick disassembly and register dumps go. Defaults
	// to os.Stdout; tests may swap it out to capture output.
	Trace io.Writer

	mem *memory.Memory
}

// New returns a Hart bound to mem, in its reset state.
func New(mem *memory.Memory) *Hart {
	h := &Hart{Regs: register.New(), mem: mem, Trace: os.Stdout}
	h.Reset()
	return h
}

// Reset restores architectural state: pc=0, registers reset (with the
// stack pointer x2 set to the top of memory), instruction counter zeroed,
// and the halt flag cleared.
func (h *Hart) Reset() {
	h.PC = 0
	h.Regs.Reset()
	h.Regs.Set(2, int32(h.mem.Size()))
	h.InsnCounter = 0
	h.Halted = false
	h.HaltReason = "none"
}

// Dump writes the register file followed by the program counter to w.
func (h *Hart) Dump(w io.Writer, hdr string) {
	h.Regs.Dump(w, hdr)
	fmt.Fprintf(w, " pc %s\n", hexfmt.Word32Prefixed(h.PC))
}

// Tick fetches, decodes, and executes exactly one instruction. Calling
// Tick after Halted is true is a caller error; the driver must not do it.
func (h *Hart) Tick(hdr string) {
	if h.PC%4 != 0 {
		h.Halted = true
		h.HaltReason = "PC alignment error"
		return
	}

	h.InsnCounter++
	insn := h.mem.Get32(h.PC)

	switch {
	case h.ShowInstructions && h.ShowRegisters:
		h.exec(insn, h.Trace)
		fmt.Fprintln(h.Trace)
		if !h.Halted {
			h.Dump(h.Trace, hdr)
		}
	case h.ShowInstructions:
		h.exec(insn, h.Trace)
		fmt.Fprintln(h.Trace)
	default:
		h.exec(insn, nil)
	}
}

// traceHeader renders the "AAAAAAAA: WWWWWWWW  " prefix shared by every
// traced instruction.
func traceHeader(addr, insn uint32) string {
	return fmt.Sprintf("%s: %s  ", hexfmt.Word32(addr), hexfmt.Word32(insn))
}

// padInstruction left-justifies a disassembled instruction string to
// instructionWidth so the trailing "// comment" aligns in a column.
func padInstruction(s string) string {
	return fmt.Sprintf("%-*s", instructionWidth, s)
}

func (h *Hart) exec(insn uint32, w io.Writer) {
	kind := decode.Classify(insn)
	switch kind {
	case decode.KindIllegal:
		h.execIllegal(insn, w)
	case decode.KindLui:
		h.execLui(insn, w)
	case decode.KindAuipc:
		h.execAuipc(insn, w)
	case decode.KindJal:
		h.execJal(insn, w)
	case decode.KindJalr:
		h.execJalr(insn, w)
	case decode.KindBeq:
		h.execBranch(insn, w, "beq", func(a, b int32) bool { return a == b })
	case decode.KindBne:
		h.execBranch(insn, w, "bne", func(a, b int32) bool { return a != b })
	case decode.KindBlt:
		h.execBranch(insn, w, "blt", func(a, b int32) bool { return a < b })
	case decode.KindBge:
		h.execBranch(insn, w, "bge", func(a, b int32) bool { return a >= b })
	case decode.KindBltu:
		h.execBranchU(insn, w, "bltu", "<U", func(a, b uint32) bool { return a < b })
	case decode.KindBgeu:
		h.execBranchU(insn, w, "bgeu", ">=U", func(a, b uint32) bool { return a >= b })
	case decode.KindLb:
		h.execLoad(insn, w, "lb", 1, true)
	case decode.KindLh:
		h.execLoad(insn, w, "lh", 2, true)
	case decode.KindLw:
		h.execLoad(insn, w, "lw", 4, true)
	case decode.KindLbu:
		h.execLoad(insn, w, "lbu", 1, false)
	case decode.KindLhu:
		h.execLoad(insn, w, "lhu", 2, false)
	case decode.KindSb:
		h.execStore(insn, w, "sb", 1)
	case decode.KindSh:
		h.execStore(insn, w, "sh", 2)
	case decode.KindSw:
		h.execStore(insn, w, "sw", 4)
	case decode.KindAddi:
		h.execAddi(insn, w)
	case decode.KindSlti:
		h.execSlti(insn, w)
	case decode.KindSltiu:
		h.execSltiu(insn, w)
	case decode.KindXori:
		h.execBinImm(insn, w, "xori", "^", func(a, b int32) int32 { return a ^ b })
	case decode.KindOri:
		h.execBinImm(insn, w, "ori", "|", func(a, b int32) int32 { return a | b })
	case decode.KindAndi:
		h.execBinImm(insn, w, "andi", "&", func(a, b int32) int32 { return a & b })
	case decode.KindSlli:
		h.execShiftImm(insn, w, "slli", func(v int32, s uint32) int32 { return int32(uint32(v) << s) }, "<<")
	case decode.KindSrli:
		h.execShiftImm(insn, w, "srli", func(v int32, s uint32) int32 { return int32(uint32(v) >> s) }, ">>")
	case decode.KindSrai:
		h.execShiftImm(insn, w, "srai", func(v int32, s uint32) int32 { return v >> s }, ">>")
	case decode.KindAdd:
		h.execRtype(insn, w, "add", "+", func(a, b int32) int32 { return a + b })
	case decode.KindSub:
		h.execRtype(insn, w, "sub", "-", func(a, b int32) int32 { return a - b })
	case decode.KindXor:
		h.execRtype(insn, w, "xor", "^", func(a, b int32) int32 { return a ^ b })
	case decode.KindOr:
		h.execRtype(insn, w, "or", "|", func(a, b int32) int32 { return a | b })
	case decode.KindAnd:
		h.execRtype(insn, w, "and", "&", func(a, b int32) int32 { return a & b })
	case decode.KindSll:
		h.execShiftR(insn, w, "sll", func(v int32, s uint32) int32 { return int32(uint32(v) << s) })
	case decode.KindSrl:
		h.execShiftR(insn, w, "srl", func(v int32, s uint32) int32 { return int32(uint32(v) >> s) })
	case decode.KindSra:
		h.execShiftR(insn, w, "sra", func(v int32, s uint32) int32 { return v >> s })
	case decode.KindSlt:
		h.execCompareR(insn, w, "slt", "<", func(a, b int32) bool { return a < b })
	case decode.KindSltu:
		h.execCompareRU(insn, w, "sltu", "<U", func(a, b uint32) bool { return a < b })
	case decode.KindEcall:
		h.execEcall(insn, w)
	case decode.KindEbreak:
		h.execEbreak(insn, w)
	case decode.KindCsrrs:
		h.execCsrrs(insn, w)
	case decode.KindCsrrw, decode.KindCsrrc, decode.KindCsrrwi, decode.KindCsrrsi, decode.KindCsrrci:
		h.execIllegal(insn, w)
	default:
		h.execIllegal(insn, w)
	}
}

func (h *Hart) execIllegal(insn uint32, w io.Writer) {
	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, "ERROR: UNIMPLEMENTED INSTRUCTION")
	}
	h.Halted = true
	h.HaltReason = "Illegal instruction"
}

func (h *Hart) execEcall(insn uint32, w io.Writer) {
	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction("ecall"))
		fmt.Fprint(w, "// ECALL")
	}
	h.Halted = true
	h.HaltReason = "ECALL instruction"
}

func (h *Hart) execEbreak(insn uint32, w io.Writer) {
	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction("ebreak"))
		fmt.Fprint(w, "// HALT")
	}
	h.Halted = true
	h.HaltReason = "EBREAK instruction"
}

func (h *Hart) execLui(insn uint32, w io.Writer) {
	rd := decode.ParseRd(insn)
	immu := decode.ParseImmU(insn)

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s", rd, hexfmt.Word32Prefixed(uint32(immu)))
	}

	h.Regs.Set(rd, immu)
	h.PC += 4
}

func (h *Hart) execAuipc(insn uint32, w io.Writer) {
	rd := decode.ParseRd(insn)
	immu := decode.ParseImmU(insn)
	val := int32(h.PC) + immu

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s + %s = %s", rd, hexfmt.Word32Prefixed(h.PC),
			hexfmt.Word32Prefixed(uint32(immu)), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execJal(insn uint32, w io.Writer) {
	rd := decode.ParseRd(insn)
	immj := decode.ParseImmJ(insn)
	val := int32(h.PC) + immj
	pc := h.PC

	if w != nil {
		fmt.Fprint(w, traceHeader(pc, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(pc, insn)))
		fmt.Fprintf(w, "// x%d = %s,  pc = %s + %s = %s", rd, hexfmt.Word32Prefixed(pc+4),
			hexfmt.Word32Prefixed(pc), hexfmt.Word32Prefixed(uint32(immj)), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, int32(pc+4))
	h.PC = uint32(val)
}

func (h *Hart) execJalr(insn uint32, w io.Writer) {
	rd := decode.ParseRd(insn)
	rs1 := decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	rs1v := h.Regs.Get(rs1)
	val := uint32(rs1v+immi) & 0xfffffffe
	pc := h.PC

	if w != nil {
		fmt.Fprint(w, traceHeader(pc, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(pc, insn)))
		fmt.Fprintf(w, "// x%d = %s,  pc = (%s + %s) & 0xfffffffe = %s", rd, hexfmt.Word32Prefixed(pc+4),
			hexfmt.Word32Prefixed(uint32(immi)), hexfmt.Word32Prefixed(uint32(rs1v)), hexfmt.Word32Prefixed(val))
	}

	h.Regs.Set(rd, int32(pc+4))
	h.PC = val
}

func (h *Hart) execBranch(insn uint32, w io.Writer, mnemonic string, cmp func(a, b int32) bool) {
	rs1, rs2 := decode.ParseRs1(insn), decode.ParseRs2(insn)
	immb := decode.ParseImmB(insn)
	a, b := h.Regs.Get(rs1), h.Regs.Get(rs2)
	pc := h.PC

	var delta int32 = 4
	taken := cmp(a, b)
	if taken {
		delta = immb
	}

	if w != nil {
		sym := branchSymbol(mnemonic)
		fmt.Fprint(w, traceHeader(pc, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(pc, insn)))
		fmt.Fprintf(w, "// pc += (%s %s %s ? %s : 4) = %s",
			hexfmt.Word32Prefixed(uint32(a)), sym, hexfmt.Word32Prefixed(uint32(b)),
			hexfmt.Word32Prefixed(uint32(immb)), hexfmt.Word32Prefixed(pc+uint32(delta)))
	}

	h.PC = pc + uint32(delta)
}

func (h *Hart) execBranchU(insn uint32, w io.Writer, mnemonic, sym string, cmp func(a, b uint32) bool) {
	rs1, rs2 := decode.ParseRs1(insn), decode.ParseRs2(insn)
	immb := decode.ParseImmB(insn)
	a, b := uint32(h.Regs.Get(rs1)), uint32(h.Regs.Get(rs2))
	pc := h.PC

	var delta int32 = 4
	if cmp(a, b) {
		delta = immb
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(pc, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(pc, insn)))
		fmt.Fprintf(w, "// pc += (%s %s %s ? %s : 4) = %s",
			hexfmt.Word32Prefixed(a), sym, hexfmt.Word32Prefixed(b),
			hexfmt.Word32Prefixed(uint32(immb)), hexfmt.Word32Prefixed(pc+uint32(delta)))
	}

	h.PC = pc + uint32(delta)
}

func branchSymbol(mnemonic string) string {
	switch mnemonic {
	case "beq":
		return "=="
	case "bne":
		return "!="
	case "blt":
		return "<"
	case "bge":
		return ">="
	}
	return "?"
}

func (h *Hart) execAddi(insn uint32, w io.Writer) {
	rd, rs1 := decode.ParseRd(insn), decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	rs1v := h.Regs.Get(rs1)
	val := rs1v + immi

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s + %s = %s", rd, hexfmt.Word32Prefixed(uint32(rs1v)),
			hexfmt.Word32Prefixed(uint32(immi)), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execBinImm(insn uint32, w io.Writer, mnemonic, sym string, op func(a, b int32) int32) {
	rd, rs1 := decode.ParseRd(insn), decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	rs1v := h.Regs.Get(rs1)
	val := op(rs1v, immi)

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s %s %s = %s", rd, hexfmt.Word32Prefixed(uint32(rs1v)), sym,
			hexfmt.Word32Prefixed(uint32(immi)), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execSlti(insn uint32, w io.Writer) {
	rd, rs1 := decode.ParseRd(insn), decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	rs1v := h.Regs.Get(rs1)
	var val int32
	if rs1v < immi {
		val = 1
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = (%s < %d) ? 1 : 0 = %s", rd, hexfmt.Word32Prefixed(uint32(rs1v)),
			immi, hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execSltiu(insn uint32, w io.Writer) {
	rd, rs1 := decode.ParseRd(insn), decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	rs1v := uint32(h.Regs.Get(rs1))
	var val int32
	if rs1v < uint32(immi) {
		val = 1
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = (%s <U %d) ? 1 : 0 = %s", rd, hexfmt.Word32Prefixed(rs1v),
			immi, hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execShiftImm(insn uint32, w io.Writer, mnemonic string, op func(v int32, s uint32) int32, sym string) {
	rd, rs1 := decode.ParseRd(insn), decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	shamt := uint32(immi) & 0x1f
	rs1v := h.Regs.Get(rs1)
	val := op(rs1v, shamt)

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s %s %d = %s", rd, hexfmt.Word32Prefixed(uint32(rs1v)), sym,
			shamt, hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execRtype(insn uint32, w io.Writer, mnemonic, sym string, op func(a, b int32) int32) {
	rd, rs1, rs2 := decode.ParseRd(insn), decode.ParseRs1(insn), decode.ParseRs2(insn)
	a, b := h.Regs.Get(rs1), h.Regs.Get(rs2)
	val := op(a, b)

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s %s %s = %s", rd, hexfmt.Word32Prefixed(uint32(a)), sym,
			hexfmt.Word32Prefixed(uint32(b)), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execShiftR(insn uint32, w io.Writer, mnemonic string, op func(v int32, s uint32) int32) {
	rd, rs1, rs2 := decode.ParseRd(insn), decode.ParseRs1(insn), decode.ParseRs2(insn)
	a := h.Regs.Get(rs1)
	shamt := uint32(h.Regs.Get(rs2)) & 0x1f
	val := op(a, shamt)

	if w != nil {
		sym := ">>"
		if mnemonic == "sll" {
			sym = "<<"
		}
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s %s %d = %s", rd, hexfmt.Word32Prefixed(uint32(a)), sym, shamt, hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execCompareR(insn uint32, w io.Writer, mnemonic, sym string, cmp func(a, b int32) bool) {
	rd, rs1, rs2 := decode.ParseRd(insn), decode.ParseRs1(insn), decode.ParseRs2(insn)
	a, b := h.Regs.Get(rs1), h.Regs.Get(rs2)
	var val int32
	if cmp(a, b) {
		val = 1
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = (%s %s %s) ? 1 : 0 = %s", rd, hexfmt.Word32Prefixed(uint32(a)), sym,
			hexfmt.Word32Prefixed(uint32(b)), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execCompareRU(insn uint32, w io.Writer, mnemonic, sym string, cmp func(a, b uint32) bool) {
	rd, rs1, rs2 := decode.ParseRd(insn), decode.ParseRs1(insn), decode.ParseRs2(insn)
	a, b := uint32(h.Regs.Get(rs1)), uint32(h.Regs.Get(rs2))
	var val int32
	if cmp(a, b) {
		val = 1
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = (%s %s %s) ? 1 : 0 = %s", rd, hexfmt.Word32Prefixed(a), sym,
			hexfmt.Word32Prefixed(b), hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execLoad(insn uint32, w io.Writer, mnemonic string, width int, signed bool) {
	rd, rs1 := decode.ParseRd(insn), decode.ParseRs1(insn)
	immi := decode.ParseImmI(insn)
	addr := uint32(h.Regs.Get(rs1) + immi)

	var val int32
	var kindLabel, sizeLabel string
	switch width {
	case 1:
		sizeLabel = "m8"
		if signed {
			val = h.mem.Get8Sx(addr)
		} else {
			val = int32(h.mem.Get8(addr))
		}
	case 2:
		sizeLabel = "m16"
		if signed {
			val = h.mem.Get16Sx(addr)
		} else {
			val = int32(h.mem.Get16(addr))
		}
	default:
		sizeLabel = "m32"
		val = int32(h.mem.Get32(addr))
	}
	if signed {
		kindLabel = "sx"
	} else {
		kindLabel = "zx"
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %s(%s(%s + %s)) = %s", rd, kindLabel, sizeLabel,
			hexfmt.Word32Prefixed(uint32(h.Regs.Get(rs1))), hexfmt.Word32Prefixed(uint32(immi)),
			hexfmt.Word32Prefixed(uint32(val)))
	}

	h.Regs.Set(rd, val)
	h.PC += 4
}

func (h *Hart) execStore(insn uint32, w io.Writer, mnemonic string, width int) {
	rs1, rs2 := decode.ParseRs1(insn), decode.ParseRs2(insn)
	imms := decode.ParseImmS(insn)
	rs1v := h.Regs.Get(rs1)
	addr := uint32(rs1v + imms)
	rs2v := uint32(h.Regs.Get(rs2))

	var sizeLabel string
	var stored uint32
	switch width {
	case 1:
		sizeLabel = "m8"
		h.mem.Set8(addr, uint8(rs2v))
		stored = uint32(h.mem.Get8(addr))
	case 2:
		sizeLabel = "m16"
		h.mem.Set16(addr, uint16(rs2v))
		stored = uint32(h.mem.Get16(addr))
	default:
		sizeLabel = "m32"
		h.mem.Set32(addr, rs2v)
		stored = h.mem.Get32(addr)
	}

	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// %s(%s + %s) = %s", sizeLabel, hexfmt.Word32Prefixed(uint32(rs1v)),
			hexfmt.Word32Prefixed(uint32(imms)), hexfmt.Word32Prefixed(stored))
	}

	h.PC += 4
}

func (h *Hart) execCsrrs(insn uint32, w io.Writer) {
	rd := decode.ParseRd(insn)
	rs1 := decode.ParseRs1(insn)
	csr := uint32(decode.ParseImmI(insn)) & 0xfff

	if rs1 != 0 || csr != mhartidCSR {
		h.Halted = true
		h.HaltReason = "Illegal CSR in CSRRS instruction"
	}

	const mhartid = 0
	if w != nil {
		fmt.Fprint(w, traceHeader(h.PC, insn))
		fmt.Fprint(w, padInstruction(decode.Disassemble(h.PC, insn)))
		fmt.Fprintf(w, "// x%d = %d", rd, mhartid)
	}

	h.Regs.Set(rd, mhartid)
	h.PC += 4
}
