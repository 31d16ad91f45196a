// Package decode implements pure bit-field extraction and instruction
// classification for RV32I: no memory or register access, so both the
// executor and the standalone disassembler can share it.
package decode

import (
	"fmt"

	"github.com/dbendik/rv32i/internal/hexfmt"
)

// Opcode values, RV32I base ISA.
const (
	OpcodeLui     = 0x37
	OpcodeAuipc   = 0x17
	OpcodeJal     = 0x6f
	OpcodeJalr    = 0x67
	OpcodeBtype   = 0x63
	OpcodeLoad    = 0x03
	OpcodeStore   = 0x23
	OpcodeAluImm  = 0x13
	OpcodeRtype   = 0x33
	OpcodeSystem  = 0x73
)

// funct3 values shared across opcode groups.
const (
	Funct3Add   = 0x0
	Funct3Sll   = 0x1
	Funct3Slt   = 0x2
	Funct3Sltu  = 0x3
	Funct3Xor   = 0x4
	Funct3Srx   = 0x5
	Funct3Or    = 0x6
	Funct3And   = 0x7

	Funct3Beq  = 0x0
	Funct3Bne  = 0x1
	Funct3Blt  = 0x4
	Funct3Bge  = 0x5
	Funct3Bltu = 0x6
	Funct3Bgeu = 0x7

	Funct3Lb  = 0x0
	Funct3Lh  = 0x1
	Funct3Lw  = 0x2
	Funct3Lbu = 0x4
	Funct3Lhu = 0x5

	Funct3Sb = 0x0
	Funct3Sh = 0x1
	Funct3Sw = 0x2

	Funct3E      = 0x0
	Funct3Csrrw  = 0x1
	Funct3Csrrs  = 0x2
	Funct3Csrrc  = 0x3
	Funct3Csrrwi = 0x5
	Funct3Csrrsi = 0x6
	Funct3Csrrci = 0x7
)

// funct7 values distinguishing R-type/shift-immediate variants.
const (
	Funct7Add = 0x00
	Funct7Sub = 0x20
	Funct7Srl = 0x00
	Funct7Sra = 0x20
)

// MnemonicWidth is the left-justified field width mnemonics render in.
const MnemonicWidth = 8

// Opcode/rd/funct3/rs1/rs2/funct7 field extraction. Names follow the
// reference RV64 decoder's Parse* naming convention, narrowed to uint32.

func ParseOpcode(insn uint32) uint32 { return insn & 0x7f }
func ParseRd(insn uint32) uint32     { return (insn >> 7) & 0x1f }
func ParseFunct3(insn uint32) uint32 { return (insn >> 12) & 0x7 }
func ParseRs1(insn uint32) uint32    { return (insn >> 15) & 0x1f }
func ParseRs2(insn uint32) uint32    { return (insn >> 20) & 0x1f }
func ParseFunct7(insn uint32) uint32 { return (insn >> 25) & 0x7f }

// ParseImmI extracts and sign-extends the I-type 12-bit immediate.
func ParseImmI(insn uint32) int32 {
	imm := int32(insn) >> 20
	return imm
}

// ParseImmU extracts the U-type immediate (upper 20 bits, low 12 zero).
func ParseImmU(insn uint32) int32 {
	return int32(insn & 0xfffff000)
}

// ParseImmS extracts and sign-extends the S-type 12-bit immediate.
func ParseImmS(insn uint32) int32 {
	v := int32((insn>>25)&0x7f) << 5
	v |= int32((insn >> 7) & 0x1f)
	if insn&0x80000000 != 0 {
		var mask1 uint32 = 0xfffff000
		v |= int32(mask1)
	}
	return v
}

// ParseImmB extracts and sign-extends the B-type 13-bit immediate
// (branch offset, bit 0 always clear).
func ParseImmB(insn uint32) int32 {
	v := int32((insn>>25)&0x3f) << 5
	v |= int32((insn>>8)&0xf) << 1
	v |= int32((insn>>7)&0x1) << 11
	v |= int32((insn>>31)&0x1) << 12
	if insn&0x80000000 != 0 {
		var mask2 uint32 = 0xffffe000
		v |= int32(mask2)
	}
	return v
}

// ParseImmJ extracts and sign-extends the J-type 21-bit immediate
// (jump offset, bit 0 always clear).
func ParseImmJ(insn uint32) int32 {
	v := int32((insn >> 12) & 0xff) << 12
	v |= int32((insn>>20)&0x1) << 11
	v |= int32((insn>>21)&0x3ff) << 1
	v |= int32((insn>>31)&0x1) << 20
	if insn&0x80000000 != 0 {
		var mask3 uint32 = 0xffe00000
		v |= int32(mask3)
	}
	return v
}

// Kind identifies the classified instruction. The zero value is KindIllegal.
type Kind int

const (
	KindIllegal Kind = iota
	KindLui
	KindAuipc
	KindJal
	KindJalr
	KindBeq
	KindBne
	KindBlt
	KindBge
	KindBltu
	KindBgeu
	KindLb
	KindLh
	KindLw
	KindLbu
	KindLhu
	KindSb
	KindSh
	KindSw
	KindAddi
	KindSlti
	KindSltiu
	KindXori
	KindOri
	KindAndi
	KindSlli
	KindSrli
	KindSrai
	KindAdd
	KindSub
	KindSll
	KindSlt
	KindSltu
	KindXor
	KindSrl
	KindSra
	KindOr
	KindAnd
	KindEcall
	KindEbreak
	KindCsrrw
	KindCsrrs
	KindCsrrc
	KindCsrrwi
	KindCsrrsi
	KindCsrrci
)

var mnemonics = map[Kind]string{
	KindLui: "lui", KindAuipc: "auipc", KindJal: "jal", KindJalr: "jalr",
	KindBeq: "beq", KindBne: "bne", KindBlt: "blt", KindBge: "bge",
	KindBltu: "bltu", KindBgeu: "bgeu",
	KindLb: "lb", KindLh: "lh", KindLw: "lw", KindLbu: "lbu", KindLhu: "lhu",
	KindSb: "sb", KindSh: "sh", KindSw: "sw",
	KindAddi: "addi", KindSlti: "slti", KindSltiu: "sltiu",
	KindXori: "xori", KindOri: "ori", KindAndi: "andi",
	KindSlli: "slli", KindSrli: "srli", KindSrai: "srai",
	KindAdd: "add", KindSub: "sub", KindSll: "sll", KindSlt: "slt",
	KindSltu: "sltu", KindXor: "xor", KindSrl: "srl", KindSra: "sra",
	KindOr: "or", KindAnd: "and",
	KindEcall: "ecall", KindEbreak: "ebreak",
	KindCsrrw: "csrrw", KindCsrrs: "csrrs", KindCsrrc: "csrrc",
	KindCsrrwi: "csrrwi", KindCsrrsi: "csrrsi", KindCsrrci: "csrrci",
}

// Mnemonic returns the lower-case mnemonic for k, or "" for KindIllegal.
func Mnemonic(k Kind) string {
	return mnemonics[k]
}

// Classify inspects insn's opcode/funct3/funct7 fields and returns the
// instruction it encodes, or KindIllegal if no RV32I instruction matches.
func Classify(insn uint32) Kind {
	opcode := ParseOpcode(insn)
	funct3 := ParseFunct3(insn)
	funct7 := ParseFunct7(insn)

	switch opcode {
	case OpcodeLui:
		return KindLui
	case OpcodeAuipc:
		return KindAuipc
	case OpcodeJal:
		return KindJal
	case OpcodeJalr:
		if funct3 == 0 {
			return KindJalr
		}
	case OpcodeRtype:
		switch funct3 {
		case Funct3Add:
			switch funct7 {
			case Funct7Add:
				return KindAdd
			case Funct7Sub:
				return KindSub
			}
		case Funct3Sll:
			return KindSll
		case Funct3Slt:
			return KindSlt
		case Funct3Sltu:
			return KindSltu
		case Funct3Xor:
			return KindXor
		case Funct3Srx:
			switch funct7 {
			case Funct7Srl:
				return KindSrl
			case Funct7Sra:
				return KindSra
			}
		case Funct3Or:
			return KindOr
		case Funct3And:
			return KindAnd
		}
	case OpcodeBtype:
		switch funct3 {
		case Funct3Beq:
			return KindBeq
		case Funct3Bne:
			return KindBne
		case Funct3Blt:
			return KindBlt
		case Funct3Bge:
			return KindBge
		case Funct3Bltu:
			return KindBltu
		case Funct3Bgeu:
			return KindBgeu
		}
	case OpcodeSystem:
		switch funct3 {
		case Funct3E:
			switch ParseImmI(insn) {
			case 0:
				return KindEcall
			case 1:
				return KindEbreak
			}
		case Funct3Csrrw:
			return KindCsrrw
		case Funct3Csrrs:
			return KindCsrrs
		case Funct3Csrrc:
			return KindCsrrc
		case Funct3Csrrwi:
			return KindCsrrwi
		case Funct3Csrrsi:
			return KindCsrrsi
		case Funct3Csrrci:
			return KindCsrrci
		}
	case OpcodeStore:
		switch funct3 {
		case Funct3Sb:
			return KindSb
		case Funct3Sh:
			return KindSh
		case Funct3Sw:
			return KindSw
		}
	case OpcodeLoad:
		switch funct3 {
		case Funct3Lb:
			return KindLb
		case Funct3Lh:
			return KindLh
		case Funct3Lw:
			return KindLw
		case Funct3Lbu:
			return KindLbu
		case Funct3Lhu:
			return KindLhu
		}
	case OpcodeAluImm:
		switch funct3 {
		case Funct3Add:
			return KindAddi
		case Funct3Sll:
			return KindSlli
		case Funct3Slt:
			return KindSlti
		case Funct3Sltu:
			return KindSltiu
		case Funct3Xor:
			return KindXori
		case Funct3Or:
			return KindOri
		case Funct3And:
			return KindAndi
		case Funct3Srx:
			switch funct7 {
			case Funct7Srl:
				return KindSrli
			case Funct7Sra:
				return KindSrai
			}
		}
	}
	return KindIllegal
}

func renderMnemonic(m string) string {
	return fmt.Sprintf("%-*s", MnemonicWidth, m)
}

func renderReg(r uint32) string {
	return fmt.Sprintf("x%d", r)
}

func renderBaseDisp(disp int32, base uint32) string {
	return fmt.Sprintf("%d(%s)", disp, renderReg(base))
}

// Disassemble renders insn, fetched from address addr, as one disassembly
// line's mnemonic-and-operands portion (the address/word prefix is the
// caller's responsibility so it can be shared with trace output).
func Disassemble(addr, insn uint32) string {
	kind := Classify(insn)
	rd, rs1, rs2 := ParseRd(insn), ParseRs1(insn), ParseRs2(insn)

	switch kind {
	case KindIllegal:
		return "ERROR: UNIMPLEMENTED INSTRUCTION"
	case KindLui, KindAuipc:
		immU := ParseImmU(insn)
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + hexfmt.U20Prefixed(uint32(immU)>>12)
	case KindJal:
		target := addr + uint32(ParseImmJ(insn))
		return renderMnemonic("jal") + renderReg(rd) + "," + hexfmt.Word32Prefixed(target)
	case KindJalr:
		return renderMnemonic("jalr") + renderReg(rd) + "," + renderBaseDisp(ParseImmI(insn), rs1)
	case KindBeq, KindBne, KindBlt, KindBge, KindBltu, KindBgeu:
		target := addr + uint32(ParseImmB(insn))
		return renderMnemonic(Mnemonic(kind)) + renderReg(rs1) + "," + renderReg(rs2) + "," + hexfmt.Word32Prefixed(target)
	case KindLb, KindLh, KindLw, KindLbu, KindLhu:
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + renderBaseDisp(ParseImmI(insn), rs1)
	case KindSb, KindSh, KindSw:
		return renderMnemonic(Mnemonic(kind)) + renderReg(rs2) + "," + renderBaseDisp(ParseImmS(insn), rs1)
	case KindAddi, KindSlti, KindSltiu, KindXori, KindOri, KindAndi:
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + renderReg(rs1) + fmt.Sprintf(",%d", ParseImmI(insn))
	case KindSlli, KindSrli, KindSrai:
		shamt := ParseImmI(insn) & 0x1f
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + renderReg(rs1) + fmt.Sprintf(",%d", shamt)
	case KindAdd, KindSub, KindSll, KindSlt, KindSltu, KindXor, KindSrl, KindSra, KindOr, KindAnd:
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + renderReg(rs1) + "," + renderReg(rs2)
	case KindEcall:
		return "ecall"
	case KindEbreak:
		return "ebreak"
	case KindCsrrw, KindCsrrs, KindCsrrc:
		imm := ParseImmI(insn)
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + hexfmt.CSR12Prefixed(uint32(imm)) + "," + renderReg(rs1)
	case KindCsrrwi, KindCsrrsi, KindCsrrci:
		imm := ParseImmI(insn)
		zimm := rs1
		return renderMnemonic(Mnemonic(kind)) + renderReg(rd) + "," + hexfmt.CSR12Prefixed(uint32(imm)) + fmt.Sprintf(",%d", zimm)
	default:
		return "ERROR: UNIMPLEMENTED INSTRUCTION"
	}
}
