// Package hexfmt renders fixed-width, zero-padded hexadecimal strings for
// trace, disassembly, and dump output.
//
// These widths are dictated by the output formats of the decoder, hart,
// memory, and register packages, not by convenience, so this package deliberately does not build
// on top of github.com/ethereum/go-ethereum/common/hexutil: hexutil trims
// leading zeros and varies the digit count with the value ("0x1a"), while
// every consumer here needs a fixed digit count regardless of value
// ("0x0000001a"). Reusing hexutil's encoder would mean immediately undoing
// its defining behavior, so this stays a small formatter of its own.
package hexfmt

import "fmt"

// Byte renders v as two lowercase hex digits, no prefix.
func Byte(v uint8) string {
	return fmt.Sprintf("%02x", v)
}

// Word32 renders v as eight lowercase hex digits, no prefix.
func Word32(v uint32) string {
	return fmt.Sprintf("%08x", v)
}

// Word32Prefixed renders v as "0x" followed by eight hex digits.
func Word32Prefixed(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}

// U20Prefixed renders the low 20 bits of v as "0x" followed by five hex
// digits, used for the upper-immediate field of LUI/AUIPC disassembly.
func U20Prefixed(v uint32) string {
	return fmt.Sprintf("0x%05x", v&0xfffff)
}

// CSR12Prefixed renders the low 12 bits of v as "0x" followed by three hex
// digits, used for CSR addresses in disassembly.
func CSR12Prefixed(v uint32) string {
	return fmt.Sprintf("0x%03x", v&0xfff)
}
