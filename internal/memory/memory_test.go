package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoundsSizeUp(t *testing.T) {
	m := New(0x01)
	require.Equal(t, uint32(0x10), m.Size())
}

func TestNewFillsPoisonByte(t *testing.T) {
	m := New(0x10)
	require.Equal(t, uint8(0xa5), m.Get8(0))
	require.Equal(t, uint8(0xa5), m.Get8(0xf))
}

func TestGetOutOfRangeWarnsAndReturnsZero(t *testing.T) {
	m := New(0x10)
	require.Equal(t, uint8(0), m.Get8(0x10))
}

func TestSetOutOfRangeIsDropped(t *testing.T) {
	m := New(0x10)
	m.Set8(0x10, 0xff)
	require.Equal(t, uint8(0), m.Get8(0x10))
}

func TestLittleEndian16(t *testing.T) {
	m := New(0x10)
	m.Set16(0, 0x1234)
	require.Equal(t, uint8(0x34), m.Get8(0))
	require.Equal(t, uint8(0x12), m.Get8(1))
	require.Equal(t, uint16(0x1234), m.Get16(0))
}

func TestLittleEndian32(t *testing.T) {
	m := New(0x10)
	m.Set32(0, 0xdeadbeef)
	require.Equal(t, uint32(0xdeadbeef), m.Get32(0))
	require.Equal(t, m.Get32(0), uint32(m.Get16(0))|uint32(m.Get16(2))<<16)
}

func TestSignExtension(t *testing.T) {
	m := New(0x10)
	m.Set8(0, 0xff)
	require.Equal(t, int32(-1), m.Get8Sx(0))

	m.Set16(4, 0x8000)
	require.Equal(t, int32(-32768), m.Get16Sx(4))
}

func TestSetGetRoundTrip32(t *testing.T) {
	m := New(0x20)
	for _, addr := range []uint32{0, 4, 0x1c} {
		m.Set32(addr, 0x11223344)
		require.Equal(t, uint32(0x11223344), m.Get32(addr))
	}
}

func TestConsoleTxWritesToWriter(t *testing.T) {
	m := New(0x10)
	var buf bytes.Buffer
	m.SetConsoleWriter(&buf)
	m.Set8(ConsoleTxAddr, 'h')
	m.Set8(ConsoleTxAddr, 'i')
	require.Equal(t, "hi", buf.String())
}

func TestConsoleTxDoesNotMutateRAM(t *testing.T) {
	m := New(0x10)
	var buf bytes.Buffer
	m.SetConsoleWriter(&buf)
	m.Set8(ConsoleTxAddr, 'x')
	for i := uint32(0); i < m.Size(); i++ {
		require.Equal(t, uint8(0xa5), m.Get8(i), "ordinary RAM must be untouched by console writes")
	}
}

func TestConsoleStatusAlwaysReady(t *testing.T) {
	m := New(0x10)
	require.Equal(t, uint32(1), m.Get32(ConsoleStatusAddr), "transmitter always reports ready")
}

func TestDumpFormat(t *testing.T) {
	m := New(0x10)
	m.Set8(0, 'A')
	var buf bytes.Buffer
	m.Dump(&buf)
	out := buf.String()
	require.Contains(t, out, "00000000: 41")
	require.Contains(t, out, "*A")
}
