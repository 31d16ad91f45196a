package hexfmt

import "testing"

import "github.com/stretchr/testify/require"

func TestByte(t *testing.T) {
	require.Equal(t, "00", Byte(0), "zero byte")
	require.Equal(t, "ff", Byte(0xff), "max byte")
	require.Equal(t, "0a", Byte(0x0a), "single digit padded")
}

func TestWord32(t *testing.T) {
	require.Equal(t, "00000000", Word32(0))
	require.Equal(t, "deadbeef", Word32(0xdeadbeef))
}

func TestWord32Prefixed(t *testing.T) {
	require.Equal(t, "0x00000010", Word32Prefixed(0x10))
}

func TestU20Prefixed(t *testing.T) {
	t.Run("masks to low 20 bits", func(t *testing.T) {
		require.Equal(t, "0xfffff", U20Prefixed(0xffffffff))
	})
	t.Run("zero", func(t *testing.T) {
		require.Equal(t, "0x00000", U20Prefixed(0))
	})
}

func TestCSR12Prefixed(t *testing.T) {
	require.Equal(t, "0xf14", CSR12Prefixed(0xf14))
	require.Equal(t, "0x000", CSR12Prefixed(0))
}
