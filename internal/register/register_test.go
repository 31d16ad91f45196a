package register

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetState(t *testing.T) {
	f := New()
	require.Equal(t, int32(0), f.Get(0), "x0 always zero")
	poison := uint32(0xf0f0f0f0)
	for r := uint32(1); r < 32; r++ {
		require.Equal(t, int32(poison), f.Get(r), "poison pattern on reset")
	}
}

func TestX0Discipline(t *testing.T) {
	f := New()
	f.Set(0, 12345)
	require.Equal(t, int32(0), f.Get(0), "write to x0 is discarded")
}

func TestSetGet(t *testing.T) {
	f := New()
	f.Set(5, -1)
	require.Equal(t, int32(-1), f.Get(5))
	f.Set(5, 42)
	require.Equal(t, int32(42), f.Get(5), "last write wins")
}

func TestResetAfterMutation(t *testing.T) {
	f := New()
	f.Set(10, 7)
	f.Reset()
	poison := uint32(0xf0f0f0f0)
	require.Equal(t, int32(poison), f.Get(10))
	require.Equal(t, int32(0), f.Get(0))
}

func TestDumpFormat(t *testing.T) {
	f := New()
	f.Set(1, 0x10)
	var buf bytes.Buffer
	f.Dump(&buf, "")
	out := buf.String()
	require.Contains(t, out, "x0  0x00000000")
	require.Contains(t, out, "x1  0x00000010")
	require.Equal(t, 8, countLines(out))
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
