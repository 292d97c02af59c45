package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	require.Equal(t, uint16(0x2301), U16LE(data))
	require.Equal(t, uint32(0x67452301), U32LE(data))
	require.Equal(t, uint64(0xefcdab8967452301), U64LE(data))
	require.Equal(t, int32(0x67452301), I32LE(data))
	require.Equal(t, int16(0x2301), I16LE(data))
	require.Equal(t, int64(-0x1032547698badcff), I64LE(data)) // bit pattern 0xefcdab8967452301
}

func TestFloatHelpers(t *testing.T) {
	var buf [8]byte
	bits := math.Float32bits(3.25)
	buf[0] = byte(bits)
	buf[1] = byte(bits >> 8)
	buf[2] = byte(bits >> 16)
	buf[3] = byte(bits >> 24)
	require.Equal(t, float32(3.25), F32LE(buf[:4]))

	dbits := math.Float64bits(-12.5)
	for i := 0; i < 8; i++ {
		buf[i] = byte(dbits >> (8 * i))
	}
	require.Equal(t, -12.5, F64LE(buf[:8]))
}
