package cursor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimarySecondaryIndependence(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	c := New(data)

	v, err := c.U8(Primary)
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)
	require.Equal(t, 1, c.Primary())
	require.Equal(t, 0, c.Secondary())

	v2, err := c.U8(Secondary)
	require.NoError(t, err)
	require.Equal(t, uint8(1), v2)
	require.Equal(t, 1, c.Secondary())
}

func TestOutOfBounds(t *testing.T) {
	c := New([]byte{0x01, 0x02})
	_, err := c.U32(Primary)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestReadStringAdvancesPastTerminator(t *testing.T) {
	data := append([]byte("onDeath"), 0x00, 0xAA)
	c := New(data)
	c.SetSecondary(0)
	s, err := c.ReadString(Secondary)
	require.NoError(t, err)
	require.Equal(t, "onDeath", s)
	require.Equal(t, len("onDeath")+1, c.Secondary())
}

func TestReadStringMissingTerminator(t *testing.T) {
	data := []byte("noterminator")
	c := New(data)
	_, err := c.ReadString(Primary)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidString))
}

func TestSetOffsetsAreUnchecked(t *testing.T) {
	c := New([]byte{1, 2, 3})
	c.SetPrimary(1000) // unchecked until a read happens
	_, err := c.U8(Primary)
	require.Error(t, err)
}

func TestReadAtDoesNotAdvance(t *testing.T) {
	c := New([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	b, err := c.ReadAt(1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xBB, 0xCC}, b)
	require.Equal(t, 0, c.Primary())
	require.Equal(t, 0, c.Secondary())
}

func TestLittleEndianFloat(t *testing.T) {
	// 3.25f little-endian: 0x40500000 -> bytes 00 00 50 40
	data := []byte{0x00, 0x00, 0x50, 0x40}
	c := New(data)
	f, err := c.F32(Primary)
	require.NoError(t, err)
	require.Equal(t, float32(3.25), f)
}
