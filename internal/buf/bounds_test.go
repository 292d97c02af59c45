package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(10, 5)
	require.True(t, ok)
	require.Equal(t, 15, sum)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	require.False(t, ok)

	_, ok = AddOverflowSafe(math.MinInt, -1)
	require.False(t, ok)
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}

	got, ok := Slice(data, 1, 3)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)

	_, ok = Slice(data, 4, 2)
	require.False(t, ok)

	require.False(t, Has(data, 2, 4))
	require.True(t, Has(data, 2, 1))

	_, ok = Slice(data, -1, 1)
	require.False(t, ok)
	_, ok = Slice(data, 1, -1)
	require.False(t, ok)
}
