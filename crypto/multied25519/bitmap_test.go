package multied25519

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewBitmap(t *testing.T) {
	testCases := []struct {
		name    string
		indices []uint8
		numKeys int
		expRes  Bitmap
		expErr  error
	}{
		{"first and third of three", []uint8{0, 2}, 3, Bitmap{0xa0, 0x00, 0x00, 0x00}, nil},
		{"order does not matter", []uint8{2, 0}, 3, Bitmap{0xa0, 0x00, 0x00, 0x00}, nil},
		{"single signer", []uint8{1}, 2, Bitmap{0x40, 0x00, 0x00, 0x00}, nil},
		{"last member of 32", []uint8{31}, 32, Bitmap{0x00, 0x00, 0x00, 0x01}, nil},
		{"empty", nil, 3, Bitmap{}, nil},
		{"all of 32", func() []uint8 {
			indices := make([]uint8, 32)
			for i := range indices {
				indices[i] = uint8(i)
			}
			return indices
		}(), 32, Bitmap{0xff, 0xff, 0xff, 0xff}, nil},
		{"index out of range", []uint8{3}, 3, Bitmap{}, ErrInvalidSignerIndex},
		{"duplicated index", []uint8{1, 1}, 3, Bitmap{}, ErrInvalidSignerIndex},
		{"no keys", []uint8{0}, 0, Bitmap{}, ErrInvalidThreshold},
		{"too many keys", []uint8{0}, 33, Bitmap{}, ErrInvalidThreshold},
	}

	for _, tc := range testCases {
		res, err := NewBitmap(tc.indices, tc.numKeys)
		if tc.expErr != nil {
			require.ErrorIs(t, err, tc.expErr, tc.name)
			continue
		}

		require.NoError(t, err, tc.name)
		require.Equal(t, tc.expRes, res, tc.name)
	}
}

func TestBitmapAccessors(t *testing.T) {
	bitmap, err := NewBitmap([]uint8{2, 0}, 3)
	require.NoError(t, err)

	require.True(t, bitmap.IsSet(0))
	require.False(t, bitmap.IsSet(1))
	require.True(t, bitmap.IsSet(2))
	require.False(t, bitmap.IsSet(40))
	require.Equal(t, 2, bitmap.Count())
	require.Equal(t, []uint8{0, 2}, bitmap.Indices())
	require.Equal(t, 2, bitmap.HighestIndex())
	require.Equal(t, "a0000000", bitmap.String())

	require.Equal(t, -1, Bitmap{}.HighestIndex())
	require.Empty(t, Bitmap{}.Indices())
}

func TestBitmapProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numKeys := rapid.IntRange(1, MaxSigners).Draw(t, "numKeys")
		var indices []uint8
		for i := 0; i < numKeys; i++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("signed %d", i)) {
				indices = append(indices, uint8(i))
			}
		}
		indices = rapid.Permutation(indices).Draw(t, "order")

		bitmap, err := NewBitmap(indices, numKeys)
		require.NoError(t, err)
		require.Equal(t, len(indices), bitmap.Count())

		for _, index := range indices {
			require.True(t, bitmap.IsSet(index))
		}
		require.Less(t, bitmap.HighestIndex(), numKeys)
	})
}
