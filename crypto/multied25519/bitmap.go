package multied25519

import (
	"encoding/binary"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	"github.com/bits-and-blooms/bitset"
)

const (
	// MaxSigners is the maximum number of member keys of a multi public key
	MaxSigners = 32
	// BitmapSize is the byte length of the signer bitmap
	BitmapSize = 4
)

// Bitmap marks which member keys signed. Bit i counted from the most
// significant bit of the big-endian 32 bit word is set iff member i signed.
type Bitmap [BitmapSize]byte

// NewBitmap builds the bitmap of indices for a key set of numKeys members.
// Duplicated indices and indices >= numKeys are rejected.
func NewBitmap(indices []uint8, numKeys int) (Bitmap, error) {
	if numKeys < 1 || numKeys > MaxSigners {
		return Bitmap{}, errorsmod.Wrapf(ErrInvalidThreshold, "number of keys must be in [1, %d], got %d", MaxSigners, numKeys)
	}

	signers := bitset.New(MaxSigners)
	for _, index := range indices {
		if int(index) >= numKeys {
			return Bitmap{}, errorsmod.Wrapf(ErrInvalidSignerIndex, "index %d out of range for %d keys", index, numKeys)
		}
		if signers.Test(uint(index)) {
			return Bitmap{}, errorsmod.Wrapf(ErrInvalidSignerIndex, "duplicated index %d", index)
		}

		signers.Set(uint(index))
	}

	return bitmapFromSet(signers), nil
}

func bitmapFromSet(signers *bitset.BitSet) Bitmap {
	var word uint32
	for i, ok := signers.NextSet(0); ok && i < MaxSigners; i, ok = signers.NextSet(i + 1) {
		word |= 1 << (MaxSigners - 1 - i)
	}

	var bitmap Bitmap
	binary.BigEndian.PutUint32(bitmap[:], word)
	return bitmap
}

func (b Bitmap) signers() *bitset.BitSet {
	word := binary.BigEndian.Uint32(b[:])

	signers := bitset.New(MaxSigners)
	for i := uint(0); i < MaxSigners; i++ {
		if word&(1<<(MaxSigners-1-i)) != 0 {
			signers.Set(i)
		}
	}

	return signers
}

// IsSet reports whether member index signed.
func (b Bitmap) IsSet(index uint8) bool {
	return index < MaxSigners && b.signers().Test(uint(index))
}

// Count returns the number of set bits.
func (b Bitmap) Count() int {
	return int(b.signers().Count())
}

// Indices returns the set member indexes in ascending order.
func (b Bitmap) Indices() []uint8 {
	signers := b.signers()

	indices := make([]uint8, 0, signers.Count())
	for i, ok := signers.NextSet(0); ok; i, ok = signers.NextSet(i + 1) {
		indices = append(indices, uint8(i))
	}

	return indices
}

// HighestIndex returns the largest set index, or -1 for an empty bitmap.
func (b Bitmap) HighestIndex() int {
	indices := b.Indices()
	if len(indices) == 0 {
		return -1
	}

	return int(indices[len(indices)-1])
}

func (b Bitmap) String() string {
	return hex.EncodeToString(b[:])
}
