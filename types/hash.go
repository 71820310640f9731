package types

import (
	"encoding/hex"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/crypto/sha3"
)

// HashLength is the byte length of a sha3-256 digest.
const HashLength = 32

// HashValue is a sha3-256 digest, e.g. a transaction hash.
type HashValue [HashLength]byte

// Sha3Hash returns sha3_256 over the concatenation of parts.
func Sha3Hash(parts ...[]byte) HashValue {
	hasher := sha3.New256()
	for _, part := range parts {
		hasher.Write(part)
	}

	var h HashValue
	copy(h[:], hasher.Sum(nil))
	return h
}

// NewHashValue parses a `0x` prefixed or bare hex digest.
func NewHashValue(hexStr string) (HashValue, error) {
	var h HashValue

	bz, err := hex.DecodeString(strings.TrimPrefix(hexStr, "0x"))
	if err != nil {
		return h, errorsmod.Wrap(ErrInvalidHash, err.Error())
	}
	if len(bz) != HashLength {
		return h, errorsmod.Wrapf(ErrInvalidHash, "hash must be %d bytes, got %d", HashLength, len(bz))
	}

	copy(h[:], bz)
	return h, nil
}

func (h HashValue) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h HashValue) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}
