package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestAuthenticationKey(t *testing.T) {
	publicKey := []byte{0x1, 0x2, 0x3}

	key := NewAuthenticationKey(publicKey, Ed25519Scheme)

	hasher := sha3.New256()
	hasher.Write([]byte{0x1, 0x2, 0x3, 0x0})
	require.Equal(t, hasher.Sum(nil), key[:])
	require.Equal(t, AccountAddress(key), key.DerivedAddress())

	multiKey := NewAuthenticationKey(publicKey, MultiEd25519Scheme)
	require.NotEqual(t, key, multiKey)

	hasher = sha3.New256()
	hasher.Write([]byte{0x1, 0x2, 0x3, 0x1})
	require.Equal(t, hasher.Sum(nil), multiKey[:])
}

func TestHashValue(t *testing.T) {
	h := Sha3Hash([]byte("APTOS::"), []byte("RawTransaction"))
	require.Equal(t, Sha3Hash([]byte("APTOS::RawTransaction")), h)

	parsed, err := NewHashValue(h.String())
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	_, err = NewHashValue("0x1234")
	require.ErrorIs(t, err, ErrInvalidHash)
}
