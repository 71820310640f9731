package types

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Scheme is the discriminant byte appended to public key material before it is
// hashed into an authentication key.
type Scheme byte

const (
	Ed25519Scheme      Scheme = 0x00
	MultiEd25519Scheme Scheme = 0x01
)

// AuthenticationKeyLength is the byte length of an authentication key.
const AuthenticationKeyLength = 32

// AuthenticationKey is the hash of an account's public key material.
type AuthenticationKey [AuthenticationKeyLength]byte

// NewAuthenticationKey returns sha3_256(publicKey | scheme).
func NewAuthenticationKey(publicKey []byte, scheme Scheme) AuthenticationKey {
	hasher := sha3.New256()
	hasher.Write(publicKey)
	hasher.Write([]byte{byte(scheme)})

	var key AuthenticationKey
	copy(key[:], hasher.Sum(nil))
	return key
}

// DerivedAddress returns the address of the account created for this key.
func (key AuthenticationKey) DerivedAddress() AccountAddress {
	return AccountAddress(key)
}

func (key AuthenticationKey) String() string {
	return "0x" + hex.EncodeToString(key[:])
}
