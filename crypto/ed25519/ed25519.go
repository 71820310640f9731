package ed25519

import (
	"bytes"
	stded25519 "crypto/ed25519"
	"crypto/subtle"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/types"
)

const (
	// PrivKeySize defines the size of the private key seed
	PrivKeySize = stded25519.SeedSize
	// PubKeySize defines the size of the PubKey bytes
	PubKeySize = cmted25519.PubKeySize
	// SignatureSize defines the size of an Ed25519 signature
	SignatureSize = cmted25519.SignatureSize
)

var (
	_ bcs.Marshaler   = PubKey{}
	_ bcs.Unmarshaler = (*PubKey)(nil)
	_ bcs.Marshaler   = Signature{}
	_ bcs.Unmarshaler = (*Signature)(nil)
)

// ----------------------------------------------------------------------------
// Ed25519 Private Key

// PrivKey is an Ed25519 signing key. The caller owns it only for the duration
// of a signing operation; nothing in this module persists it.
type PrivKey struct {
	key cmted25519.PrivKey
}

// GenPrivKey generates a new random private key.
func GenPrivKey() PrivKey {
	return PrivKey{key: cmted25519.GenPrivKey()}
}

// NewPrivKeyFromSeed returns the private key derived from a 32 byte seed.
func NewPrivKeyFromSeed(seed []byte) (PrivKey, error) {
	if len(seed) != PrivKeySize {
		return PrivKey{}, errorsmod.Wrapf(ErrInvalidKey, "invalid seed size, expected %d got %d", PrivKeySize, len(seed))
	}

	return PrivKey{key: cmted25519.PrivKey(stded25519.NewKeyFromSeed(seed))}, nil
}

// NewPrivKeyFromHex parses a hex encoded seed with an optional `0x` prefix.
func NewPrivKeyFromHex(s string) (PrivKey, error) {
	seed, err := decodeHex(s)
	if err != nil {
		return PrivKey{}, err
	}

	return NewPrivKeyFromSeed(seed)
}

// Seed returns a copy of the 32 byte seed.
func (privKey PrivKey) Seed() []byte {
	return bytes.Clone(privKey.key[:PrivKeySize])
}

// PubKey returns the public half of the key pair.
func (privKey PrivKey) PubKey() PubKey {
	var pubKey PubKey
	copy(pubKey[:], privKey.key.PubKey().Bytes())
	return pubKey
}

// Sign signs msg. Ed25519 signing is deterministic: the same key and message
// always yield the same signature.
func (privKey PrivKey) Sign(msg []byte) (Signature, error) {
	if len(privKey.key) != cmted25519.PrivateKeySize {
		return Signature{}, errorsmod.Wrap(ErrInvalidKey, "uninitialized private key")
	}

	sig, err := privKey.key.Sign(msg)
	if err != nil {
		return Signature{}, err
	}

	return NewSignature(sig)
}

// Equals returns true if both private keys are equal, in constant time.
func (privKey PrivKey) Equals(other PrivKey) bool {
	return subtle.ConstantTimeCompare(privKey.key, other.key) == 1
}

// ----------------------------------------------------------------------------
// Ed25519 Public Key

// PubKey is a 32 byte Ed25519 public key.
type PubKey [PubKeySize]byte

// NewPubKey validates the length of bz.
func NewPubKey(bz []byte) (PubKey, error) {
	var pubKey PubKey
	if len(bz) != PubKeySize {
		return pubKey, errorsmod.Wrapf(ErrInvalidKey, "invalid pubkey size, expected %d got %d", PubKeySize, len(bz))
	}

	copy(pubKey[:], bz)
	return pubKey, nil
}

// NewPubKeyFromHex parses a hex encoded public key with an optional `0x` prefix.
func NewPubKeyFromHex(s string) (PubKey, error) {
	bz, err := decodeHex(s)
	if err != nil {
		return PubKey{}, err
	}

	return NewPubKey(bz)
}

// Bytes returns a copy of the key bytes.
func (pubKey PubKey) Bytes() []byte {
	return bytes.Clone(pubKey[:])
}

func (pubKey PubKey) String() string {
	return "0x" + hex.EncodeToString(pubKey[:])
}

// VerifySignature reports whether sig is a valid signature of msg by this key.
func (pubKey PubKey) VerifySignature(msg []byte, sig Signature) bool {
	return cmted25519.PubKey(pubKey[:]).VerifySignature(msg, sig[:])
}

// AuthKey returns sha3_256(pubkey | 0x00).
func (pubKey PubKey) AuthKey() types.AuthenticationKey {
	return types.NewAuthenticationKey(pubKey[:], types.Ed25519Scheme)
}

// Address returns the account address derived from the authentication key.
func (pubKey PubKey) Address() types.AccountAddress {
	return pubKey.AuthKey().DerivedAddress()
}

// MarshalBCS writes the key as a length prefixed byte string.
func (pubKey PubKey) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeBytes(pubKey[:])
}

func (pubKey *PubKey) UnmarshalBCS(d *bcs.Deserializer) error {
	bz, err := d.DeserializeBytes()
	if err != nil {
		return err
	}
	if len(bz) != PubKeySize {
		return errorsmod.Wrapf(bcs.ErrMalformedInput, "ed25519 public key must be %d bytes, got %d", PubKeySize, len(bz))
	}

	copy(pubKey[:], bz)
	return nil
}

// ----------------------------------------------------------------------------
// Ed25519 Signature

// Signature is a 64 byte Ed25519 signature.
type Signature [SignatureSize]byte

// NewSignature validates the length of bz.
func NewSignature(bz []byte) (Signature, error) {
	var sig Signature
	if len(bz) != SignatureSize {
		return sig, errorsmod.Wrapf(ErrInvalidSignature, "invalid signature size, expected %d got %d", SignatureSize, len(bz))
	}

	copy(sig[:], bz)
	return sig, nil
}

// Bytes returns a copy of the signature bytes.
func (sig Signature) Bytes() []byte {
	return bytes.Clone(sig[:])
}

func (sig Signature) String() string {
	return "0x" + hex.EncodeToString(sig[:])
}

// MarshalBCS writes the signature as a length prefixed byte string.
func (sig Signature) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeBytes(sig[:])
}

func (sig *Signature) UnmarshalBCS(d *bcs.Deserializer) error {
	bz, err := d.DeserializeBytes()
	if err != nil {
		return err
	}
	if len(bz) != SignatureSize {
		return errorsmod.Wrapf(bcs.ErrMalformedInput, "ed25519 signature must be %d bytes, got %d", SignatureSize, len(bz))
	}

	copy(sig[:], bz)
	return nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	bz, err := hex.DecodeString(s)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidKey, "invalid hex: %s", err)
	}

	return bz, nil
}
