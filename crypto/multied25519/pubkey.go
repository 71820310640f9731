package multied25519

import (
	"bytes"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/types"
)

var (
	_ bcs.Marshaler   = PubKey{}
	_ bcs.Unmarshaler = (*PubKey)(nil)
)

// PubKey is a k-of-n Ed25519 multi public key. Member order is significant:
// it fixes both the derived address and the meaning of every bitmap bit.
type PubKey struct {
	keys      []ed25519.PubKey
	threshold uint8
}

// NewPubKey returns the multi public key of keys with the given threshold. The
// number of keys must be in [1, 32] and the threshold in [1, len(keys)].
func NewPubKey(keys []ed25519.PubKey, threshold uint8) (*PubKey, error) {
	if len(keys) < 1 || len(keys) > MaxSigners {
		return nil, errorsmod.Wrapf(ErrInvalidThreshold, "number of keys must be in [1, %d], got %d", MaxSigners, len(keys))
	}
	if threshold < 1 || int(threshold) > len(keys) {
		return nil, errorsmod.Wrapf(ErrInvalidThreshold, "threshold must be in [1, %d], got %d", len(keys), threshold)
	}

	return &PubKey{
		keys:      append([]ed25519.PubKey(nil), keys...),
		threshold: threshold,
	}, nil
}

// NewPubKeyFromBytes parses keys | threshold.
func NewPubKeyFromBytes(bz []byte) (*PubKey, error) {
	if len(bz) < ed25519.PubKeySize+1 || (len(bz)-1)%ed25519.PubKeySize != 0 {
		return nil, errorsmod.Wrapf(ErrInvalidKey, "invalid multi public key size %d", len(bz))
	}

	numKeys := (len(bz) - 1) / ed25519.PubKeySize
	keys := make([]ed25519.PubKey, numKeys)
	for i := range keys {
		copy(keys[i][:], bz[i*ed25519.PubKeySize:(i+1)*ed25519.PubKeySize])
	}

	return NewPubKey(keys, bz[len(bz)-1])
}

// Keys returns a copy of the member keys in declared order.
func (pk PubKey) Keys() []ed25519.PubKey {
	return append([]ed25519.PubKey(nil), pk.keys...)
}

// NumKeys returns the number of member keys.
func (pk PubKey) NumKeys() int {
	return len(pk.keys)
}

// Threshold returns the number of member signatures required.
func (pk PubKey) Threshold() uint8 {
	return pk.threshold
}

// Bytes returns the concatenated member keys followed by the threshold byte.
func (pk PubKey) Bytes() []byte {
	bz := make([]byte, 0, len(pk.keys)*ed25519.PubKeySize+1)
	for _, key := range pk.keys {
		bz = append(bz, key[:]...)
	}

	return append(bz, pk.threshold)
}

// AuthKey returns sha3_256(keys | threshold | 0x01).
func (pk PubKey) AuthKey() types.AuthenticationKey {
	return types.NewAuthenticationKey(pk.Bytes(), types.MultiEd25519Scheme)
}

// Address returns the account address derived from the authentication key.
func (pk PubKey) Address() types.AccountAddress {
	return pk.AuthKey().DerivedAddress()
}

// Equals reports whether both keys have the same members, order and threshold.
func (pk PubKey) Equals(other PubKey) bool {
	return bytes.Equal(pk.Bytes(), other.Bytes())
}

func (pk PubKey) String() string {
	keys := make([]string, len(pk.keys))
	for i, key := range pk.keys {
		keys[i] = key.String()
	}

	return fmt.Sprintf("MultiEd25519PubKey{%d-of-%d: %s}", pk.threshold, len(pk.keys), strings.Join(keys, ", "))
}

// Aggregate collapses member signatures into a multi signature. The signatures
// may be given in any order; they must come from distinct members and reach
// the threshold.
func (pk PubKey) Aggregate(sigs []IndexedSignature) (*Signature, error) {
	sig, err := NewSignature(sigs, len(pk.keys))
	if err != nil {
		return nil, err
	}
	if err := pk.CheckQuorum(sig); err != nil {
		return nil, err
	}

	return sig, nil
}

// CheckQuorum validates the shape of sig against this key: every signer index
// must name a member and the number of signatures must reach the threshold.
// A key without members or with a zero threshold never reaches a quorum.
func (pk PubKey) CheckQuorum(sig *Signature) error {
	if len(pk.keys) == 0 || pk.threshold == 0 {
		return errorsmod.Wrapf(ErrInvalidThreshold, "%d-of-%d key cannot authorize", pk.threshold, len(pk.keys))
	}
	if sig == nil {
		return errorsmod.Wrap(ErrInsufficientSignatures, "missing signature")
	}
	if highest := sig.bitmap.HighestIndex(); highest >= len(pk.keys) {
		return errorsmod.Wrapf(ErrInvalidSignerIndex, "index %d out of range for %d keys", highest, len(pk.keys))
	}
	if sig.bitmap.Count() != len(sig.signatures) {
		return errorsmod.Wrapf(ErrInvalidSignerIndex, "bitmap marks %d signers but %d signatures are present", sig.bitmap.Count(), len(sig.signatures))
	}
	if len(sig.signatures) < int(pk.threshold) {
		return errorsmod.Wrapf(ErrInsufficientSignatures, "got %d signatures, threshold is %d", len(sig.signatures), pk.threshold)
	}

	return nil
}

// Verify checks sig over msg: quorum first, then every member signature
// against the member named by the matching bitmap bit.
func (pk PubKey) Verify(msg []byte, sig *Signature) error {
	if err := pk.CheckQuorum(sig); err != nil {
		return err
	}

	for i, index := range sig.bitmap.Indices() {
		if !pk.keys[index].VerifySignature(msg, sig.signatures[i]) {
			return errorsmod.Wrapf(ErrInvalidSignature, "signature of member %d", index)
		}
	}

	return nil
}

// VerifySignature is Verify reduced to a boolean.
func (pk PubKey) VerifySignature(msg []byte, sig *Signature) bool {
	return pk.Verify(msg, sig) == nil
}

// MarshalBCS writes Bytes() as a length prefixed byte string.
func (pk PubKey) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeBytes(pk.Bytes())
}

func (pk *PubKey) UnmarshalBCS(d *bcs.Deserializer) error {
	bz, err := d.DeserializeBytes()
	if err != nil {
		return err
	}

	parsed, err := NewPubKeyFromBytes(bz)
	if err != nil {
		return errorsmod.Wrap(bcs.ErrMalformedInput, err.Error())
	}

	*pk = *parsed
	return nil
}
